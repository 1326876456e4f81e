package throttle

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeClock advances only when the throttle sleeps.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
	slept   []time.Duration
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.current = c.current.Add(d)
	return nil
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

func TestWait(t *testing.T) {
	Convey("Given a throttle on a fake clock", t, func() {
		clock := &fakeClock{current: time.Unix(1_700_000_000, 0)}
		th := New(334*time.Millisecond, WithClock(clock.now, clock.sleep))
		ctx := context.Background()

		Convey("The first call is dispatched immediately", func() {
			So(th.Wait(ctx), ShouldBeNil)
			So(clock.slept, ShouldBeEmpty)
		})

		Convey("Back-to-back calls are spaced by the interval", func() {
			var dispatched []time.Time
			for i := 0; i < 5; i++ {
				So(th.Wait(ctx), ShouldBeNil)
				dispatched = append(dispatched, clock.now())
			}

			for i := 1; i < len(dispatched); i++ {
				So(dispatched[i].Sub(dispatched[i-1]), ShouldBeGreaterThanOrEqualTo, 334*time.Millisecond)
			}
			So(clock.slept, ShouldHaveLength, 4)
		})

		Convey("Only the remaining delta is slept", func() {
			So(th.Wait(ctx), ShouldBeNil)
			clock.advance(300 * time.Millisecond)
			So(th.Wait(ctx), ShouldBeNil)
			So(clock.slept, ShouldResemble, []time.Duration{34 * time.Millisecond})
		})

		Convey("No delay once the interval has elapsed", func() {
			So(th.Wait(ctx), ShouldBeNil)
			clock.advance(time.Second)
			So(th.Wait(ctx), ShouldBeNil)
			So(clock.slept, ShouldBeEmpty)
		})
	})
}

func TestWaitRealClock(t *testing.T) {
	Convey("Given a throttle on the real clock", t, func() {
		th := New(334 * time.Millisecond)
		ctx := context.Background()

		Convey("Concurrent callers are serialized at least 334ms apart", func() {
			var (
				mu    sync.Mutex
				times []time.Time
				wg    sync.WaitGroup
			)
			for i := 0; i < 3; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = th.Wait(ctx)
					mu.Lock()
					times = append(times, time.Now())
					mu.Unlock()
				}()
			}
			wg.Wait()

			So(times, ShouldHaveLength, 3)
			earliest, latest := times[0], times[0]
			for _, ts := range times {
				if ts.Before(earliest) {
					earliest = ts
				}
				if ts.After(latest) {
					latest = ts
				}
			}
			So(latest.Sub(earliest), ShouldBeGreaterThanOrEqualTo, 2*334*time.Millisecond-5*time.Millisecond)
		})

		Convey("A cancelled context aborts the wait", func() {
			So(th.Wait(ctx), ShouldBeNil)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			So(th.Wait(cancelled), ShouldEqual, context.Canceled)
		})
	})
}
