// Package throttle serializes outgoing requests so that no two are dispatched closer than a fixed interval.
package throttle

import (
	"context"
	"sync"
	"time"
)

// Throttle is a process-wide request gate. The zero value is not usable; construct with New.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option customizes a Throttle.
type Option func(*Throttle)

// WithClock replaces the time source and the sleep primitive.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(t *Throttle) {
		t.now = now
		t.sleep = sleep
	}
}

// New returns a throttle that keeps dispatches at least interval apart.
func New(interval time.Duration, opts ...Option) *Throttle {
	t := &Throttle{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Interval returns the minimum gap between two dispatches.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Wait blocks until the caller may dispatch and records the dispatch time.
// The lock is held while sleeping so callers are released in arrival order.
// The only error is the context's, when the caller gives up waiting.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if elapsed := t.now().Sub(t.last); elapsed < t.interval {
		if err := t.sleep(ctx, t.interval-elapsed); err != nil {
			return err
		}
	}

	t.last = t.now()
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
