package quiz

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// manualScheduler fires ticks only when the test asks for them.
type manualScheduler struct {
	mu        sync.Mutex
	fn        func()
	cancelled int
	started   int
}

func (m *manualScheduler) Every(_ time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fn = fn
	m.started++
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.cancelled++
	}
}

// fire delivers n ticks, including stale ones after cancellation.
func (m *manualScheduler) fire(n int) {
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	for i := 0; i < n; i++ {
		fn()
	}
}

type stubGenerator struct {
	quiz  *Quiz
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, req Request) (*Quiz, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	q := *g.quiz
	q.Duration = req.Duration
	q.Kind = req.Kind
	return &q, nil
}

type generatorFunc func(ctx context.Context, req Request) (*Quiz, error)

func (f generatorFunc) Generate(ctx context.Context, req Request) (*Quiz, error) {
	return f(ctx, req)
}

func testQuiz(t *testing.T) *Quiz {
	q, err := ParsePayload(validPayload, Request{Kind: Quick, Difficulty: Easy, Duration: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestSession(t *testing.T) {
	Convey("Given an idle session", t, func() {
		scheduler := &manualScheduler{}
		generator := &stubGenerator{quiz: testQuiz(t)}
		session := NewSession(generator, WithScheduler(scheduler))

		var (
			finished []Result
			ticks    []time.Duration
		)
		session.OnFinish(func(r Result) { finished = append(finished, r) })
		session.OnTick(func(d time.Duration) { ticks = append(ticks, d) })

		ctx := context.Background()

		Convey("A missing credential changes nothing", func() {
			_, err := session.Generate(ctx, Quick, "  ")
			So(errors.Is(err, ErrMissingCredential), ShouldBeTrue)
			So(session.State(), ShouldEqual, Idle)
			So(generator.calls, ShouldEqual, 0)
		})

		Convey("Answering without a quiz fails", func() {
			_, err := session.Answer("Luffy")
			So(errors.Is(err, ErrNotActive), ShouldBeTrue)
		})

		Convey("A failed generation returns to the prior state", func() {
			generator.err = ErrMalformedPayload
			_, err := session.Generate(ctx, Quick, "sk-test")
			So(errors.Is(err, ErrMalformedPayload), ShouldBeTrue)
			So(session.State(), ShouldEqual, Idle)
			So(session.Quiz().IsAbsent(), ShouldBeTrue)
		})

		Convey("A generator that returns no quiz is refused", func() {
			session := NewSession(generatorFunc(func(context.Context, Request) (*Quiz, error) {
				return nil, nil
			}), WithScheduler(scheduler))

			_, err := session.Generate(ctx, Quick, "sk-test")
			So(errors.Is(err, ErrMalformedPayload), ShouldBeTrue)
			So(session.State(), ShouldEqual, Idle)
		})

		Convey("A quiz without five questions is refused", func() {
			short := *testQuiz(t)
			short.Questions = short.Questions[:3]
			generator.quiz = &short

			_, err := session.Generate(ctx, Quick, "sk-test")
			So(errors.Is(err, ErrMalformedPayload), ShouldBeTrue)
			So(session.State(), ShouldEqual, Idle)
			So(session.Quiz().IsAbsent(), ShouldBeTrue)
		})

		Convey("When a quick quiz is generated", func() {
			q, err := session.Generate(ctx, Quick, "sk-test")
			So(err, ShouldBeNil)
			So(session.State(), ShouldEqual, Active)
			So(session.Remaining(), ShouldEqual, 60*time.Second)
			So(q.Questions, ShouldHaveLength, 5)

			Convey("Another generation is refused", func() {
				_, err := session.Generate(ctx, Expert, "sk-test")
				So(errors.Is(err, ErrBusy), ShouldBeTrue)
			})

			Convey("Answering all five finishes immediately", func() {
				answers := []string{"Luffy", "Ghibli", "true", "true", "Fullmetal"}
				for i, a := range answers {
					question, index, ok := session.Current()
					So(ok, ShouldBeTrue)
					So(index, ShouldEqual, i)
					So(question.ID, ShouldEqual, i+1)

					done, err := session.Answer(a)
					So(err, ShouldBeNil)
					So(done, ShouldEqual, i == len(answers)-1)
				}

				So(session.State(), ShouldEqual, Results)
				So(finished, ShouldHaveLength, 1)
				So(finished[0].Score, ShouldEqual, 4)
				So(finished[0].XP, ShouldEqual, 40)
				So(finished[0].TimedOut, ShouldBeFalse)
				So(scheduler.cancelled, ShouldEqual, 1)

				Convey("Stale ticks and manual finishes are ignored", func() {
					scheduler.fire(3)
					_, ok := session.Finish()
					So(ok, ShouldBeFalse)
					So(finished, ShouldHaveLength, 1)
					So(ticks, ShouldBeEmpty)
				})

				Convey("A new quiz can be generated from results", func() {
					_, err := session.Generate(ctx, Challenge, "sk-test")
					So(err, ShouldBeNil)
					So(session.Remaining(), ShouldEqual, 180*time.Second)
					So(session.Result().IsAbsent(), ShouldBeTrue)
				})
			})

			Convey("The countdown times out with partial answers", func() {
				for _, a := range []string{"Luffy", "Ghibli", "false"} {
					_, err := session.Answer(a)
					So(err, ShouldBeNil)
				}

				scheduler.fire(59)
				So(session.State(), ShouldEqual, Active)
				So(session.Remaining(), ShouldEqual, time.Second)

				scheduler.fire(1)
				So(session.State(), ShouldEqual, Results)
				So(ticks, ShouldHaveLength, 60)
				So(ticks[len(ticks)-1], ShouldEqual, time.Duration(0))

				So(finished, ShouldHaveLength, 1)
				result := finished[0]
				So(result.TimedOut, ShouldBeTrue)
				So(result.Score, ShouldEqual, 2)
				So(result.XP, ShouldEqual, 20)
				So(result.Correct, ShouldResemble, []bool{true, true, false, false, false})

				scheduler.fire(5)
				So(finished, ShouldHaveLength, 1)
				So(ticks, ShouldHaveLength, 60)
			})

			Convey("Finish ends the quiz early", func() {
				_, _ = session.Answer("Luffy")
				result, ok := session.Finish()
				So(ok, ShouldBeTrue)
				So(result.Score, ShouldEqual, 1)
				So(finished, ShouldHaveLength, 1)
			})

			Convey("Reset returns to idle and stops the countdown", func() {
				session.Reset()
				So(session.State(), ShouldEqual, Idle)
				So(scheduler.cancelled, ShouldEqual, 1)

				scheduler.fire(60)
				So(finished, ShouldBeEmpty)
			})
		})
	})
}

func TestTickerScheduler(t *testing.T) {
	Convey("TickerScheduler stops after cancel", t, func() {
		var (
			mu    sync.Mutex
			count int
		)
		cancel := TickerScheduler{}.Every(5*time.Millisecond, func() {
			mu.Lock()
			count++
			mu.Unlock()
		})

		time.Sleep(30 * time.Millisecond)
		cancel()
		cancel()

		mu.Lock()
		stopped := count
		mu.Unlock()
		So(stopped, ShouldBeGreaterThan, 0)

		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		So(count, ShouldBeLessThanOrEqualTo, stopped+1)
	})
}
