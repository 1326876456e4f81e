package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/animeverse/animeverse/log"
	"github.com/samber/mo"
)

var (
	// ErrMissingCredential is returned before any network call when no API key is available.
	ErrMissingCredential = errors.New("quiz: missing API key")

	// ErrBusy is returned when a quiz is requested while another is being generated or played.
	ErrBusy = errors.New("quiz: session busy")

	// ErrNotActive is returned when answering outside a running quiz.
	ErrNotActive = errors.New("quiz: no active quiz")

	// ErrAborted is returned when the session was reset while a quiz was being generated.
	ErrAborted = errors.New("quiz: generation aborted")
)

// Tick is the countdown resolution.
const Tick = time.Second

// State of a Session.
type State int

const (
	Idle State = iota
	Generating
	Active
	Results
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Active:
		return "active"
	case Results:
		return "results"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scheduler runs fn every d until the returned cancel func is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// TickerScheduler is the Scheduler backed by time.Ticker.
type TickerScheduler struct{}

// Every implements Scheduler.
func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Session drives one player through generated quizzes.
// It is safe for concurrent use by the countdown and the UI.
type Session struct {
	mu        sync.Mutex
	generator Generator
	scheduler Scheduler

	state     State
	prior     State
	epoch     uint64
	quiz      *Quiz
	index     int
	answers   []string
	remaining time.Duration
	cancel    func()
	result    *Result

	onTick   func(remaining time.Duration)
	onFinish func(Result)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithScheduler replaces the ticker-based countdown.
func WithScheduler(s Scheduler) SessionOption {
	return func(session *Session) {
		session.scheduler = s
	}
}

// NewSession returns an idle session.
func NewSession(g Generator, opts ...SessionOption) *Session {
	s := &Session{
		generator: g,
		scheduler: TickerScheduler{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnTick registers the countdown callback. It runs outside the session lock.
func (s *Session) OnTick(fn func(remaining time.Duration)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

// OnFinish registers the callback fired exactly once per finished quiz.
func (s *Session) OnFinish(fn func(Result)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinish = fn
}

// Generate requests a new quiz of the given kind and starts it.
func (s *Session) Generate(ctx context.Context, kind Kind, credential string) (*Quiz, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrMissingCredential
	}

	duration, difficulty, err := kind.Settings()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state == Generating || s.state == Active {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.prior = s.state
	s.state = Generating
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	quiz, err := s.generator.Generate(ctx, Request{
		Kind:       kind,
		Difficulty: difficulty,
		Duration:   duration,
		Credential: credential,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || s.state != Generating {
		return nil, ErrAborted
	}

	if err == nil {
		err = usable(quiz)
	}
	if err != nil {
		s.state = s.prior
		return nil, err
	}

	s.state = Active
	s.quiz = quiz
	s.index = 0
	s.answers = make([]string, len(quiz.Questions))
	s.remaining = quiz.Duration
	s.result = nil
	s.epoch++
	active := s.epoch
	s.cancel = s.scheduler.Every(Tick, func() {
		s.tick(active)
	})

	log.WithFields(log.Fields{"quiz": quiz.ID.String(), "kind": kind}).Info("quiz started")
	return quiz, nil
}

// tick advances the countdown of the quiz started at epoch.
// usable rejects quizzes a Generator returned without the full set of questions.
func usable(q *Quiz) error {
	if q == nil {
		return fmt.Errorf("%w: generator returned no quiz", ErrMalformedPayload)
	}
	if len(q.Questions) != QuestionsPerQuiz {
		return fmt.Errorf("%w: expected %d questions, got %d", ErrMalformedPayload, QuestionsPerQuiz, len(q.Questions))
	}
	return nil
}

func (s *Session) tick(epoch uint64) {
	s.mu.Lock()
	if s.state != Active || s.epoch != epoch {
		s.mu.Unlock()
		return
	}

	s.remaining -= Tick
	if s.remaining < 0 {
		s.remaining = 0
	}
	remaining := s.remaining
	onTick := s.onTick

	var (
		result   Result
		finished bool
		onFinish func(Result)
	)
	if remaining == 0 {
		result, finished = s.finishLocked(true)
		onFinish = s.onFinish
	}
	s.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if finished && onFinish != nil {
		onFinish(result)
	}
}

// finishLocked is the only transition from Active to Results. Callers hold mu.
func (s *Session) finishLocked(timedOut bool) (Result, bool) {
	if s.state != Active {
		return Result{}, false
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++

	score, correct := Score(s.quiz, s.answers)
	result := Result{
		Quiz:     s.quiz,
		Answers:  append([]string(nil), s.answers...),
		Correct:  correct,
		Score:    score,
		XP:       Reward(score),
		TimedOut: timedOut,
	}
	s.result = &result
	s.state = Results

	log.WithFields(log.Fields{
		"quiz":     s.quiz.ID.String(),
		"score":    score,
		"timedOut": timedOut,
	}).Info("quiz finished")
	return result, true
}

// Answer records text for the current question. The quiz finishes after the last one.
func (s *Session) Answer(text string) (finished bool, err error) {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false, ErrNotActive
	}

	s.answers[s.index] = text
	if s.index < len(s.quiz.Questions)-1 {
		s.index++
		s.mu.Unlock()
		return false, nil
	}

	result, ok := s.finishLocked(false)
	onFinish := s.onFinish
	s.mu.Unlock()

	if ok && onFinish != nil {
		onFinish(result)
	}
	return true, nil
}

// Finish ends the active quiz now. It reports false when no quiz was active.
func (s *Session) Finish() (Result, bool) {
	s.mu.Lock()
	result, ok := s.finishLocked(false)
	onFinish := s.onFinish
	s.mu.Unlock()

	if ok && onFinish != nil {
		onFinish(result)
	}
	return result, ok
}

// Reset stops any running quiz and returns to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.epoch++
	s.state = Idle
	s.quiz = nil
	s.answers = nil
	s.index = 0
	s.remaining = 0
	s.result = nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining returns the time left on the countdown.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Current returns the question being asked with its zero-based index.
func (s *Session) Current() (Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Active {
		return Question{}, 0, false
	}
	return s.quiz.Questions[s.index], s.index, true
}

// Quiz returns the quiz being played or just finished.
func (s *Session) Quiz() mo.Option[*Quiz] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mo.EmptyableToOption(s.quiz)
}

// Result returns the outcome of the last finished quiz.
func (s *Session) Result() mo.Option[Result] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		return mo.None[Result]()
	}
	return mo.Some(*s.result)
}
