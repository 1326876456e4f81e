package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/animeverse/animeverse/log"
	"github.com/animeverse/animeverse/quiz"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// DefaultSize is the number of ranked entries kept in the top view.
const DefaultSize = 10

var (
	// ErrEmptyUsername is returned when a session is started without a name.
	ErrEmptyUsername = errors.New("leaderboard: empty username")

	// ErrInvalidScore is returned for scores outside 0 to quiz.QuestionsPerQuiz.
	ErrInvalidScore = errors.New("leaderboard: invalid score")
)

// Board ranks the players kept in a Store.
// The pool read-modify-write assumes a single writer.
type Board struct {
	store Store
	size  int

	mu  sync.RWMutex
	top []Entry
}

// New returns a board keeping the best size players.
func New(store Store, size int) *Board {
	if size <= 0 {
		size = DefaultSize
	}
	return &Board{store: store, size: size}
}

func (b *Board) pool(ctx context.Context) ([]UserData, error) {
	raw, ok, err := b.store.Get(ctx, KeyPool)
	if err != nil || !ok {
		return nil, err
	}

	var pool []UserData
	if err := json.Unmarshal([]byte(raw), &pool); err != nil {
		if err := b.store.Set(ctx, KeyPoolBackup, raw); err != nil {
			return nil, fmt.Errorf("backing up unreadable pool: %w", err)
		}
		log.Warnf("unreadable leaderboard pool moved to %q: %v", KeyPoolBackup, err)
		return nil, nil
	}
	return pool, nil
}

// rank orders the pool by XP, highest first, keeping insertion order among ties.
func rank(pool []UserData, size int) []Entry {
	sorted := slices.Clone(pool)
	slices.SortStableFunc(sorted, func(a, b UserData) int {
		return b.XP - a.XP
	})

	if len(sorted) > size {
		sorted = sorted[:size]
	}

	return lo.Map(sorted, func(u UserData, i int) Entry {
		return Entry{UserData: u, Rank: i + 1, Medal: MedalFor(i + 1)}
	})
}

// Load reads the pool and recomputes the top view.
func (b *Board) Load(ctx context.Context) error {
	pool, err := b.pool(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.top = rank(pool, b.size)
	b.mu.Unlock()
	return nil
}

// Top returns the ranked entries computed by the last Load or save.
func (b *Board) Top() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.top)
}

// LoadUser returns the current player, if any.
func (b *Board) LoadUser(ctx context.Context) (mo.Option[UserData], error) {
	raw, ok, err := b.store.Get(ctx, KeyUser)
	if err != nil || !ok {
		return mo.None[UserData](), err
	}

	var u UserData
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		log.Warnf("discarding unreadable user record: %v", err)
		return mo.None[UserData](), nil
	}
	return mo.Some(u), nil
}

// SaveUser stores u as the current player and upserts it into the pool.
func (b *Board) SaveUser(ctx context.Context, u UserData) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, KeyUser, string(raw)); err != nil {
		return err
	}

	pool, err := b.pool(ctx)
	if err != nil {
		return err
	}

	if _, index, found := lo.FindIndexOf(pool, func(p UserData) bool {
		return p.Username == u.Username
	}); found {
		pool[index] = u
	} else {
		pool = append(pool, u)
	}

	raw, err = json.Marshal(pool)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, KeyPool, string(raw)); err != nil {
		return err
	}

	b.mu.Lock()
	b.top = rank(pool, b.size)
	b.mu.Unlock()

	log.WithFields(log.Fields{"user": u.Username, "xp": u.XP}).Debug("saved user")
	return nil
}

// find returns the pooled record of username, or a fresh one.
func (b *Board) find(ctx context.Context, username string) (UserData, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return UserData{}, ErrEmptyUsername
	}

	pool, err := b.pool(ctx)
	if err != nil {
		return UserData{}, err
	}

	u, found := lo.Find(pool, func(p UserData) bool {
		return p.Username == username
	})
	if !found {
		u = UserData{Username: username}
	}
	return u, nil
}

// StartSession makes username the current player, resuming its record when it exists.
func (b *Board) StartSession(ctx context.Context, username string) (UserData, error) {
	u, err := b.find(ctx, username)
	if err != nil {
		return UserData{}, err
	}

	if err := b.SaveUser(ctx, u); err != nil {
		return UserData{}, fmt.Errorf("starting session for %s: %w", username, err)
	}
	return u, nil
}

// Record credits username with a finished quiz and saves the result.
func (b *Board) Record(ctx context.Context, username string, score int) (UserData, error) {
	if score < 0 || score > quiz.QuestionsPerQuiz {
		return UserData{}, fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	u, err := b.find(ctx, username)
	if err != nil {
		return UserData{}, err
	}

	u = u.Complete(score)
	if err := b.SaveUser(ctx, u); err != nil {
		return UserData{}, err
	}
	return u, nil
}
