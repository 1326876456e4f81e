// Package leaderboard persists the player's progress and ranks everyone who has played on this machine.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/animeverse/animeverse/internal/cache"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/where"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

const (
	// KeyUser holds the current player as JSON.
	KeyUser = "user"

	// KeyPool holds every player ever seen, in insertion order.
	KeyPool = "pool"

	// KeyPoolBackup keeps an unreadable pool before it is replaced.
	KeyPoolBackup = "pool.bak"
)

// Store is a string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps values in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileStore persists values in a JSON file on the application filesystem.
type FileStore struct {
	values *cache.Keyed[string, string]
}

// NewFileStore opens the store at path. Values never expire.
func NewFileStore(path string) *FileStore {
	return &FileStore{values: cache.New[string, string](path, 0)}
}

func (f *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values.Get(key).Get()
	return v, ok, nil
}

func (f *FileStore) Set(_ context.Context, key, value string) error {
	return f.values.Set(key, value)
}

// RedisStore keeps values in Redis under a common key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps a connected client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leaderboard: redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("leaderboard: redis set %s: %w", key, err)
	}
	return nil
}

// OpenStore builds the store selected by the configuration.
func OpenStore() (Store, error) {
	switch backend := viper.GetString(key.LeaderboardBackend); backend {
	case "", "file":
		return NewFileStore(where.Leaderboard()), nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: viper.GetString(key.LeaderboardRedisAddr)})
		return NewRedisStore(client, "animeverse:leaderboard:"), nil
	default:
		return nil, fmt.Errorf("leaderboard: unknown backend %q", backend)
	}
}
