// Package cache provides keyed, disk-persisted JSON caches on top of gache and the virtual filesystem.
package cache

import (
	"maps"
	"sync"
	"time"

	"github.com/animeverse/animeverse/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// entries is the on-disk document of a Keyed cache.
type entries[K comparable, V any] struct {
	Items map[K]V `json:"items"`
}

// Keyed is a thread-safe map persisted as a single JSON file.
// A zero lifetime keeps entries forever; otherwise the whole file expires at once.
type Keyed[K comparable, V any] struct {
	internal *gache.Cache[*entries[K, V]]
	mu       sync.RWMutex
}

// New opens (lazily) the cache stored at path.
func New[K comparable, V any](path string, lifetime time.Duration) *Keyed[K, V] {
	return &Keyed[K, V]{
		internal: gache.New[*entries[K, V]](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// Get retrieves the value stored under key.
func (c *Keyed[K, V]) Get(key K) mo.Option[V] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[V]()
	}

	if v, ok := data.Items[key]; ok {
		return mo.Some(v)
	}
	return mo.None[V]()
}

// Set stores value under key and persists the file.
func (c *Keyed[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Items == nil {
		data = &entries[K, V]{Items: make(map[K]V)}
	}
	data.Items[key] = value
	return c.internal.Set(data)
}

// Delete removes key from the cache.
func (c *Keyed[K, V]) Delete(key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}
	if expired || data == nil {
		return nil
	}

	delete(data.Items, key)
	return c.internal.Set(data)
}

// All returns a snapshot of every entry.
func (c *Keyed[K, V]) All() map[K]V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return map[K]V{}
	}
	return maps.Clone(data.Items)
}
