// Package memory implements the in-process cache backend: a bounded map with
// LRU eviction and write-anchored TTL expiration. It is the fallback backend
// every deployment can rely on, so construction must only ever fail on
// invalid configuration.
package memory

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/cachekit/pkg/cache"
)

const backend = "memory"

// Config holds the in-process backend configuration.
type Config struct {
	// TTL is the write-anchored lifetime of an entry. Zero disables
	// expiration. An entry's age is measured from its most recent Put,
	// not from last access.
	TTL time.Duration

	// MaxSize is the maximum number of resident entries. Inserting beyond
	// it evicts the least recently used entry.
	MaxSize int
}

// Validate checks the configuration's shape. The same check runs at cache,
// manager and provider construction.
func (c Config) Validate() error {
	if c.TTL < 0 {
		return fmt.Errorf("%w: ttl must not be negative (got %s)", cache.ErrInvalidArgument, c.TTL)
	}
	if c.MaxSize <= 0 {
		return fmt.Errorf("%w: max size must be positive (got %d)", cache.ErrInvalidArgument, c.MaxSize)
	}
	return nil
}

// DefaultConfig returns the configuration used when none is supplied,
// including by the fallback path of the resolver.
func DefaultConfig() Config {
	return Config{
		TTL:     5 * time.Minute,
		MaxSize: 10_000,
	}
}

// Stats reports cumulative counters for one cache instance.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

type entry[K comparable, V any] struct {
	key     K
	value   V
	expires time.Time
}

// Cache is a bounded in-process cache with LRU eviction and write-anchored
// TTL. Safe for concurrent use.
type Cache[K comparable, V any] struct {
	name string
	cfg  Config
	now  func() time.Time

	mu      sync.Mutex
	entries map[K]*list.Element
	order   *list.List // front = most recently used
	stats   Stats
}

// New creates a new in-process cache. Fails with cache.ErrInvalidArgument if
// the configuration is out of range.
func New[K comparable, V any](name string, cfg Config) (*Cache[K, V], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: cache name must not be empty", cache.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		name:    name,
		cfg:     cfg,
		now:     time.Now,
		entries: make(map[K]*list.Element),
		order:   list.New(),
	}, nil
}

// Get returns the value stored under key. Expired entries are removed on
// access and reported as misses.
func (c *Cache[K, V]) Get(_ context.Context, key K) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		cache.CacheMisses.WithLabelValues(backend).Inc()
		return zero, false, nil
	}

	ent := elem.Value.(*entry[K, V])
	if c.expired(ent) {
		c.remove(elem, ent)
		c.stats.Misses++
		c.stats.Expired++
		cache.CacheMisses.WithLabelValues(backend).Inc()
		return zero, false, nil
	}

	c.order.MoveToFront(elem)
	c.stats.Hits++
	cache.CacheHits.WithLabelValues(backend).Inc()
	return ent.value, true, nil
}

// Put stores value under key. The entry's expiration is re-anchored to this
// write. When the cache is full the least recently used entry is evicted.
func (c *Cache[K, V]) Put(_ context.Context, key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := time.Time{}
	if c.cfg.TTL > 0 {
		expires = c.now().Add(c.cfg.TTL)
	}

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.expires = expires
		c.order.MoveToFront(elem)
		return nil
	}

	if len(c.entries) >= c.cfg.MaxSize {
		c.evictOldest()
	}

	ent := &entry[K, V]{key: key, value: value, expires: expires}
	c.entries[key] = c.order.PushFront(ent)
	cache.CacheEntries.WithLabelValues(backend, c.name).Set(float64(len(c.entries)))
	return nil
}

// Evict removes key if present.
func (c *Cache[K, V]) Evict(_ context.Context, key K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.remove(elem, elem.Value.(*entry[K, V]))
	}
	return nil
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.order.Init()
	cache.CacheEntries.WithLabelValues(backend, c.name).Set(0)
	return nil
}

// Len returns the number of resident entries, including not-yet-collected
// expired ones.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache[K, V]) expired(ent *entry[K, V]) bool {
	return !ent.expires.IsZero() && c.now().After(ent.expires)
}

func (c *Cache[K, V]) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.remove(elem, elem.Value.(*entry[K, V]))
	c.stats.Evictions++
	cache.CacheEvictions.WithLabelValues(backend).Inc()
}

// remove must be called with mu held.
func (c *Cache[K, V]) remove(elem *list.Element, ent *entry[K, V]) {
	c.order.Remove(elem)
	delete(c.entries, ent.key)
	cache.CacheEntries.WithLabelValues(backend, c.name).Set(float64(len(c.entries)))
}
