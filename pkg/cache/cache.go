package cache

import (
	"context"

	"github.com/Sternrassler/cachekit/pkg/provider"
)

// Cache is the per-entry data access contract implemented by every backend.
// All operations are safe for concurrent use without external locking.
type Cache[K comparable, V any] interface {
	// Get returns the value stored under key, or ok=false on a miss.
	Get(ctx context.Context, key K) (V, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key K, value V) error

	// Evict removes key if present. Evicting an absent key is not an error.
	Evict(ctx context.Context, key K) error

	// Clear removes every entry owned by this cache. For namespaced
	// backends this touches only the cache's own keyspace.
	Clear(ctx context.Context) error
}

// Provider is the factory contract for one cache backend. Given a logical
// cache name it produces a Cache; it also produces the Manager owning all
// named caches for this provider.
type Provider[K comparable, V any] interface {
	provider.Provider

	// CreateCache constructs a new cache with the given name.
	CreateCache(name string) (Cache[K, V], error)

	// CreateManager constructs the manager owning this provider's named
	// caches. Construction failures are reported here, not deferred to
	// first use.
	CreateManager() (*Manager[K, V], error)
}
