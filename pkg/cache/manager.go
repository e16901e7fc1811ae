package cache

import (
	"fmt"
	"sync"
)

// Manager owns one provider's set of named caches. Caches are created lazily
// on first request and memoized for the manager's lifetime: a given name
// always resolves to the same Cache instance.
type Manager[K comparable, V any] struct {
	providerName string
	create       func(name string) (Cache[K, V], error)

	mu     sync.RWMutex
	caches map[string]Cache[K, V]
}

// NewManager creates a manager that constructs caches through create. The
// construction function is invoked at most once per cache name, even under
// concurrent first access.
func NewManager[K comparable, V any](providerName string, create func(name string) (Cache[K, V], error)) (*Manager[K, V], error) {
	if create == nil {
		return nil, fmt.Errorf("%w: cache constructor must not be nil", ErrInvalidArgument)
	}
	return &Manager[K, V]{
		providerName: providerName,
		create:       create,
		caches:       make(map[string]Cache[K, V]),
	}, nil
}

// Provider returns the name of the provider this manager belongs to.
func (m *Manager[K, V]) Provider() string {
	return m.providerName
}

// Cache returns the cache with the given name, constructing and memoizing it
// on first request. Construction failures are not retried; the next call for
// the same name attempts construction again.
func (m *Manager[K, V]) Cache(name string) (Cache[K, V], error) {
	if name == "" {
		return nil, fmt.Errorf("%w: cache name must not be empty", ErrInvalidArgument)
	}

	m.mu.RLock()
	c, ok := m.caches[name]
	m.mu.RUnlock()
	if ok {
		return c, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have created the cache while we waited.
	if c, ok := m.caches[name]; ok {
		return c, nil
	}

	c, err := m.create(name)
	if err != nil {
		return nil, &OpError{Op: "create", Cache: name, Err: err}
	}
	m.caches[name] = c
	return c, nil
}

// All returns a snapshot of the name-to-cache mapping. Mutating the returned
// map does not affect the manager.
func (m *Manager[K, V]) All() map[string]Cache[K, V] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]Cache[K, V], len(m.caches))
	for name, c := range m.caches {
		out[name] = c
	}
	return out
}
