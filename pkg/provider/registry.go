package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry discovers registered providers and exposes them ranked by
// priority. Discovery runs at most once per generation, lazily on first use;
// Invalidate starts a new generation without mutating the old snapshot.
type Registry[P Provider] struct {
	mu           sync.Mutex
	constructors []Constructor[P]

	// snapshot is the current generation's ranked provider list. Readers
	// load it without taking mu; it is replaced wholesale, never mutated.
	snapshot atomic.Pointer[[]P]

	// lookups memoizes successful Find results per name. The map itself is
	// swapped on Invalidate, so a lookup racing an invalidation stores into
	// the abandoned generation's map rather than leaking a stale provider
	// into the new one.
	lookups atomic.Pointer[sync.Map] // string -> P
}

// NewRegistry creates an empty registry.
func NewRegistry[P Provider]() *Registry[P] {
	r := &Registry[P]{}
	r.lookups.Store(&sync.Map{})
	return r
}

// Register adds a provider constructor to the registration table. Providers
// registered after the first discovery become visible only after Invalidate.
func (r *Registry[P]) Register(c Constructor[P]) {
	if c == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors = append(r.constructors, c)
}

// List returns all discovered providers sorted by priority descending, ties
// broken by registration order. The first call triggers discovery; exactly
// one discovery pass runs even under concurrent first calls. The returned
// slice is a copy and may be mutated freely by the caller.
func (r *Registry[P]) List() []P {
	if snap := r.snapshot.Load(); snap != nil {
		return copyOf(*snap)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another caller may have completed discovery while we waited.
	if snap := r.snapshot.Load(); snap != nil {
		return copyOf(*snap)
	}

	providers := make([]P, 0, len(r.constructors))
	for _, c := range r.constructors {
		providers = append(providers, c())
	}
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Priority() > providers[j].Priority()
	})

	r.snapshot.Store(&providers)
	return copyOf(providers)
}

// Find returns the provider with the given name, or ok=false if no such
// provider is registered. Results are memoized per name for the lifetime of
// the current generation. An empty name is a caller error.
func (r *Registry[P]) Find(name string) (P, bool, error) {
	var zero P
	if name == "" {
		return zero, false, fmt.Errorf("%w: provider name must not be empty", ErrInvalidArgument)
	}

	// Pin this generation's map before consulting the snapshot. Invalidate
	// clears the snapshot before installing a fresh map, so if the map seen
	// here is stale, so is any provider stored into it.
	lookups := r.lookups.Load()
	if p, ok := lookups.Load(name); ok {
		return p.(P), true, nil
	}

	for _, p := range r.List() {
		if p.Name() == name {
			actual, _ := lookups.LoadOrStore(name, p)
			return actual.(P), true, nil
		}
	}
	return zero, false, nil
}

// Best returns the highest-priority provider whose availability check passes,
// or ok=false if none does. An empty registry yields ok=false, not an error.
func (r *Registry[P]) Best(ctx context.Context) (P, bool) {
	for _, p := range r.List() {
		if p.Available(ctx) {
			return p, true
		}
	}
	var zero P
	return zero, false
}

// Invalidate discards the current snapshot and all memoized lookups. The next
// List call re-runs discovery. Safe to call concurrently with in-flight
// lookups; those observe either the old or the new generation. The snapshot
// is cleared before the lookup map is replaced: a Find that pinned the old
// map can only memoize into the old map, never into the new generation.
func (r *Registry[P]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Store(nil)
	r.lookups.Store(&sync.Map{})
}

func copyOf[P Provider](providers []P) []P {
	out := make([]P, len(providers))
	copy(out, providers)
	return out
}
