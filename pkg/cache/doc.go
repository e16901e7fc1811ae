// Package cache defines the cache abstraction shared by all backends: the
// per-entry Cache contract, the Serializer used by out-of-process backends,
// the CacheProvider factory contract, the named-cache Manager, and the
// Resolver that selects a provider and falls back to the in-process backend
// when the preferred one cannot be constructed.
//
// # Basic Usage
//
//	// Register providers once at process start
//	registry := provider.NewRegistry[cache.Provider[string, []byte]]()
//	registry.Register(func() cache.Provider[string, []byte] {
//		p, _ := memory.NewProvider[string, []byte](memory.DefaultConfig())
//		return p
//	})
//
//	// Resolve a manager, preferring the configured provider
//	resolver, err := cache.NewResolver(registry, "redis", fallbackProvider)
//	if err != nil {
//		return err
//	}
//	manager, err := resolver.Manager(ctx)
//	if err != nil {
//		return err
//	}
//
//	// Named caches are created lazily and memoized
//	sessions, err := manager.Cache("sessions")
//	if err != nil {
//		return err
//	}
//	if err := sessions.Put(ctx, "user:42", payload); err != nil {
//		return err
//	}
//
// # Failure Model
//
// Malformed input (empty names, invalid configuration) fails with
// provider.ErrInvalidArgument before any side effect. Backend failures during
// cache operations surface as *OpError carrying the operation, cache name,
// and key; backend-specific error types never reach callers directly.
// Construction failure of the preferred provider is logged and answered with
// the in-process fallback, once, without automatic retry.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - cachekit_hits_total{backend} - Cache hits by backend
//   - cachekit_misses_total{backend} - Cache misses by backend
//   - cachekit_evictions_total{backend} - Entries evicted by policy
//   - cachekit_errors_total{backend,operation} - Failed cache operations
//   - cachekit_entries{backend,cache} - Resident entries per named cache
//   - cachekit_provider_fallbacks_total - Fallbacks to the in-process backend
package cache
