package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by backend (memory, redis).
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachekit_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"backend"},
	)

	// CacheMisses tracks cache misses by backend.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachekit_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"backend"},
	)

	// CacheEvictions tracks entries evicted by the backend's policy.
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachekit_evictions_total",
			Help: "Total number of entries evicted by policy",
		},
		[]string{"backend"},
	)

	// CacheEntries tracks resident entries per named cache.
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cachekit_entries",
			Help: "Current number of resident entries per cache",
		},
		[]string{"backend", "cache"},
	)

	// CacheErrors tracks failed cache operations.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cachekit_errors_total",
			Help: "Total number of failed cache operations",
		},
		[]string{"backend", "operation"},
	)

	// ProviderFallbacks tracks one-shot fallbacks to the in-process backend.
	ProviderFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cachekit_provider_fallbacks_total",
			Help: "Total number of fallbacks to the in-process backend",
		},
	)
)
