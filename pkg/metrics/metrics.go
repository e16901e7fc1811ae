// Package metrics provides the centralized Prometheus metrics reference for
// cachekit. All metrics are defined next to the code they observe (pkg/cache)
// and registered automatically via promauto.
//
// This package documents the exported series in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by cachekit. All metrics
// are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - cachekit_hits_total{backend} (Counter): Cache hits by backend (memory, redis)
//   - cachekit_misses_total{backend} (Counter): Cache misses by backend
//   - cachekit_evictions_total{backend} (Counter): Entries evicted by policy
//   - cachekit_entries{backend,cache} (Gauge): Resident entries per named cache
//   - cachekit_errors_total{backend,operation} (Counter): Failed operations
//     (get, put, evict, clear, serialize, deserialize)
//
// Selection Metrics (pkg/cache):
//   - cachekit_provider_fallbacks_total (Counter): One-shot fallbacks to the
//     in-process backend
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate per backend
//   sum by (backend) (rate(cachekit_hits_total[5m])) /
//   (sum by (backend) (rate(cachekit_hits_total[5m])) + sum by (backend) (rate(cachekit_misses_total[5m])))
//
//   # Operation Error Rate
//   rate(cachekit_errors_total[5m])
//
//   # Fallbacks (should be zero in a healthy deployment)
//   increase(cachekit_provider_fallbacks_total[1h])
