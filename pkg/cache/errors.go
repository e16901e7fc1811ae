package cache

import (
	"errors"
	"fmt"

	"github.com/Sternrassler/cachekit/pkg/provider"
)

// Sentinels shared with the provider registry so callers match one taxonomy
// with errors.Is regardless of which layer failed.
var (
	// ErrInvalidArgument indicates malformed caller input: an empty cache
	// name, an out-of-range TTL or size. Detected at the API boundary
	// before any side effect.
	ErrInvalidArgument = provider.ErrInvalidArgument

	// ErrProviderUnavailable indicates that no usable provider could be
	// selected. Treated identically to "not found" for ranking purposes.
	ErrProviderUnavailable = provider.ErrUnavailable
)

// OpError reports a backend-level failure during a cache operation. It
// carries enough context to diagnose the failure without exposing
// backend-specific error types.
type OpError struct {
	// Op is the failed operation: "create", "get", "put", "evict",
	// "clear", "serialize" or "deserialize".
	Op string

	// Cache is the logical cache name.
	Cache string

	// Key is the affected key, if the operation had one.
	Key string

	// Err is the underlying backend error.
	Err error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %q: %s key %q: %v", e.Cache, e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %q: %s: %v", e.Cache, e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *OpError) Unwrap() error {
	return e.Err
}

// IsOperationFailed reports whether err is (or wraps) a cache operation
// failure.
func IsOperationFailed(err error) bool {
	var oe *OpError
	return errors.As(err, &oe)
}
