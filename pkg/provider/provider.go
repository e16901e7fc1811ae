// Package provider implements discovery and selection of pluggable backend
// implementations. Providers register constructors in a Registry; the registry
// builds its ranked snapshot lazily on first use and serves it unchanged until
// invalidated.
package provider

import (
	"context"
	"errors"
)

// Common errors returned by the registry.
var (
	// ErrInvalidArgument indicates malformed caller input, such as an empty
	// provider name. It is never retried or recovered.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnavailable indicates that a provider exists but currently fails
	// its availability check.
	ErrUnavailable = errors.New("provider unavailable")
)

// Provider is the base contract every pluggable implementation satisfies.
// Implementations must be stateless factories with respect to global process
// state: all configuration is supplied at provider construction time.
type Provider interface {
	// Name returns the provider's unique name within its contract.
	Name() string

	// Priority ranks providers for selection. Higher wins. Providers that
	// do not care return 0.
	Priority() int

	// Available reports whether the provider can currently serve requests.
	// For networked providers this typically performs a connection check.
	Available(ctx context.Context) bool

	// Capabilities maps capability names to support flags. Purely
	// informational for callers deciding how to use a provider.
	Capabilities() map[string]bool

	// RequiredConfig maps required configuration keys to human-readable
	// descriptions, queryable before construction.
	RequiredConfig() map[string]string

	// OptionalConfig maps optional configuration keys to human-readable
	// descriptions.
	OptionalConfig() map[string]string
}

// Constructor builds a provider instance. Constructors are invoked at most
// once per registry generation, during discovery.
type Constructor[P Provider] func() P
