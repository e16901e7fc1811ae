package memory

import (
	"context"

	"github.com/Sternrassler/cachekit/pkg/cache"
)

const (
	// ProviderName identifies the in-process backend in the registry.
	ProviderName = "memory"

	// DefaultPriority ranks the in-process backend above networked ones:
	// it is always constructible, so it wins whenever no preference is
	// configured.
	DefaultPriority = 10
)

// NewManager creates a manager whose caches all share cfg. Fails with
// cache.ErrInvalidArgument on invalid configuration.
func NewManager[K comparable, V any](cfg Config) (*cache.Manager[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cache.NewManager(ProviderName, func(name string) (cache.Cache[K, V], error) {
		return New[K, V](name, cfg)
	})
}

// Provider is the in-process backend's factory.
type Provider[K comparable, V any] struct {
	cfg Config
}

// NewProvider creates the in-process provider. Fails with
// cache.ErrInvalidArgument on invalid configuration.
func NewProvider[K comparable, V any](cfg Config) (*Provider[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider[K, V]{cfg: cfg}, nil
}

func (p *Provider[K, V]) Name() string  { return ProviderName }
func (p *Provider[K, V]) Priority() int { return DefaultPriority }

// Available always reports true: the in-process backend has no external
// dependency.
func (p *Provider[K, V]) Available(_ context.Context) bool { return true }

func (p *Provider[K, V]) Capabilities() map[string]bool {
	return map[string]bool{
		"bounded":     true,
		"ttl":         true,
		"namespacing": false,
		"shared":      false,
	}
}

func (p *Provider[K, V]) RequiredConfig() map[string]string {
	return map[string]string{
		"max_size": "maximum number of resident entries per cache (> 0)",
	}
}

func (p *Provider[K, V]) OptionalConfig() map[string]string {
	return map[string]string{
		"ttl_seconds": "write-anchored entry lifetime in seconds (0 disables expiration)",
	}
}

// CreateCache constructs a new in-process cache with the provider's
// configuration.
func (p *Provider[K, V]) CreateCache(name string) (cache.Cache[K, V], error) {
	return New[K, V](name, p.cfg)
}

// CreateManager constructs the manager owning this provider's named caches.
func (p *Provider[K, V]) CreateManager() (*cache.Manager[K, V], error) {
	return NewManager[K, V](p.cfg)
}
