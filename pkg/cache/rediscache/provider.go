package rediscache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/cachekit/pkg/cache"
)

const (
	// ProviderName identifies the Redis backend in the registry.
	ProviderName = "redis"

	// DefaultPriority ranks the Redis backend below the in-process one;
	// it is only selected when configured explicitly or when ranked best
	// among available providers.
	DefaultPriority = 5
)

// Provider is the Redis backend's factory. It shares one client across all
// caches it creates; the namespace plus cache name keep their keyspaces
// disjoint.
type Provider[K comparable, V any] struct {
	client *redis.Client
	ser    cache.Serializer[V]
	cfg    Config
}

// NewProvider creates the Redis provider. A nil client or serializer, or an
// invalid configuration, fails with cache.ErrInvalidArgument.
func NewProvider[K comparable, V any](client *redis.Client, ser cache.Serializer[V], cfg Config) (*Provider[K, V], error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client must not be nil", cache.ErrInvalidArgument)
	}
	if ser == nil {
		return nil, fmt.Errorf("%w: serializer must not be nil", cache.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider[K, V]{client: client, ser: ser, cfg: cfg}, nil
}

func (p *Provider[K, V]) Name() string  { return ProviderName }
func (p *Provider[K, V]) Priority() int { return DefaultPriority }

// Available pings Redis within the configured connect timeout. A disabled
// provider is never available.
func (p *Provider[K, V]) Available(ctx context.Context) bool {
	if !p.cfg.Enabled {
		return false
	}
	if p.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ConnectTimeout)
		defer cancel()
	}
	return p.client.Ping(ctx).Err() == nil
}

func (p *Provider[K, V]) Capabilities() map[string]bool {
	return map[string]bool{
		"bounded":     false,
		"ttl":         false,
		"namespacing": true,
		"shared":      true,
	}
}

func (p *Provider[K, V]) RequiredConfig() map[string]string {
	return map[string]string{
		"url":       "redis address, host:port",
		"namespace": "key prefix isolating this deployment's caches",
	}
}

func (p *Provider[K, V]) OptionalConfig() map[string]string {
	return map[string]string{
		"connection_timeout_ms": "connection establishment and ping timeout",
		"command_timeout_ms":    "per-command read/write timeout",
		"enabled":               "gates the provider entirely",
	}
}

// CreateCache constructs a Redis-backed cache sharing the provider's client.
func (p *Provider[K, V]) CreateCache(name string) (cache.Cache[K, V], error) {
	return New[K, V](p.client, name, p.cfg.Namespace, p.ser)
}

// CreateManager constructs the manager owning this provider's named caches.
// The connection is verified here so that an unreachable store is reported
// at construction time and the caller can fall back.
func (p *Provider[K, V]) CreateManager() (*cache.Manager[K, V], error) {
	if !p.cfg.Enabled {
		return nil, fmt.Errorf("%w: redis provider is disabled", cache.ErrProviderUnavailable)
	}

	ctx := context.Background()
	if p.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ConnectTimeout)
		defer cancel()
	}
	if err := p.client.Ping(ctx).Err(); err != nil {
		return nil, &cache.OpError{Op: "create", Cache: "", Err: fmt.Errorf("ping redis at %s: %w", p.cfg.URL, err)}
	}

	return cache.NewManager(ProviderName, p.CreateCache)
}
