package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Sternrassler/cachekit/pkg/logging"
	"github.com/Sternrassler/cachekit/pkg/provider"
)

// Resolver selects a cache provider and produces its manager. The selection
// runs once: the preferred provider (or the best available one when no
// preference is configured) is tried first, and any construction failure
// falls back to the supplied in-process provider. The failed provider is
// never retried automatically.
type Resolver[K comparable, V any] struct {
	registry  *provider.Registry[Provider[K, V]]
	preferred string
	fallback  Provider[K, V]
	logger    zerolog.Logger

	once    sync.Once
	manager *Manager[K, V]
	err     error
}

// NewResolver creates a resolver over the given registry. preferred names the
// provider to try first; an empty string means "highest-priority available".
// fallback is the in-process provider substituted when the preferred one
// cannot be constructed.
func NewResolver[K comparable, V any](registry *provider.Registry[Provider[K, V]], preferred string, fallback Provider[K, V]) (*Resolver[K, V], error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: registry must not be nil", ErrInvalidArgument)
	}
	if fallback == nil {
		return nil, fmt.Errorf("%w: fallback provider must not be nil", ErrInvalidArgument)
	}
	return &Resolver[K, V]{
		registry:  registry,
		preferred: preferred,
		fallback:  fallback,
		logger:    logging.NewLogger("cache-resolver"),
	}, nil
}

// Manager returns the resolved cache manager, performing the selection on
// first call. As long as the fallback provider's own configuration is valid,
// callers always receive a working manager.
func (r *Resolver[K, V]) Manager(ctx context.Context) (*Manager[K, V], error) {
	r.once.Do(func() {
		r.manager, r.err = r.resolve(ctx)
	})
	return r.manager, r.err
}

func (r *Resolver[K, V]) resolve(ctx context.Context) (*Manager[K, V], error) {
	selected, ok := r.selectProvider(ctx)
	if ok {
		m, err := selected.CreateManager()
		if err == nil {
			r.logger.Info().
				Str("provider", selected.Name()).
				Msg("cache provider selected")
			return m, nil
		}
		r.logger.Warn().
			Err(err).
			Str("provider", selected.Name()).
			Str("fallback", r.fallback.Name()).
			Msg("cache provider construction failed, falling back")
		ProviderFallbacks.Inc()
	}

	return r.fallback.CreateManager()
}

// selectProvider picks the provider to try first. A preferred provider that
// is not registered counts as a miss and routes to the fallback.
func (r *Resolver[K, V]) selectProvider(ctx context.Context) (Provider[K, V], bool) {
	if r.preferred != "" {
		p, ok, err := r.registry.Find(r.preferred)
		if err != nil || !ok {
			r.logger.Warn().
				Str("provider", r.preferred).
				Str("fallback", r.fallback.Name()).
				Msg("preferred cache provider not registered, falling back")
			ProviderFallbacks.Inc()
			return nil, false
		}
		return p, true
	}

	p, ok := r.registry.Best(ctx)
	if !ok {
		r.logger.Warn().
			Str("fallback", r.fallback.Name()).
			Msg("no cache provider available, falling back")
		ProviderFallbacks.Inc()
		return nil, false
	}
	return p, true
}
