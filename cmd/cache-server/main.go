package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/cachekit/pkg/cache"
	"github.com/Sternrassler/cachekit/pkg/cache/memory"
	"github.com/Sternrassler/cachekit/pkg/cache/rediscache"
	"github.com/Sternrassler/cachekit/pkg/logging"
	"github.com/Sternrassler/cachekit/pkg/provider"
)

func main() {
	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "") == "true",
		Output: os.Stderr,
	})

	// Configuration from environment
	port := getEnv("PORT", "8080")
	preferred := getEnv("CACHE_PROVIDER", "")
	redisURL := getEnv("REDIS_URL", "")
	namespace := getEnv("CACHE_NAMESPACE", "cachekit")
	ttlSeconds := getEnvInt(logger, "CACHE_TTL_SECONDS", 300)
	maxSize := getEnvInt(logger, "CACHE_MAX_SIZE", 10_000)

	memCfg := memory.Config{
		TTL:     time.Duration(ttlSeconds) * time.Second,
		MaxSize: maxSize,
	}

	fallback, err := memory.NewProvider[string, []byte](memCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid in-process cache configuration")
	}

	registry := provider.NewRegistry[cache.Provider[string, []byte]]()
	registry.Register(func() cache.Provider[string, []byte] {
		return fallback
	})

	if redisURL != "" {
		redisCfg := rediscache.DefaultConfig(redisURL, namespace)
		// The client dials lazily; reachability is checked during
		// manager construction and availability pings.
		client := rediscache.NewClient(redisCfg)
		registry.Register(func() cache.Provider[string, []byte] {
			p, err := rediscache.NewProvider[string, []byte](client, cache.RawSerializer{}, redisCfg)
			if err != nil {
				logger.Fatal().Err(err).Msg("invalid redis cache configuration")
			}
			return p
		})
		logger.Info().Str("url", redisURL).Str("namespace", namespace).Msg("redis cache provider registered")
	}

	resolver, err := cache.NewResolver(registry, preferred, fallback)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create cache resolver")
	}

	ctx := context.Background()
	manager, err := resolver.Manager(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to resolve cache manager")
	}
	logger.Info().Str("provider", manager.Provider()).Msg("cache manager ready")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/cache/", cacheHandler(manager, logger))

	addr := ":" + port
	logger.Info().Str("addr", addr).Msg("starting cache server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

// cacheHandler serves GET/PUT/DELETE /cache/{name}/{key} and
// DELETE /cache/{name} for clearing a whole cache.
func cacheHandler(manager *cache.Manager[string, []byte], logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, key, ok := splitCachePath(r.URL.Path)
		if !ok {
			http.Error(w, "expected /cache/{name}/{key}", http.StatusBadRequest)
			return
		}

		c, err := manager.Cache(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		switch {
		case r.Method == http.MethodGet && key != "":
			value, found, err := c.Get(ctx, key)
			if err != nil {
				logger.Error().Err(err).Str("cache", name).Str("key", key).Msg("get failed")
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			if !found {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write(value)

		case r.Method == http.MethodPut && key != "":
			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "failed to read body", http.StatusBadRequest)
				return
			}
			if err := c.Put(ctx, key, body); err != nil {
				logger.Error().Err(err).Str("cache", name).Str("key", key).Msg("put failed")
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodDelete && key != "":
			if err := c.Evict(ctx, key); err != nil {
				logger.Error().Err(err).Str("cache", name).Str("key", key).Msg("evict failed")
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		case r.Method == http.MethodDelete:
			if err := c.Clear(ctx); err != nil {
				logger.Error().Err(err).Str("cache", name).Msg("clear failed")
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusNoContent)

		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// splitCachePath extracts cache name and optional key from
// /cache/{name}/{key}. The key may contain slashes.
func splitCachePath(path string) (name, key string, ok bool) {
	rest, found := strings.CutPrefix(path, "/cache/")
	if !found || rest == "" {
		return "", "", false
	}
	name, key, _ = strings.Cut(rest, "/")
	if name == "" {
		return "", "", false
	}
	return name, key, true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(logger zerolog.Logger, key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Fatal().Str("key", key).Str("value", value).Msg("invalid integer in environment")
	}
	return n
}
