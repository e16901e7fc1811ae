// Package rediscache implements the networked cache backend on top of Redis.
// Entry storage is delegated to an already-connected client; values cross the
// wire through a Serializer and every key is namespaced so that caches
// sharing one connection never collide.
package rediscache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sternrassler/cachekit/pkg/cache"
)

const backend = "redis"

// scanBatch is the COUNT hint for SCAN and the DEL batch size during Clear.
const scanBatch = 128

// Config holds the networked backend configuration.
type Config struct {
	// URL is the Redis address, host:port.
	URL string

	// Namespace is the key prefix isolating this deployment's caches
	// within a shared keyspace.
	Namespace string

	// ConnectTimeout bounds connection establishment and availability
	// pings.
	ConnectTimeout time.Duration

	// CommandTimeout bounds individual read/write commands.
	CommandTimeout time.Duration

	// Enabled gates the provider; a disabled provider reports itself
	// unavailable and fails construction.
	Enabled bool
}

// keySegmentCharset rejects ':' (the key separator) and the glob
// metacharacters SCAN's MATCH pattern would misinterpret. A name or
// namespace containing either could collide with another cache's keyspace
// or clear keys beyond its own.
const forbiddenSegmentChars = `:*?[]\`

func validateSegment(what, s string) error {
	if s == "" {
		return fmt.Errorf("%w: %s must not be empty", cache.ErrInvalidArgument, what)
	}
	if strings.ContainsAny(s, forbiddenSegmentChars) {
		return fmt.Errorf("%w: %s must not contain any of %q", cache.ErrInvalidArgument, what, forbiddenSegmentChars)
	}
	return nil
}

// Validate checks the configuration's shape. Reachability is not checked
// here; that is the availability check's job.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: redis url must not be empty", cache.ErrInvalidArgument)
	}
	if err := validateSegment("namespace", c.Namespace); err != nil {
		return err
	}
	if c.ConnectTimeout < 0 || c.CommandTimeout < 0 {
		return fmt.Errorf("%w: timeouts must not be negative", cache.ErrInvalidArgument)
	}
	return nil
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig(url, namespace string) Config {
	return Config{
		URL:            url,
		Namespace:      namespace,
		ConnectTimeout: 5 * time.Second,
		CommandTimeout: 2 * time.Second,
		Enabled:        true,
	}
}

// NewClient builds a Redis client from cfg without dialing. Reachability is
// verified later, by the provider's availability check and at manager
// construction.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.URL,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.CommandTimeout,
		WriteTimeout: cfg.CommandTimeout,
	})
}

// Connect builds a Redis client from cfg and verifies the connection with a
// ping. The caller owns the returned client.
func Connect(cfg Config) (*redis.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.URL, err)
	}
	return client, nil
}

// Cache stores entries in Redis under {namespace}:{name}:{key}. Safe for
// concurrent use; no lock is held across any Redis call.
type Cache[K comparable, V any] struct {
	rdb       redis.Cmdable
	name      string
	namespace string
	ser       cache.Serializer[V]
}

// New creates a Redis-backed cache. All dependencies are required up front:
// a nil client or serializer, an empty name or namespace, or a name or
// namespace containing ':' or glob metacharacters fails with
// cache.ErrInvalidArgument at construction, not at first use.
func New[K comparable, V any](rdb redis.Cmdable, name, namespace string, ser cache.Serializer[V]) (*Cache[K, V], error) {
	if rdb == nil {
		return nil, fmt.Errorf("%w: redis client must not be nil", cache.ErrInvalidArgument)
	}
	if err := validateSegment("cache name", name); err != nil {
		return nil, err
	}
	if err := validateSegment("namespace", namespace); err != nil {
		return nil, err
	}
	if ser == nil {
		return nil, fmt.Errorf("%w: serializer must not be nil", cache.ErrInvalidArgument)
	}
	return &Cache[K, V]{
		rdb:       rdb,
		name:      name,
		namespace: namespace,
		ser:       ser,
	}, nil
}

// key renders the fully namespaced Redis key for a logical key.
func (c *Cache[K, V]) key(k K) string {
	return fmt.Sprintf("%s:%s:%v", c.namespace, c.name, k)
}

// prefix is the pattern covering exactly this cache's keyspace.
func (c *Cache[K, V]) prefix() string {
	return c.namespace + ":" + c.name + ":"
}

// Get returns the value stored under key, or ok=false on a miss.
func (c *Cache[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var zero V
	redisKey := c.key(key)

	data, err := c.rdb.Get(ctx, redisKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			cache.CacheMisses.WithLabelValues(backend).Inc()
			return zero, false, nil
		}
		cache.CacheErrors.WithLabelValues(backend, "get").Inc()
		return zero, false, c.opError("get", redisKey, err)
	}

	v, err := c.ser.Deserialize(data)
	if err != nil {
		cache.CacheErrors.WithLabelValues(backend, "deserialize").Inc()
		return zero, false, c.opError("deserialize", redisKey, err)
	}

	cache.CacheHits.WithLabelValues(backend).Inc()
	return v, true, nil
}

// Put stores value under key. Entries carry no TTL; lifecycle is the remote
// store's concern.
func (c *Cache[K, V]) Put(ctx context.Context, key K, value V) error {
	redisKey := c.key(key)

	data, err := c.ser.Serialize(value)
	if err != nil {
		cache.CacheErrors.WithLabelValues(backend, "serialize").Inc()
		return c.opError("serialize", redisKey, err)
	}

	if err := c.rdb.Set(ctx, redisKey, data, 0).Err(); err != nil {
		cache.CacheErrors.WithLabelValues(backend, "put").Inc()
		return c.opError("put", redisKey, err)
	}
	return nil
}

// Evict removes key if present.
func (c *Cache[K, V]) Evict(ctx context.Context, key K) error {
	redisKey := c.key(key)

	if err := c.rdb.Del(ctx, redisKey).Err(); err != nil {
		cache.CacheErrors.WithLabelValues(backend, "evict").Inc()
		return c.opError("evict", redisKey, err)
	}
	return nil
}

// Clear deletes exactly the keys under this cache's namespace. The scan
// completes before any DEL is issued: deleting mid-iteration mutates the
// keyspace under the SCAN cursor and keys can be skipped. Deletes run in
// batches afterward; no cross-operation lock is held, so concurrent writes
// to other caches are unaffected.
func (c *Cache[K, V]) Clear(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, c.prefix()+"*", scanBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		cache.CacheErrors.WithLabelValues(backend, "clear").Inc()
		return c.opError("clear", "", err)
	}

	for len(keys) > 0 {
		n := min(len(keys), scanBatch)
		if err := c.rdb.Del(ctx, keys[:n]...).Err(); err != nil {
			cache.CacheErrors.WithLabelValues(backend, "clear").Inc()
			return c.opError("clear", "", err)
		}
		keys = keys[n:]
	}
	return nil
}

func (c *Cache[K, V]) opError(op, key string, err error) error {
	return &cache.OpError{Op: op, Cache: c.name, Key: key, Err: err}
}
