package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fivetwenty-io/cms-content/internal/constants"
)

// RedisCacheConfig configures the Redis cache.
type RedisCacheConfig struct {
	// URL is a redis:// URL. Ignored when Client is set.
	URL string
	// Client is an existing client. The cache does not close it.
	Client *redis.Client
	// Prefix namespaces the keys. Defaults to "cms:content:".
	Prefix string
}

// RedisCache stores cache entries in Redis with native key expiry.
type RedisCache struct {
	rdb    *redis.Client
	owned  bool
	prefix string
	now    func() time.Time
}

// NewRedisCache creates a Redis-backed cache. A connection created from URL
// is pinged so that a bad address fails at startup.
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil {
		return nil, ErrRedisConfigRequired
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = constants.DefaultRedisPrefix
	}

	if config.Client != nil {
		return &RedisCache{rdb: config.Client, prefix: prefix, now: time.Now}, nil
	}

	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShortHTTPTimeout)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()

		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisCache{rdb: rdb, owned: true, prefix: prefix, now: time.Now}, nil
}

func (c *RedisCache) key(key string) string { return c.prefix + key }

// Get returns a live entry.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}

		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("parsing cache entry: %w", err)
	}

	if entry.Expired(c.now()) {
		return nil, ErrEntryExpired
	}

	return &entry, nil
}

// Set stores an entry. Redis expires the key together with the entry.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	var ttl time.Duration
	if !entry.ExpiresAt.IsZero() {
		ttl = entry.ExpiresAt.Sub(c.now())
		if ttl <= 0 {
			// Keep the entry briefly so that readers see it as expired.
			ttl = time.Second
		}
	}

	err = c.rdb.Set(ctx, c.key(key), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Delete removes an entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.rdb.Del(ctx, c.key(key)).Err()
	if err != nil {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear removes every key under the prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	var keys []string

	iter := c.rdb.Scan(ctx, 0, c.prefix+"*", constants.AllContentsPageSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	err := iter.Err()
	if err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	err = c.rdb.Del(ctx, keys...).Err()
	if err != nil {
		return fmt.Errorf("deleting cache keys: %w", err)
	}

	return nil
}

// Has reports whether a live entry exists.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the client if the cache created it.
func (c *RedisCache) Close() error {
	if !c.owned {
		return nil
	}

	err := c.rdb.Close()
	if err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}

	return nil
}
