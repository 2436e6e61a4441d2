package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key a RedisCache writes.
const DefaultRedisPrefix = "creativeforge:"

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	// Addr is host:port, or a redis:// URL.
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key. Defaults to DefaultRedisPrefix.
	Prefix string
}

// RedisCache stores entries in Redis so that several server instances share
// results. Expiration is delegated to Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying with backoff while the server is unreachable.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	ropts, err := redisOptions(opts)
	if err != nil {
		return nil, err
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	client := redis.NewClient(ropts)
	err = RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: redis %s: %v", ErrNetwork, ropts.Addr, err))
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client, prefix: prefix}, nil
}

func redisOptions(opts RedisOptions) (*redis.Options, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis: address is required")
	}
	if strings.HasPrefix(opts.Addr, "redis://") || strings.HasPrefix(opts.Addr, "rediss://") {
		parsed, err := redis.ParseURL(opts.Addr)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return parsed, nil
	}
	return &redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB}, nil
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var (
		cursor uint64
		count  int
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 500).Result()
		if err != nil {
			return count, err
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			count += int(n)
			if err != nil {
				return count, err
			}
		}
		if next == 0 {
			return count, nil
		}
		cursor = next
	}
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
