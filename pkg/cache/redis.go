package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures a [RedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key, e.g. "svgstack:".
	Prefix string

	// Attempts and Backoff control retries of failed round trips.
	// Zero values mean 3 attempts starting at 100ms.
	Attempts int
	Backoff  time.Duration
}

// RedisCache stores entries in Redis, shared between server instances.
type RedisCache struct {
	client   redis.UniversalClient
	prefix   string
	attempts int
	backoff  time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrUnavailable, cfg.Addr, err)
	}
	return newRedisCache(client, cfg), nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes the client on Close.
func NewRedisCacheFromClient(client redis.UniversalClient, cfg RedisConfig) *RedisCache {
	return newRedisCache(client, cfg)
}

func newRedisCache(client redis.UniversalClient, cfg RedisConfig) *RedisCache {
	c := &RedisCache{
		client:   client,
		prefix:   cfg.Prefix,
		attempts: cfg.Attempts,
		backoff:  cfg.Backoff,
	}
	if c.attempts <= 0 {
		c.attempts = 3
	}
	if c.backoff <= 0 {
		c.backoff = 100 * time.Millisecond
	}
	return c
}

// Get retrieves a value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := c.retry(ctx, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return c.transient(err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

// Set stores a value. A zero ttl keeps the key until it is evicted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.retry(ctx, func() error {
		return c.transient(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.retry(ctx, func() error {
		return c.transient(c.client.Del(ctx, c.prefix+key).Err())
	})
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) retry(ctx context.Context, fn func() error) error {
	return RetryWithBackoff(ctx, c.attempts, c.backoff, fn)
}

// transient marks backend failures as retryable. Context errors are
// returned as is so cancellation stops the retry loop.
func (c *RedisCache) transient(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %v", ErrUnavailable, err))
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
