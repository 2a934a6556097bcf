package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// New creates a new Redis client.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("platform/cache: ping: %w", err)
	}

	return client, nil
}

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// ResponseCache stores raw gateway list payloads under a short TTL so
// repeated console loads do not hammer the upstream service.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache wraps a redis client with a fixed TTL.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

// Get returns the cached payload for key, or ErrMiss.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("platform/cache: get %s: %w", key, err)
	}
	return data, nil
}

// Set stores payload under key for the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, payload []byte) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("platform/cache: set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops keys after a mutation so the next list is fresh.
func (c *ResponseCache) Invalidate(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("platform/cache: invalidate: %w", err)
	}
	return nil
}
