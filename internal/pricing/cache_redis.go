package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores quotes in Redis with a TTL running to the expiry instant.
//
// Key schema: quote:{ticker}:{day} -> JSON Quote
type RedisCache struct {
	client redisKV
	now    func() time.Time
}

// redisKV is the subset of redis.Cmdable the cache needs.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewRedisCache creates a Redis-backed cache. Any redis.Cmdable works,
// including *redis.Client and *redis.ClusterClient.
func NewRedisCache(client redisKV) *RedisCache {
	return &RedisCache{client: client, now: time.Now}
}

func redisKey(ticker, day string) string {
	return fmt.Sprintf("quote:%s:%s", ticker, day)
}

// Get returns the cached quote, if any.
func (c *RedisCache) Get(ctx context.Context, ticker, day string) (Quote, bool, error) {
	raw, err := c.client.Get(ctx, redisKey(ticker, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Quote{}, false, nil
	}
	if err != nil {
		return Quote{}, false, fmt.Errorf("redis get: %w", err)
	}

	var q Quote
	if err := json.Unmarshal(raw, &q); err != nil {
		return Quote{}, false, fmt.Errorf("redis decode %s: %w", redisKey(ticker, day), err)
	}
	return q, true, nil
}

// Set stores q with a TTL ending at expiresAt. Already-expired quotes are dropped.
func (c *RedisCache) Set(ctx context.Context, ticker, day string, q Quote, expiresAt time.Time) error {
	ttl := expiresAt.Sub(c.now())
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("redis encode: %w", err)
	}
	if err := c.client.Set(ctx, redisKey(ticker, day), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
