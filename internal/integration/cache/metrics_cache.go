// Package cache implements the metrics cache on Redis, with a no-op
// fallback for installations that run without one.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/finance-records/backend/internal/application/adapter"
)

// redisMetricsCache implements adapter.MetricsCache on a Redis client.
type redisMetricsCache struct {
	client *redis.Client
}

// NewRedisMetricsCache creates a metrics cache backed by the given client.
func NewRedisMetricsCache(client *redis.Client) adapter.MetricsCache {
	return &redisMetricsCache{
		client: client,
	}
}

// Get returns the cached payload for the key, or nil on a miss.
func (c *redisMetricsCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores a payload under the key for the given TTL.
func (c *redisMetricsCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// noopMetricsCache misses every read and drops every write. Metrics are then
// recomputed on each request.
type noopMetricsCache struct{}

// NewNoopMetricsCache creates a cache that never stores anything.
func NewNoopMetricsCache() adapter.MetricsCache {
	return &noopMetricsCache{}
}

func (noopMetricsCache) Get(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (noopMetricsCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
