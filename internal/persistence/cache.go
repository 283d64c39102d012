package persistence

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// ViewCache is a JSON-backed Redis cache for derived read models such as
// the admin statistics view. Misses and serialization failures are treated
// as cache misses, never as errors.
type ViewCache[T any] struct {
	redis  *Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewViewCache creates a cache bound to the given Redis wrapper. A nil or
// unconfigured Redis yields a cache that always misses.
func NewViewCache[T any](redis *Redis, ttl time.Duration, logger *zap.Logger) *ViewCache[T] {
	return &ViewCache[T]{redis: redis, ttl: ttl, logger: logger}
}

// Get retrieves and unmarshals a cached value.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	data, err := c.redis.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals and stores a value. Write failures are logged, not returned.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("view cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.redis.Client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("view cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes a key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if c == nil || c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("view cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
