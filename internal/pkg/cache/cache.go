// Package cache provides an optional Redis-backed JSON cache. The client
// constructor returns nil when Redis is unreachable and callers degrade
// gracefully by querying the database directly.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hostelhub/hostelhub/internal/pkg/logger"
)

// NewRedisClient creates a Redis client from the given address. An empty
// address disables caching. A failed ping also disables caching rather than
// failing startup.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, caching disabled")
		return nil
	}

	return client
}

// Cache is a thin JSON get/set wrapper around a Redis client. A Cache with a
// nil client is valid and behaves as an always-miss cache.
type Cache struct {
	client *redis.Client
}

// New creates a Cache. client may be nil.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Enabled reports whether a backing Redis client is present.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get unmarshals the cached value for key into dest. It returns false on miss
// or any error; errors are logged and never propagated.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache payload unmarshal failed")
		return false
	}

	return true
}

// Set stores value under key with a TTL. Failures are logged and ignored.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache payload marshal failed")
		return
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate removes keys from the cache. Failures are logged and ignored.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}
