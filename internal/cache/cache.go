// Package cache keeps computed analytics payloads in Redis so repeated
// dashboard loads do not rescan an elder's whole collection.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is a Redis-backed JSON blob cache with per-elder invalidation.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to Redis and verifies the connection.
func New(redisURL string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Redis cache connected", zap.Duration("ttl", ttl))
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Key builds the cache key for one analytic view of one elder.
func Key(elderID int64, view string) string {
	return fmt.Sprintf("keepsake:elder:%d:%s", elderID, view)
}

// Get returns the cached payload for key, or ErrMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores a payload under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// InvalidateElder drops every cached view of one elder. Called after any
// write to the elder's collection.
func (c *Cache) InvalidateElder(ctx context.Context, elderID int64) error {
	pattern := fmt.Sprintf("keepsake:elder:%d:*", elderID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	c.logger.Debug("Cache invalidated", zap.Int64("elder_id", elderID), zap.Int("keys", len(keys)))
	return nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}
