package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis-backed implementation of the ElevationCache port, for deployments
// where multiple instances should share elevation lookups. Values are JSON
// arrays; expiry uses Redis-native TTLs.
//
// The cache contract is never-fail: any Redis error is logged and treated as
// a miss (on Get) or a no-op (on Put).
type RedisElevationCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisElevationCache(client *redis.Client, logger *zap.Logger) *RedisElevationCache {
	return &RedisElevationCache{client: client, logger: logger}
}

func (c *RedisElevationCache) Get(ctx context.Context, key string) ([]float64, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("elevation cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		c.logger.Warn("elevation cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return values, true
}

func (c *RedisElevationCache) Put(ctx context.Context, key string, elevations []float64, ttl time.Duration) {
	data, err := json.Marshal(elevations)
	if err != nil {
		c.logger.Warn("elevation cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("elevation cache write failed", zap.String("key", key), zap.Error(err))
	}
}
