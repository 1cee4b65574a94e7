// Package cache is an optional redis-backed response cache for slow or
// rarely changing backend answers (baseline questions, crisis resources).
// A nil *Cache is valid and caches nothing.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/config"
)

type Cache struct {
	rdb *redis.Client
	log *zap.Logger
}

// New connects to redis when the cache is enabled in config. Returns nil
// (cache disabled) when it is not, or when redis is unreachable; a dead
// cache must never take the app down.
func New(cfg config.RedisConfig, log *zap.Logger) *Cache {
	if !cfg.Enabled {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, response cache disabled", zap.Error(err))
		return nil
	}

	log.Info("Response cache enabled", zap.String("addr", cfg.Addr))
	return &Cache{rdb: rdb, log: log}
}

// GetJSON loads key into out, reporting whether it was present.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.log.Warn("Discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores v under key with a TTL. Failures are logged, not returned;
// the cache is best effort.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("Failed to encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("Failed to store cache entry", zap.String("key", key), zap.Error(err))
	}
}
