// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/metrics"
)

const redisBackend = "redis"

// RedisCache is a Redis-backed implementation of Cache. Payloads are
// stored as raw bytes; redis handles expiration.
type RedisCache struct {
	client *redis.Client
	logger zerolog.Logger
	stats  counters
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
}

// NewRedisCache connects to Redis and verifies the connection before
// returning. Operations after that are best-effort: a failed Get is a
// miss, a failed Set is dropped with a warning.
func NewRedisCache(config RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger := log.WithComponent("cache")
	logger.Info().
		Str("event", "cache.redis_connected").
		Str("addr", config.Addr).
		Int("db", config.DB).
		Msg("connected to redis render cache")

	return &RedisCache{
		client: client,
		logger: logger,
	}, nil
}

// Get retrieves a payload from redis.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.stats.misses.Add(1)
		metrics.CacheMissesTotal.WithLabelValues(redisBackend).Inc()
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis get failed")
		c.stats.misses.Add(1)
		metrics.CacheMissesTotal.WithLabelValues(redisBackend).Inc()
		return nil, false
	}

	c.stats.hits.Add(1)
	metrics.CacheHitsTotal.WithLabelValues(redisBackend).Inc()
	return val, true
}

// Set stores a payload in redis with TTL.
func (c *RedisCache) Set(key string, payload []byte, ttl time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis set failed")
		return
	}

	c.stats.sets.Add(1)
}

// Delete removes a payload from redis.
func (c *RedisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("redis delete failed")
	}
}

// Clear removes all payloads (flushes the current DB).
func (c *RedisCache) Clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.client.FlushDB(ctx).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("redis flush failed")
	}
}

// Stats returns cache statistics.
func (c *RedisCache) Stats() CacheStats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	size, err := c.client.DBSize(ctx).Result()
	if err != nil {
		c.logger.Warn().Err(err).Msg("redis dbsize failed")
		size = 0
	}

	return CacheStats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Sets:        c.stats.sets.Load(),
		Evictions:   c.stats.evictions.Load(),
		CurrentSize: int(size),
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// HealthCheck checks if Redis is available.
func (c *RedisCache) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
