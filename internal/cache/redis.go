package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Analyst/models"
)

// RedisCache stores consolidated analysis results keyed by symbol and
// freshness bucket. The whole result is cached as one value, so a hit can
// never pair a stale price series with fresh indicators.
type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a Redis-backed result cache. ttl is both the entry lifetime and
// the freshness-bucket width.
func New(addr, password string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl:    ttl,
		logger: log.With().Str("component", "result_cache").Logger(),
	}
}

// Key builds the cache key for a symbol at a point in time. Time is truncated
// to the freshness window so concurrent requests inside one window share an
// entry and requests across windows never do.
func (c *RedisCache) Key(symbol string, now time.Time) string {
	bucket := now.Truncate(c.ttl).Unix()
	return fmt.Sprintf("analysis:%s:%d", symbol, bucket)
}

// Get returns the cached result for symbol in the current freshness window,
// or nil on miss. Redis errors are logged and treated as misses.
func (c *RedisCache) Get(ctx context.Context, symbol string) *models.AnalysisResult {
	data, err := c.rdb.Get(ctx, c.Key(symbol, time.Now())).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Cache read failed")
		}
		return nil
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Cache entry corrupt, dropping")
		return nil
	}
	return &result
}

// Set stores the result in the current freshness window. Failures are logged
// only; caching is best-effort.
func (c *RedisCache) Set(ctx context.Context, result *models.AnalysisResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", result.Symbol).Msg("Cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, c.Key(result.Symbol, time.Now()), data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("symbol", result.Symbol).Msg("Cache write failed")
	}
}
