// Package cache provides shared DistanceCache implementations backed by
// external stores, so road distances survive restarts and are shared between
// API replicas.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/route66/internal/domain"
	"github.com/pkordes/route66/internal/planner"
)

// keyPrefix namespaces every distance entry.
const keyPrefix = "route66:leg:"

// DefaultTTL keeps road distances for a week; they rarely change.
const DefaultTTL = 7 * 24 * time.Hour

// RedisDistanceCache stores legs as JSON strings.
//
// Cache errors are logged and treated as misses: a broken cache must never
// fail a planning request.
type RedisDistanceCache struct {
	rdb redis.Cmdable
	ttl time.Duration
	log *slog.Logger
}

// compile-time check
var _ planner.DistanceCache = (*RedisDistanceCache)(nil)

// NewRedisDistanceCache returns a cache writing through rdb. A ttl of zero
// means DefaultTTL.
func NewRedisDistanceCache(rdb redis.Cmdable, ttl time.Duration, log *slog.Logger) *RedisDistanceCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &RedisDistanceCache{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached leg for key.
func (c *RedisDistanceCache) Get(ctx context.Context, key string) (domain.Leg, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Leg{}, false
	}
	if err != nil {
		c.log.Warn("distance cache read failed", "key", key, "error", err)
		return domain.Leg{}, false
	}

	var leg domain.Leg
	if err := json.Unmarshal(raw, &leg); err != nil {
		c.log.Warn("distance cache entry corrupt", "key", key, "error", err)
		return domain.Leg{}, false
	}
	return leg, true
}

// Set stores leg under key with the configured TTL.
func (c *RedisDistanceCache) Set(ctx context.Context, key string, leg domain.Leg) {
	raw, err := json.Marshal(leg)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("distance cache write failed", "key", key, "error", err)
	}
}

// NewClient parses a redis:// URL and verifies the server is reachable.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.MaxRetries = 3

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
