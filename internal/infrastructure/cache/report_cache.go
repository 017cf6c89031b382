// Package cache provides the Redis-backed report cache.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"printstock/internal/domain/taxreport"
	"printstock/pkg/logger"
)

// DefaultReportTTL bounds staleness for entries written by replicas that
// missed an invalidation.
const DefaultReportTTL = 15 * time.Minute

// ReportCache caches computed tax-year reports. Keys carry the store
// revision, so a mutation naturally misses old entries instead of needing
// explicit deletes.
type ReportCache interface {
	Get(ctx context.Context, key string) (*taxreport.Report, bool)
	Set(ctx context.Context, key string, report *taxreport.Report)
}

// NoopCache disables caching. Used when Redis is not configured.
type NoopCache struct{}

// NewNoopCache creates a cache that never hits.
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

func (c *NoopCache) Get(ctx context.Context, key string) (*taxreport.Report, bool) {
	return nil, false
}

func (c *NoopCache) Set(ctx context.Context, key string, report *taxreport.Report) {}

// RedisCache stores reports as JSON in Redis with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed report cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*taxreport.Report, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn(ctx, "report cache get failed", "key", key, "error", err)
		return nil, false
	}

	var report taxreport.Report
	if err := json.Unmarshal(data, &report); err != nil {
		logger.Warn(ctx, "report cache entry corrupt", "key", key, "error", err)
		return nil, false
	}

	return &report, true
}

func (c *RedisCache) Set(ctx context.Context, key string, report *taxreport.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		logger.Warn(ctx, "report cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "report cache set failed", "key", key, "error", err)
	}
}
