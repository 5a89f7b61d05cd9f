// Package cache holds short-lived redis caches for read-heavy admin views.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/listing-admin/internal/domain"
)

// DefaultStatsKey stores the serialized dashboard counts.
const DefaultStatsKey = "listing-admin:dashboard:stats"

// StatsCache caches dashboard aggregates for a fixed TTL.
type StatsCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewStatsCache creates a cache. A non-positive ttl disables it: Get always misses and Set is a no-op.
func NewStatsCache(client redis.UniversalClient, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, key: DefaultStatsKey, ttl: ttl}
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached stats; ok is false on a miss.
func (c *StatsCache) Get(ctx context.Context) (stats domain.DashboardStats, ok bool, err error) {
	if !c.enabled() {
		return stats, false, nil
	}
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return stats, false, nil
	}
	if err != nil {
		return stats, false, err
	}
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.DashboardStats{}, false, err
	}
	return stats, true, nil
}

// Set stores stats for the configured TTL.
func (c *StatsCache) Set(ctx context.Context, stats domain.DashboardStats) error {
	if !c.enabled() {
		return nil
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, raw, c.ttl).Err()
}

// Invalidate drops the cached value so the next read recomputes it.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Del(ctx, c.key).Err()
}
