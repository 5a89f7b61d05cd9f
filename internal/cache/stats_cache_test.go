package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/listing-admin/internal/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestStatsCache_SetGetExpire(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewStatsCache(client, 30*time.Second)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := domain.DashboardStats{TotalUsers: 4, TotalAgents: 2, TotalListings: 9, TotalProperties: 7, TotalRent: 5, TotalSale: 4}
	require.NoError(t, c.Set(ctx, want))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(31 * time.Second)
	_, ok, err = c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_Invalidate(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewStatsCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.DashboardStats{TotalUsers: 1}))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_Disabled(t *testing.T) {
	_, client := setupTestRedis(t)
	c := NewStatsCache(client, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, domain.DashboardStats{TotalUsers: 1}))
	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	var nilCache *StatsCache
	_, ok, err = nilCache.Get(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsCache_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	c := NewStatsCache(client, time.Minute)
	mr.Close()

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
