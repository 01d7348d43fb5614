package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry() RecommendationEntry {
	return RecommendationEntry{
		Position: model.Position{Lat: 48.8566, Lon: 2.3522},
		RadiusKm: 20,
		Results: []model.ScoredRestaurant{
			{Restaurant: model.Restaurant{ID: 1, Name: "Chez Luigi"}, Score: 120},
		},
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute)

	_, ok := c.Get(ctx, "u1")
	assert.False(t, ok)

	c.Set(ctx, "u1", sampleEntry())
	entry, ok := c.Get(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, 120, entry.Results[0].Score)
	assert.False(t, entry.StoredAt.IsZero())

	_, ok = c.Get(ctx, "u2")
	assert.False(t, ok)

	c.Invalidate(ctx, "u1")
	_, ok = c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestMemoryCache_ExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c := &memoryCache{entries: map[string]RecommendationEntry{}, ttl: 10 * time.Minute, now: func() time.Time { return now }}

	c.Set(ctx, "old", sampleEntry())
	now = now.Add(5 * time.Minute)
	c.Set(ctx, "fresh", sampleEntry())
	now = now.Add(6 * time.Minute)

	_, ok := c.Get(ctx, "fresh")
	assert.True(t, ok)

	assert.Equal(t, 1, c.Purge(ctx))
	_, ok = c.Get(ctx, "old")
	assert.False(t, ok)

	assert.Equal(t, 1, c.Clear(ctx))
	_, ok = c.Get(ctx, "fresh")
	assert.False(t, ok)
}

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	c := NewRedisCache(client, time.Minute)
	c.Set(ctx, "test-user", sampleEntry())
	defer c.Invalidate(ctx, "test-user")

	entry, ok := c.Get(ctx, "test-user")
	require.True(t, ok)
	assert.Equal(t, "Chez Luigi", entry.Results[0].Restaurant.Name)
	assert.InDelta(t, 48.8566, entry.Position.Lat, 1e-9)
}
