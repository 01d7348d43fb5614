package cache

import (
	"context"
	"time"

	"github.com/foodreco/foodreco-backend/pkg/logger"
	redisutil "github.com/foodreco/foodreco-backend/pkg/redis"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "reco:adaptive:"

// redisCache stores entries with a Redis expiry, so Purge has nothing to do.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) RecommendationCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, userID string) (*RecommendationEntry, bool) {
	var entry RecommendationEntry
	found, err := redisutil.GetJSON(ctx, c.client, redisKeyPrefix+userID, &entry)
	if err != nil || !found {
		return nil, false
	}
	return &entry, true
}

func (c *redisCache) Set(ctx context.Context, userID string, entry RecommendationEntry) {
	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now()
	}
	if err := redisutil.SetJSON(ctx, c.client, redisKeyPrefix+userID, entry, c.ttl); err != nil {
		logger.Warn("Recommendation not cached", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (c *redisCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		logger.Warn("Failed to invalidate cached recommendation", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (c *redisCache) Purge(ctx context.Context) int {
	return 0
}

func (c *redisCache) Clear(ctx context.Context) int {
	deleted, err := redisutil.DeleteByPrefix(ctx, c.client, redisKeyPrefix)
	if err != nil {
		logger.Warn("Failed to clear cached recommendations", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return deleted
}
