package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes the shared Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance, nil before Init
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// SetJSON stores v encoded as JSON under key.
func SetJSON(ctx context.Context, c *redis.Client, key string, v interface{}, expiry time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, expiry).Err(); err != nil {
		logger.Error("Failed to write Redis key", err, map[string]interface{}{
			"key": key,
		})
		return err
	}
	return nil
}

// GetJSON decodes the JSON value under key into dest. It reports false when
// the key does not exist.
func GetJSON(ctx context.Context, c *redis.Client, key string, dest interface{}) (bool, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to read Redis key", err, map[string]interface{}{
			"key": key,
		})
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByPrefix removes every key starting with prefix and returns how
// many were deleted.
func DeleteByPrefix(ctx context.Context, c *redis.Client, prefix string) (int, error) {
	deleted := 0
	iter := c.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}
