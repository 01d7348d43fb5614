package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RECOMMENDATION_DEFAULT_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Recommendation.DefaultLimit)
	assert.Equal(t, 0.2, cfg.Recommendation.CacheMoveThresholdKm)
	assert.Equal(t, 20.0, cfg.Recommendation.AdaptiveRadiusKm)
	assert.Equal(t, 720*time.Hour, cfg.JWT.ProfileTokenExpiry)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RECOMMENDATION_CACHE_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Recommendation.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	assert.Error(t, err)
}

func TestParseHelpers_FallBackOnGarbage(t *testing.T) {
	assert.Equal(t, 15*time.Minute, parseDuration("soon", 15*time.Minute))
	assert.Equal(t, 7, parseInt("seven", 7))
	assert.Equal(t, 1.5, parseFloat("x", 1.5))
	assert.False(t, parseBool("maybe"))
	assert.Empty(t, parseSlice(""))
}
