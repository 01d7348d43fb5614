package cache

import (
	"context"
	"time"

	"github.com/foodreco/foodreco-backend/internal/app/model"
)

// RecommendationEntry is the last adaptive ranking computed for a user and
// the position it was computed at.
type RecommendationEntry struct {
	Position model.Position           `json:"position"`
	RadiusKm float64                  `json:"radius_km"`
	Results  []model.ScoredRestaurant `json:"results"`
	StoredAt time.Time                `json:"stored_at"`
}

// RecommendationCache memoizes adaptive rankings per user. Entries older
// than the cache TTL are never returned.
type RecommendationCache interface {
	Get(ctx context.Context, userID string) (*RecommendationEntry, bool)
	Set(ctx context.Context, userID string, entry RecommendationEntry)
	Invalidate(ctx context.Context, userID string)
	// Purge drops expired entries and returns how many were removed.
	Purge(ctx context.Context) int
	// Clear drops every entry.
	Clear(ctx context.Context) int
}
