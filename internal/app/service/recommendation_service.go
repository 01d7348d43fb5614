package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/internal/cache"
	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/foodreco/foodreco-backend/pkg/geo"
	"github.com/foodreco/foodreco-backend/pkg/logger"
)

// Adaptive ranking weights.
const (
	adaptiveBaseScore       = 100
	adaptiveHabitPoints     = 20
	adaptiveHabitCap        = 50
	adaptivePreferenceBonus = 50
	adaptiveDistancePenalty = 5
)

type RecommendationOptions struct {
	DefaultLimit     int
	AdaptiveRadiusKm float64
	// MoveThresholdKm is how far the user may move before a cached adaptive
	// ranking is recomputed.
	MoveThresholdKm float64
}

func DefaultRecommendationOptions() RecommendationOptions {
	return RecommendationOptions{
		DefaultLimit:     10,
		AdaptiveRadiusKm: 20,
		MoveThresholdKm:  0.2,
	}
}

type RecommendationService interface {
	// Recommend ranks restaurants the user never engaged with by tag overlap
	// with the recently engaged ones.
	Recommend(userID string, limit int) []model.Restaurant
	// Adaptive scores candidates around pos, or the whole catalog when pos
	// is nil, using habits, preferences and distance.
	Adaptive(ctx context.Context, userID string, pos *model.Position, radiusKm float64) []model.ScoredRestaurant
	Invalidate(ctx context.Context, userID string)
	InvalidateAll(ctx context.Context)
	PurgeExpired(ctx context.Context) int
}

type recommendationService struct {
	clickedRepo        repository.ClickedRepository
	catalogService     CatalogService
	habitService       HabitService
	preferencesService PreferencesService
	cache              cache.RecommendationCache
	opts               RecommendationOptions
}

func NewRecommendationService(
	clickedRepo repository.ClickedRepository,
	catalogService CatalogService,
	habitService HabitService,
	preferencesService PreferencesService,
	recoCache cache.RecommendationCache,
	opts RecommendationOptions,
) RecommendationService {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.AdaptiveRadiusKm <= 0 {
		opts.AdaptiveRadiusKm = 20
	}
	return &recommendationService{
		clickedRepo:        clickedRepo,
		catalogService:     catalogService,
		habitService:       habitService,
		preferencesService: preferencesService,
		cache:              recoCache,
		opts:               opts,
	}
}

func (s *recommendationService) Recommend(userID string, limit int) []model.Restaurant {
	userID = normalizeUserID(userID)
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}

	ring, err := s.clickedRepo.Recent(userID, repository.ClickRingSize)
	if err != nil {
		logger.Error("Clicked restaurants unavailable, no recommendations", err, map[string]interface{}{
			"user_id": userID,
		})
		return []model.Restaurant{}
	}
	if len(ring) == 0 {
		return []model.Restaurant{}
	}

	result := RankByOverlap(ring, s.catalogService.All(), limit)
	metrics.RecommendationsServed.WithLabelValues("overlap").Inc()

	logger.Info("Recommendations computed", map[string]interface{}{
		"user_id":   userID,
		"ring_size": len(ring),
		"count":     len(result),
	})
	return result
}

// RankByOverlap scores every catalog restaurant absent from the ring by the
// summed ring frequency of its cuisine tags and type. Zero scores are
// dropped; equal scores keep catalog order.
func RankByOverlap(ring []model.ClickedRestaurant, catalog []model.Restaurant, limit int) []model.Restaurant {
	result := []model.Restaurant{}
	if len(ring) == 0 || limit <= 0 {
		return result
	}

	frequency := map[string]int{}
	interacted := map[uint]bool{}
	for _, entry := range ring {
		interacted[entry.RestaurantID] = true
		for _, token := range entry.Tokens() {
			frequency[token]++
		}
	}

	type scored struct {
		restaurant model.Restaurant
		score      int
	}
	candidates := make([]scored, 0, len(catalog))
	for _, r := range catalog {
		if interacted[r.ID] {
			continue
		}
		score := 0
		for _, tag := range r.CuisineSet() {
			score += frequency[tag]
		}
		if t := r.TypeTag(); t != "" {
			score += frequency[t]
		}
		if score == 0 {
			continue
		}
		candidates = append(candidates, scored{restaurant: r, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	for i := 0; i < len(candidates) && i < limit; i++ {
		result = append(result, candidates[i].restaurant)
	}
	return result
}

func (s *recommendationService) Adaptive(ctx context.Context, userID string, pos *model.Position, radiusKm float64) []model.ScoredRestaurant {
	userID = normalizeUserID(userID)
	if radiusKm <= 0 {
		radiusKm = s.opts.AdaptiveRadiusKm
	}

	if pos != nil {
		if entry, ok := s.cache.Get(ctx, userID); ok && entry.RadiusKm == radiusKm {
			moved := geo.Distance(pos.Lat, pos.Lon, entry.Position.Lat, entry.Position.Lon)
			if moved < s.opts.MoveThresholdKm {
				metrics.RecommendationCacheHits.Inc()
				logger.Debug("Adaptive recommendations served from cache", map[string]interface{}{
					"user_id":  userID,
					"moved_km": moved,
				})
				return entry.Results
			}
		}
		metrics.RecommendationCacheMisses.Inc()
	}

	var candidates []model.ScoredRestaurant
	if pos != nil {
		for _, n := range s.catalogService.Nearby(pos.Lat, pos.Lon, radiusKm) {
			d := n.DistanceKm
			candidates = append(candidates, model.ScoredRestaurant{Restaurant: n.Restaurant, DistanceKm: &d})
		}
	} else {
		for _, r := range s.catalogService.All() {
			candidates = append(candidates, model.ScoredRestaurant{Restaurant: r})
		}
	}

	habits := s.habitService.ComputeHabits(userID)
	prefs := s.preferencesService.Get(userID)
	result := RankAdaptive(candidates, habits, prefs.Cuisines)
	metrics.RecommendationsServed.WithLabelValues("adaptive").Inc()

	if pos != nil {
		s.cache.Set(ctx, userID, cache.RecommendationEntry{
			Position: *pos,
			RadiusKm: radiusKm,
			Results:  result,
		})
	}

	logger.Info("Adaptive recommendations computed", map[string]interface{}{
		"user_id":      userID,
		"has_position": pos != nil,
		"radius_km":    radiusKm,
		"count":        len(result),
	})
	return result
}

// RankAdaptive scores each candidate as a base of 100, plus up to 50 per
// token from habits, plus 50 when a token is a preferred cuisine, minus 5
// per km. The result is sorted by score, ties keeping candidate order.
func RankAdaptive(candidates []model.ScoredRestaurant, habits HabitTable, preferredCuisines []string) []model.ScoredRestaurant {
	preferred := map[string]bool{}
	for _, c := range preferredCuisines {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			preferred[c] = true
		}
	}

	result := make([]model.ScoredRestaurant, 0, len(candidates))
	for _, c := range candidates {
		score := adaptiveBaseScore
		reasons := []string{}

		tokens := c.Restaurant.CuisineSet()
		if t := c.Restaurant.TypeTag(); t != "" && !containsToken(tokens, t) {
			tokens = append(tokens, t)
		}

		isPreferred := false
		for _, token := range tokens {
			if count := habits[token]; count > 0 {
				pts := count * adaptiveHabitPoints
				if pts > adaptiveHabitCap {
					pts = adaptiveHabitCap
				}
				score += pts
				reasons = append(reasons, fmt.Sprintf("habit %s +%d", token, pts))
			}
			if preferred[token] {
				isPreferred = true
			}
		}
		if isPreferred {
			score += adaptivePreferenceBonus
			reasons = append(reasons, fmt.Sprintf("preference +%d", adaptivePreferenceBonus))
		}

		if c.DistanceKm != nil {
			penalty := int(math.Floor(*c.DistanceKm * adaptiveDistancePenalty))
			score -= penalty
			if penalty > 0 {
				reasons = append(reasons, fmt.Sprintf("distance -%d", penalty))
			}
		}

		c.Score = score
		c.Reasons = reasons
		result = append(result, c)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func (s *recommendationService) Invalidate(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, normalizeUserID(userID))
}

func (s *recommendationService) InvalidateAll(ctx context.Context) {
	removed := s.cache.Clear(ctx)
	logger.Info("Adaptive recommendation cache cleared", map[string]interface{}{
		"removed": removed,
	})
}

func (s *recommendationService) PurgeExpired(ctx context.Context) int {
	return s.cache.Purge(ctx)
}
