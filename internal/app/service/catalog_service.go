package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/foodreco/foodreco-backend/internal/storage"
	"github.com/foodreco/foodreco-backend/pkg/geo"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrInvalidRestaurant  = errors.New("invalid restaurant")
)

const (
	DefaultPageSize          = 10
	MaxPageSize              = 100
	SuggestionLimit          = 7
	MinSuggestionQueryLength = 3
	DefaultNearbyRadiusKm    = 5.0
	MaxNearbyRadiusKm        = 30.0
	catalogSeedBatchSize     = 1000
)

// NearbyRestaurant is a restaurant annotated with its distance from the
// query position.
type NearbyRestaurant struct {
	model.Restaurant
	DistanceKm float64 `json:"distance_km"`
}

type CustomRestaurantInput struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Cuisines   []string `json:"cuisines"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lon"`
	Vegetarian bool     `json:"vegetarian"`
	Vegan      bool     `json:"vegan"`
	Takeaway   bool     `json:"takeaway"`
}

type RestaurantPage struct {
	Restaurants []model.Restaurant `json:"restaurants"`
	Page        int                `json:"page"`
	Size        int                `json:"size"`
	Total       int                `json:"total"`
	TotalPages  int                `json:"total_pages"`
}

type CatalogService interface {
	Load(ctx context.Context) error
	All() []model.Restaurant
	Get(id uint) (*model.Restaurant, error)
	AddCustom(input CustomRestaurantInput) (*model.Restaurant, error)
	Nearby(lat, lon, radiusKm float64) []NearbyRestaurant
	Search(prefs model.UserPreferences) []model.Restaurant
	Suggest(query string) []model.Restaurant
	Page(page, size int) RestaurantPage
}

type catalogService struct {
	restaurantRepo repository.RestaurantRepository
	source         storage.CatalogSource

	mu     sync.RWMutex
	static []model.Restaurant
}

func NewCatalogService(restaurantRepo repository.RestaurantRepository, source storage.CatalogSource) CatalogService {
	return &catalogService{
		restaurantRepo: restaurantRepo,
		source:         source,
	}
}

// Load seeds the restaurants table from the catalog source when it holds no
// static row with a usable location, then caches the static rows. The cache
// is never refreshed afterwards.
func (s *catalogService) Load(ctx context.Context) error {
	total, located, err := s.restaurantRepo.CountStatic()
	if err != nil {
		logger.Error("Failed to count catalog rows", err)
		return err
	}

	if s.source != nil && (total == 0 || located == 0) {
		if err := s.seed(ctx, total); err != nil {
			// Keep whatever is already stored.
			logger.Error("Failed to seed catalog", err, map[string]interface{}{
				"source": s.source.Name(),
			})
		}
	}

	static, err := s.restaurantRepo.FindStatic()
	if err != nil {
		logger.Error("Failed to load static catalog", err)
		return err
	}

	s.mu.Lock()
	s.static = static
	s.mu.Unlock()

	metrics.CatalogSize.WithLabelValues("static").Set(float64(len(static)))
	logger.Info("Catalog loaded", map[string]interface{}{
		"count": len(static),
	})
	return nil
}

func (s *catalogService) seed(ctx context.Context, existing int64) error {
	logger.Info("Seeding catalog", map[string]interface{}{
		"source":   s.source.Name(),
		"existing": existing,
	})

	raws, err := s.source.Load(ctx)
	if err != nil {
		return err
	}

	restaurants := make([]model.Restaurant, 0, len(raws))
	for _, raw := range raws {
		restaurants = append(restaurants, model.NormalizeRaw(raw))
	}

	// Rows without any location are a stale import; replace them.
	if existing > 0 {
		if err := s.restaurantRepo.ReplaceStatic(restaurants, catalogSeedBatchSize); err != nil {
			return err
		}
	} else if err := s.restaurantRepo.BulkCreate(restaurants, catalogSeedBatchSize); err != nil {
		return err
	}

	logger.Info("Catalog seeded", map[string]interface{}{
		"count": len(restaurants),
	})
	return nil
}

// All returns the static catalog followed by the custom overlay. A failing
// overlay read yields the static catalog alone.
func (s *catalogService) All() []model.Restaurant {
	s.mu.RLock()
	all := make([]model.Restaurant, len(s.static), len(s.static)+8)
	copy(all, s.static)
	s.mu.RUnlock()

	custom, err := s.restaurantRepo.FindCustom()
	if err != nil {
		logger.Warn("Custom restaurants unavailable, using static catalog only", map[string]interface{}{
			"error": err.Error(),
		})
		return all
	}
	metrics.CatalogSize.WithLabelValues("custom").Set(float64(len(custom)))
	return append(all, custom...)
}

func (s *catalogService) Get(id uint) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return restaurant, nil
}

func (s *catalogService) AddCustom(input CustomRestaurantInput) (*model.Restaurant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidRestaurant
	}
	if math.Abs(input.Latitude) > 90 || math.Abs(input.Longitude) > 180 {
		return nil, ErrInvalidRestaurant
	}

	cuisines := make([]string, 0, len(input.Cuisines))
	for _, c := range input.Cuisines {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}

	restaurant := &model.Restaurant{
		Name:       name,
		Type:       strings.TrimSpace(input.Type),
		Cuisines:   strings.Join(cuisines, ","),
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Vegetarian: input.Vegetarian || input.Vegan,
		Vegan:      input.Vegan,
		Takeaway:   input.Takeaway,
		IsCustom:   true,
	}

	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}

	logger.Info("Custom restaurant added", map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"name":          restaurant.Name,
	})
	return restaurant, nil
}

// Nearby drops entries without a usable location, then returns those within
// radiusKm ordered by distance.
func (s *catalogService) Nearby(lat, lon, radiusKm float64) []NearbyRestaurant {
	all := s.All()
	located := make([]model.Restaurant, 0, len(all))
	for _, r := range all {
		if r.HasLocation() {
			located = append(located, r)
		}
	}

	hits := geo.Nearby(lat, lon, radiusKm, located)
	result := make([]NearbyRestaurant, 0, len(hits))
	for _, h := range hits {
		result = append(result, NearbyRestaurant{Restaurant: h.Item, DistanceKm: h.DistanceKm})
	}

	logger.Debug("Nearby restaurants computed", map[string]interface{}{
		"lat":       lat,
		"lon":       lon,
		"radius_km": radiusKm,
		"count":     len(result),
	})
	return result
}

func (s *catalogService) Search(prefs model.UserPreferences) []model.Restaurant {
	result := []model.Restaurant{}
	for _, r := range s.All() {
		if prefs.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// Suggest returns up to SuggestionLimit restaurants whose name contains the
// query, case-insensitively. Short queries return nothing.
func (s *catalogService) Suggest(query string) []model.Restaurant {
	q := strings.ToLower(strings.TrimSpace(query))
	result := []model.Restaurant{}
	if utf8.RuneCountInString(q) < MinSuggestionQueryLength {
		return result
	}

	for _, r := range s.All() {
		if strings.Contains(strings.ToLower(r.Name), q) {
			result = append(result, r)
			if len(result) == SuggestionLimit {
				break
			}
		}
	}
	return result
}

// Page lists the catalog ordered by name. Pages are 1-based.
func (s *catalogService) Page(page, size int) RestaurantPage {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	all := s.All()
	sort.SliceStable(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})

	total := len(all)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return RestaurantPage{
		Restaurants: all[start:end],
		Page:        page,
		Size:        size,
		Total:       total,
		TotalPages:  (total + size - 1) / size,
	}
}
