package controller

import (
	"errors"
	"net/http"

	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	catalogService        service.CatalogService
	preferencesService    service.PreferencesService
	recommendationService service.RecommendationService
}

func NewRestaurantController(
	catalogService service.CatalogService,
	preferencesService service.PreferencesService,
	recommendationService service.RecommendationService,
) *RestaurantController {
	return &RestaurantController{
		catalogService:        catalogService,
		preferencesService:    preferencesService,
		recommendationService: recommendationService,
	}
}

// ListRestaurants returns one page of the catalog ordered by name
// GET /api/v1/restaurants?page=&size=
func (ctrl *RestaurantController) ListRestaurants(c *gin.Context) {
	page := ctrl.catalogService.Page(queryInt(c, "page", 1), queryInt(c, "size", service.DefaultPageSize))
	c.JSON(http.StatusOK, page)
}

// GetRestaurant returns a single restaurant
// GET /api/v1/restaurants/:id
func (ctrl *RestaurantController) GetRestaurant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := ctrl.catalogService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurant not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to fetch restaurant", err, map[string]interface{}{
			"restaurant_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// NearbyRestaurants lists located restaurants within radius km, closest first
// GET /api/v1/restaurants/nearby?lat=&lon=&radius=
func (ctrl *RestaurantController) NearbyRestaurants(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	lat, lon, ok := queryPosition(c)
	if !ok {
		return
	}
	if lat == nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "lat and lon are required")
		return
	}

	radius, err := queryFloat(c, "radius")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "radius must be a number")
		return
	}
	radiusKm := service.DefaultNearbyRadiusKm
	if radius != nil {
		radiusKm = *radius
	}
	if radiusKm > service.MaxNearbyRadiusKm {
		radiusKm = service.MaxNearbyRadiusKm
	}

	hits := ctrl.catalogService.Nearby(*lat, *lon, radiusKm)

	log.Debug("Nearby restaurants fetched", map[string]interface{}{
		"lat":       *lat,
		"lon":       *lon,
		"radius_km": radiusKm,
		"count":     len(hits),
	})

	c.JSON(http.StatusOK, gin.H{
		"restaurants": hits,
		"count":       len(hits),
		"radius_km":   radiusKm,
	})
}

// SearchRestaurants filters the catalog with the caller's saved preferences
// GET /api/v1/restaurants/search
func (ctrl *RestaurantController) SearchRestaurants(c *gin.Context) {
	userID := middleware.GetUserID(c)
	prefs := ctrl.preferencesService.Get(userID)
	results := ctrl.catalogService.Search(prefs)

	c.JSON(http.StatusOK, gin.H{
		"restaurants": results,
		"count":       len(results),
	})
}

// SuggestRestaurants powers the search box autocompletion
// GET /api/v1/restaurants/suggest?q=
func (ctrl *RestaurantController) SuggestRestaurants(c *gin.Context) {
	suggestions := ctrl.catalogService.Suggest(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"restaurants": suggestions,
		"count":       len(suggestions),
	})
}

// AddCustomRestaurant adds a user supplied restaurant to the overlay
// POST /api/v1/restaurants/custom
func (ctrl *RestaurantController) AddCustomRestaurant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.CustomRestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid custom restaurant request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	restaurant, err := ctrl.catalogService.AddCustom(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRestaurant) {
			apperrors.BadRequest(c, apperrors.RestaurantInvalid, "A name and valid coordinates are required")
			return
		}
		log.Error("Failed to add custom restaurant", err, nil)
		apperrors.ParseAndRespond(c, err, "create restaurant")
		return
	}

	// Cached adaptive rankings do not know about the new candidate
	ctrl.recommendationService.InvalidateAll(c.Request.Context())

	c.JSON(http.StatusCreated, gin.H{"restaurant": restaurant})
}
