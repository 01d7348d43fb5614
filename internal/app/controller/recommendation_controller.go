package controller

import (
	"net/http"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	recommendationService service.RecommendationService
}

func NewRecommendationController(recommendationService service.RecommendationService) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

// GetRecommendations ranks unseen restaurants by overlap with recent engagement
// GET /api/v1/recommendations?limit=
func (ctrl *RecommendationController) GetRecommendations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	restaurants := ctrl.recommendationService.Recommend(userID, queryInt(c, "limit", 0))

	c.JSON(http.StatusOK, gin.H{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

// GetAdaptiveRecommendations scores restaurants around the caller
// GET /api/v1/recommendations/adaptive?lat=&lon=&radius=
func (ctrl *RecommendationController) GetAdaptiveRecommendations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	lat, lon, ok := queryPosition(c)
	if !ok {
		return
	}
	radius, err := queryFloat(c, "radius")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "radius must be a number")
		return
	}

	var pos *model.Position
	if lat != nil {
		pos = &model.Position{Lat: *lat, Lon: *lon}
	}
	radiusKm := 0.0
	if radius != nil {
		radiusKm = *radius
	}
	if radiusKm > service.MaxNearbyRadiusKm {
		radiusKm = service.MaxNearbyRadiusKm
	}

	results := ctrl.recommendationService.Adaptive(c.Request.Context(), userID, pos, radiusKm)

	c.JSON(http.StatusOK, gin.H{
		"restaurants": results,
		"count":       len(results),
	})
}
