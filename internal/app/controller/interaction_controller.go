package controller

import (
	"errors"
	"net/http"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const defaultTrendingCount = 5

type InteractionController struct {
	interactionService service.InteractionService
	habitService       service.HabitService
	catalogService     service.CatalogService
}

func NewInteractionController(
	interactionService service.InteractionService,
	habitService service.HabitService,
	catalogService service.CatalogService,
) *InteractionController {
	return &InteractionController{
		interactionService: interactionService,
		habitService:       habitService,
		catalogService:     catalogService,
	}
}

type RecordInteractionRequest struct {
	RestaurantID string `json:"restaurant_id" binding:"required"`
	Cuisine      string `json:"cuisine"`
	Action       string `json:"action" binding:"required"`
}

// RecordInteraction appends one user gesture to the interaction log
// POST /api/v1/interactions
func (ctrl *InteractionController) RecordInteraction(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := middleware.GetUserID(c)

	var req RecordInteractionRequest
	if !bindJSON(c, &req, "interaction") {
		return
	}

	err := ctrl.interactionService.Append(userID, req.RestaurantID, req.Cuisine, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction):
			apperrors.BadRequest(c, apperrors.InteractionInvalidAction, "action must be one of view, click, call, route, website")
		case errors.Is(err, service.ErrInvalidRestaurantID):
			apperrors.BadRequest(c, apperrors.InteractionInvalidRestaurantID, "Invalid restaurant_id")
		default:
			log.Error("Failed to record interaction", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Interaction recorded"})
}

// GetHabits returns the cuisine frequency table of the caller
// GET /api/v1/habits
func (ctrl *InteractionController) GetHabits(c *gin.Context) {
	userID := middleware.GetUserID(c)
	habits := ctrl.habitService.ComputeHabits(userID)

	c.JSON(http.StatusOK, gin.H{
		"habits": habits,
		"count":  len(habits),
	})
}

// GetPopularity returns engaging interaction counts per restaurant id
// GET /api/v1/popularity
func (ctrl *InteractionController) GetPopularity(c *gin.Context) {
	userID := middleware.GetUserID(c)
	popularity := ctrl.habitService.ComputePopularity(userID)

	c.JSON(http.StatusOK, gin.H{
		"popularity": popularity,
		"count":      len(popularity),
	})
}

// GetTrending returns the caller's most engaged restaurants
// GET /api/v1/trending?n=
func (ctrl *InteractionController) GetTrending(c *gin.Context) {
	userID := middleware.GetUserID(c)
	n := queryInt(c, "n", defaultTrendingCount)
	if n <= 0 {
		n = defaultTrendingCount
	}

	ids := ctrl.habitService.TrendingIDs(userID, n)

	// Ids from the log may no longer be in the catalog
	restaurants := make([]model.Restaurant, 0, len(ids))
	for _, id := range ids {
		if r, err := ctrl.catalogService.Get(uint(id)); err == nil {
			restaurants = append(restaurants, *r)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_ids": ids,
		"restaurants":    restaurants,
	})
}
