package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

type AddFavoriteRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
}

// ListFavorites returns the caller's favorites, optionally filtered by state
// GET /api/v1/favorites?validated=true|false
func (ctrl *FavoriteController) ListFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var validated *bool
	if raw := c.Query("validated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "validated must be true or false")
			return
		}
		validated = &v
	}

	favorites := ctrl.favoriteService.List(userID, validated)

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite adds a restaurant to the to-try list
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	userID := middleware.GetUserID(c)

	var req AddFavoriteRequest
	if !bindJSON(c, &req, "add favorite") {
		return
	}

	if err := ctrl.favoriteService.Add(req.RestaurantID, userID); err != nil {
		if errors.Is(err, service.ErrRestaurantNotFound) {
			apperrors.NotFound(c, apperrors.RestaurantNotFound, "Restaurant not found")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": req.RestaurantID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"restaurant_id": req.RestaurantID,
		"status":        ctrl.favoriteService.Status(req.RestaurantID, userID),
	})
}

// RemoveFavorite deletes the favorite whatever its state
// DELETE /api/v1/favorites/:restaurant_id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}
	ctrl.favoriteService.Remove(restaurantID, middleware.GetUserID(c))
	c.Status(http.StatusNoContent)
}

// ValidateFavorite marks a to-try favorite as tried
// PUT /api/v1/favorites/:restaurant_id/validate
func (ctrl *FavoriteController) ValidateFavorite(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	ctrl.favoriteService.Validate(restaurantID, userID)
	ctrl.respondStatus(c, restaurantID, userID)
}

// UnvalidateFavorite moves a validated favorite back to to-try
// DELETE /api/v1/favorites/:restaurant_id/validate
func (ctrl *FavoriteController) UnvalidateFavorite(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	ctrl.favoriteService.Unvalidate(restaurantID, userID)
	ctrl.respondStatus(c, restaurantID, userID)
}

// ToggleFavorite is the swipe gesture
// POST /api/v1/favorites/:restaurant_id/toggle
func (ctrl *FavoriteController) ToggleFavorite(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}

	status := ctrl.favoriteService.Toggle(restaurantID, middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": restaurantID,
		"status":        status,
	})
}

// GetFavoriteStatus reports absent, to_try or validated
// GET /api/v1/favorites/:restaurant_id
func (ctrl *FavoriteController) GetFavoriteStatus(c *gin.Context) {
	restaurantID, ok := parseIDParam(c, "restaurant_id")
	if !ok {
		return
	}
	ctrl.respondStatus(c, restaurantID, middleware.GetUserID(c))
}

func (ctrl *FavoriteController) respondStatus(c *gin.Context, restaurantID uint, userID string) {
	status := ctrl.favoriteService.Status(restaurantID, userID)
	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": restaurantID,
		"status":        status,
		"is_favorite":   ctrl.favoriteService.IsFavorite(restaurantID, userID),
	})
}
