package controller

import (
	"net/http"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type PreferencesController struct {
	preferencesService    service.PreferencesService
	recommendationService service.RecommendationService
}

func NewPreferencesController(
	preferencesService service.PreferencesService,
	recommendationService service.RecommendationService,
) *PreferencesController {
	return &PreferencesController{
		preferencesService:    preferencesService,
		recommendationService: recommendationService,
	}
}

// GetPreferences returns the caller's preferences, defaults when none saved
// GET /api/v1/preferences
func (ctrl *PreferencesController) GetPreferences(c *gin.Context) {
	prefs := ctrl.preferencesService.Get(middleware.GetUserID(c))
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences replaces the caller's preferences
// PUT /api/v1/preferences
func (ctrl *PreferencesController) UpdatePreferences(c *gin.Context) {
	ctrl.save(c, false)
}

// CompleteOnboarding saves the onboarding answers and marks it done
// POST /api/v1/preferences/onboarding
func (ctrl *PreferencesController) CompleteOnboarding(c *gin.Context) {
	ctrl.save(c, true)
}

func (ctrl *PreferencesController) save(c *gin.Context, onboarding bool) {
	log := middleware.GetLoggerFromContext(c)
	userID := middleware.GetUserID(c)

	var input service.PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		log.Warn("Invalid preferences request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	var prefs model.UserPreferences
	if onboarding {
		prefs = ctrl.preferencesService.CompleteOnboarding(userID, input)
	} else {
		prefs = ctrl.preferencesService.Save(userID, input)
	}

	// The preference bonus is part of the cached adaptive scores
	ctrl.recommendationService.Invalidate(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
