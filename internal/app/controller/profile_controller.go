package controller

import (
	"errors"
	"net/http"

	"github.com/foodreco/foodreco-backend/internal/app/service"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	profileService service.ProfileService
}

func NewProfileController(profileService service.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

type AddXPRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// CreateProfile creates a local profile and returns its token
// POST /api/v1/profiles
func (ctrl *ProfileController) CreateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	session, err := ctrl.profileService.Create(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			apperrors.BadRequest(c, apperrors.ProfileInvalid, "Name must be 1 to 100 characters, avatar at most 50")
			return
		}
		log.Error("Failed to create profile", err, nil)
		apperrors.ParseAndRespond(c, err, "create profile")
		return
	}

	c.JSON(http.StatusCreated, session)
}

// ListProfiles returns every profile on this device
// GET /api/v1/profiles
func (ctrl *ProfileController) ListProfiles(c *gin.Context) {
	profiles := ctrl.profileService.List()
	c.JSON(http.StatusOK, gin.H{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// GetProfile
// GET /api/v1/profiles/:id
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	profile, err := ctrl.profileService.Get(c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"level_progress": profile.LevelProgress(),
	})
}

// UpdateProfile changes name and/or avatar; blank fields are kept
// PUT /api/v1/profiles/:id
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	profile, err := ctrl.profileService.Update(c.Param("id"), input)
	if err != nil {
		ctrl.respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// DeleteProfile
// DELETE /api/v1/profiles/:id
func (ctrl *ProfileController) DeleteProfile(c *gin.Context) {
	if err := ctrl.profileService.Delete(c.Param("id")); err != nil {
		ctrl.respondError(c, err, "delete profile")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddXP credits experience points and recomputes the level
// POST /api/v1/profiles/:id/xp
func (ctrl *ProfileController) AddXP(c *gin.Context) {
	var req AddXPRequest
	if !bindJSON(c, &req, "add xp") {
		return
	}

	profile, err := ctrl.profileService.AddXP(c.Param("id"), req.Amount)
	if err != nil {
		ctrl.respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"level_progress": profile.LevelProgress(),
	})
}

// ActivateProfile issues a fresh token for switching to this profile
// POST /api/v1/profiles/:id/activate
func (ctrl *ProfileController) ActivateProfile(c *gin.Context) {
	session, err := ctrl.profileService.Activate(c.Param("id"))
	if err != nil {
		ctrl.respondError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (ctrl *ProfileController) respondError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		apperrors.NotFound(c, apperrors.ProfileNotFound, "Profile not found")
	case errors.Is(err, service.ErrInvalidProfile):
		apperrors.BadRequest(c, apperrors.ProfileInvalid, "Name must be 1 to 100 characters, avatar at most 50")
	case errors.Is(err, service.ErrInvalidXP):
		apperrors.BadRequest(c, apperrors.ProfileInvalidXP, "amount must be positive")
	default:
		middleware.GetLoggerFromContext(c).Error("Profile request failed", err, map[string]interface{}{
			"profile_id": c.Param("id"),
		})
		apperrors.ParseAndRespond(c, err, context)
	}
}
