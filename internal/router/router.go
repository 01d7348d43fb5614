package router

import (
	"net/http"
	"time"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/internal/app/controller"
	apperrors "github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	restaurantController     *controller.RestaurantController
	interactionController    *controller.InteractionController
	recommendationController *controller.RecommendationController
	favoriteController       *controller.FavoriteController
	preferencesController    *controller.PreferencesController
	profileController        *controller.ProfileController
	identityMiddleware       *middleware.IdentityMiddleware
	config                   *config.Config
}

func NewRouter(
	restaurantController *controller.RestaurantController,
	interactionController *controller.InteractionController,
	recommendationController *controller.RecommendationController,
	favoriteController *controller.FavoriteController,
	preferencesController *controller.PreferencesController,
	profileController *controller.ProfileController,
	identityMiddleware *middleware.IdentityMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		restaurantController:     restaurantController,
		interactionController:    interactionController,
		recommendationController: recommendationController,
		favoriteController:       favoriteController,
		preferencesController:    preferencesController,
		profileController:        profileController,
		identityMiddleware:       identityMiddleware,
		config:                   cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.Metrics())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "FoodReco API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Route not found")
	})

	// Only writes are rate limited
	limiter := middleware.NewRateLimiter(
		r.config.RateLimit.RequestsPerSecond,
		r.config.RateLimit.Burst,
		middleware.KeyByUserOrIP(),
	)
	limit := limiter.Handler()

	v1 := router.Group("/api/v1")
	v1.Use(r.identityMiddleware.Identify())
	{
		restaurants := v1.Group("/restaurants")
		{
			restaurants.GET("", r.restaurantController.ListRestaurants)
			restaurants.GET("/nearby", r.restaurantController.NearbyRestaurants)
			restaurants.GET("/search", r.restaurantController.SearchRestaurants)
			restaurants.GET("/suggest", r.restaurantController.SuggestRestaurants)
			restaurants.POST("/custom", limit, r.restaurantController.AddCustomRestaurant)
			restaurants.GET("/:id", r.restaurantController.GetRestaurant)
		}

		v1.POST("/interactions", limit, r.interactionController.RecordInteraction)
		v1.GET("/habits", r.interactionController.GetHabits)
		v1.GET("/popularity", r.interactionController.GetPopularity)
		v1.GET("/trending", r.interactionController.GetTrending)

		recommendations := v1.Group("/recommendations")
		{
			recommendations.GET("", r.recommendationController.GetRecommendations)
			recommendations.GET("/adaptive", r.recommendationController.GetAdaptiveRecommendations)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", r.favoriteController.ListFavorites)
			favorites.POST("", limit, r.favoriteController.AddFavorite)
			favorites.GET("/:restaurant_id", r.favoriteController.GetFavoriteStatus)
			favorites.DELETE("/:restaurant_id", limit, r.favoriteController.RemoveFavorite)
			favorites.PUT("/:restaurant_id/validate", limit, r.favoriteController.ValidateFavorite)
			favorites.DELETE("/:restaurant_id/validate", limit, r.favoriteController.UnvalidateFavorite)
			favorites.POST("/:restaurant_id/toggle", limit, r.favoriteController.ToggleFavorite)
		}

		preferences := v1.Group("/preferences")
		{
			preferences.GET("", r.preferencesController.GetPreferences)
			preferences.PUT("", limit, r.preferencesController.UpdatePreferences)
			preferences.POST("/onboarding", limit, r.preferencesController.CompleteOnboarding)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.GET("", r.profileController.ListProfiles)
			profiles.POST("", limit, r.profileController.CreateProfile)
			profiles.GET("/:id", r.profileController.GetProfile)
			profiles.PUT("/:id", limit, r.profileController.UpdateProfile)
			profiles.DELETE("/:id", limit, r.profileController.DeleteProfile)
			profiles.POST("/:id/xp", limit, r.profileController.AddXP)
			profiles.POST("/:id/activate", limit, r.profileController.ActivateProfile)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	headers := []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.ProfileIDHeader, middleware.RequestIDHeader}
	methods := []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		return cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    methods,
			AllowHeaders:    headers,
			ExposeHeaders:   []string{middleware.RequestIDHeader, "Content-Length"},
			MaxAge:          12 * time.Hour,
		})
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
