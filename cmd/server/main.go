package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodreco/foodreco-backend/config"
	"github.com/foodreco/foodreco-backend/internal/app/controller"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/internal/app/service"
	"github.com/foodreco/foodreco-backend/internal/cache"
	"github.com/foodreco/foodreco-backend/internal/db"
	"github.com/foodreco/foodreco-backend/internal/middleware"
	"github.com/foodreco/foodreco-backend/internal/router"
	"github.com/foodreco/foodreco-backend/internal/scheduler"
	"github.com/foodreco/foodreco-backend/internal/storage"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"github.com/foodreco/foodreco-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting FoodReco Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	gormDB, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	restaurantRepo := repository.NewRestaurantRepository(gormDB)
	interactionRepo := repository.NewInteractionRepository(gormDB)
	clickedRepo := repository.NewClickedRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	preferencesRepo := repository.NewPreferencesRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	// Static catalog
	catalogSource, err := storage.NewCatalogSource(&cfg.Catalog)
	if err != nil {
		logger.Fatal("Invalid catalog source", err)
	}
	catalogService := service.NewCatalogService(restaurantRepo, catalogSource)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Minute)
	if err := catalogService.Load(loadCtx); err != nil {
		logger.Warn("Catalog not loaded, serving custom restaurants only", map[string]interface{}{
			"error": err.Error(),
		})
	}
	cancelLoad()

	// Recommendation cache: Redis when enabled and reachable, memory otherwise
	recoCache := cache.NewMemoryCache(cfg.Recommendation.CacheTTL)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, using in-memory recommendation cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			recoCache = cache.NewRedisCache(redis.GetClient(), cfg.Recommendation.CacheTTL)
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize services
	interactionService := service.NewInteractionService(interactionRepo, clickedRepo, restaurantRepo)
	habitService := service.NewHabitService(interactionRepo)
	preferencesService := service.NewPreferencesService(preferencesRepo)
	recommendationService := service.NewRecommendationService(
		clickedRepo,
		catalogService,
		habitService,
		preferencesService,
		recoCache,
		service.RecommendationOptions{
			DefaultLimit:     cfg.Recommendation.DefaultLimit,
			AdaptiveRadiusKm: cfg.Recommendation.AdaptiveRadiusKm,
			MoveThresholdKm:  cfg.Recommendation.CacheMoveThresholdKm,
		},
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, restaurantRepo)
	profileService := service.NewProfileService(profileRepo, cfg.JWT.Secret, cfg.JWT.ProfileTokenExpiry)

	// Initialize controllers
	restaurantController := controller.NewRestaurantController(catalogService, preferencesService, recommendationService)
	interactionController := controller.NewInteractionController(interactionService, habitService, catalogService)
	recommendationController := controller.NewRecommendationController(recommendationService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	preferencesController := controller.NewPreferencesController(preferencesService, recommendationService)
	profileController := controller.NewProfileController(profileService)

	// Initialize middleware
	identityMiddleware := middleware.NewIdentityMiddleware(cfg.JWT.Secret)

	// Start cache purge scheduler
	purgeScheduler := scheduler.NewCachePurgeScheduler(recommendationService, cfg.Recommendation.CachePurgeSpec)
	if err := purgeScheduler.Start(); err != nil {
		logger.Warn("Recommendation cache purge disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer purgeScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		restaurantController,
		interactionController,
		recommendationController,
		favoriteController,
		preferencesController,
		profileController,
		identityMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
