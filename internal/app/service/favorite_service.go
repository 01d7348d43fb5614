package service

import (
	"errors"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

// FavoriteService drives the per-user favorite state machine:
// absent -> to_try <-> validated, and back to absent on removal.
// Every write is idempotent. Storage failures are logged and the write is
// treated as not having happened.
type FavoriteService interface {
	Add(restaurantID uint, userID string) error
	Remove(restaurantID uint, userID string)
	Validate(restaurantID uint, userID string)
	Unvalidate(restaurantID uint, userID string)
	// Toggle is the swipe gesture: to_try and validated swap, absent stays
	// absent. It returns the resulting state.
	Toggle(restaurantID uint, userID string) model.FavoriteStatus
	List(userID string, validated *bool) []model.Favorite
	IsFavorite(restaurantID uint, userID string) bool
	Status(restaurantID uint, userID string) model.FavoriteStatus
}

type favoriteService struct {
	favoriteRepo   repository.FavoriteRepository
	restaurantRepo repository.RestaurantRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	restaurantRepo repository.RestaurantRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo:   favoriteRepo,
		restaurantRepo: restaurantRepo,
	}
}

func (s *favoriteService) Add(restaurantID uint, userID string) error {
	userID = normalizeUserID(userID)
	logger.Info("Adding favorite", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
	})

	if _, err := s.restaurantRepo.FindByID(restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add favorite: restaurant not found", map[string]interface{}{
				"user_id":       userID,
				"restaurant_id": restaurantID,
			})
			return ErrRestaurantNotFound
		}
		logger.Error("Favorite not added, restaurant lookup failed", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return nil
	}

	inserted, err := s.favoriteRepo.Insert(restaurantID, userID)
	if err != nil {
		logger.Error("Favorite not added", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return nil
	}

	if !inserted {
		logger.Debug("Favorite already present", map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return nil
	}

	logger.Info("Favorite added successfully", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
	})
	return nil
}

func (s *favoriteService) Remove(restaurantID uint, userID string) {
	userID = normalizeUserID(userID)

	deleted, err := s.favoriteRepo.Delete(restaurantID, userID)
	if err != nil {
		logger.Error("Favorite not removed", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return
	}

	logger.Info("Favorite removal processed", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
		"deleted":       deleted,
	})
}

func (s *favoriteService) Validate(restaurantID uint, userID string) {
	s.setValidated(restaurantID, normalizeUserID(userID), true)
}

func (s *favoriteService) Unvalidate(restaurantID uint, userID string) {
	s.setValidated(restaurantID, normalizeUserID(userID), false)
}

func (s *favoriteService) setValidated(restaurantID uint, userID string, validated bool) bool {
	changed, err := s.favoriteRepo.SetValidated(restaurantID, userID, validated)
	if err != nil {
		logger.Error("Favorite state not changed", err, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
			"validated":     validated,
		})
		return false
	}

	logger.Debug("Favorite state update processed", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
		"validated":     validated,
		"changed":       changed,
	})
	return changed
}

func (s *favoriteService) Toggle(restaurantID uint, userID string) model.FavoriteStatus {
	userID = normalizeUserID(userID)

	current := s.Status(restaurantID, userID)
	switch current {
	case model.FavoriteToTry:
		if s.setValidated(restaurantID, userID, true) {
			return model.FavoriteValidated
		}
	case model.FavoriteValidated:
		if s.setValidated(restaurantID, userID, false) {
			return model.FavoriteToTry
		}
	}
	return s.Status(restaurantID, userID)
}

func (s *favoriteService) List(userID string, validated *bool) []model.Favorite {
	userID = normalizeUserID(userID)

	favorites, err := s.favoriteRepo.FindByUser(userID, validated)
	if err != nil {
		logger.Error("Favorites unavailable, returning empty list", err, map[string]interface{}{
			"user_id": userID,
		})
		return []model.Favorite{}
	}
	return favorites
}

func (s *favoriteService) IsFavorite(restaurantID uint, userID string) bool {
	return s.Status(restaurantID, userID) != model.FavoriteAbsent
}

func (s *favoriteService) Status(restaurantID uint, userID string) model.FavoriteStatus {
	userID = normalizeUserID(userID)

	favorite, err := s.favoriteRepo.Find(restaurantID, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to read favorite state", err, map[string]interface{}{
				"user_id":       userID,
				"restaurant_id": restaurantID,
			})
		}
		return model.FavoriteAbsent
	}
	return favorite.Status()
}
