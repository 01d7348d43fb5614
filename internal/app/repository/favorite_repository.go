package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	// Insert adds the pair in the to-try state. It reports false when the
	// pair already existed, in which case nothing changes.
	Insert(restaurantID uint, userID string) (bool, error)
	Delete(restaurantID uint, userID string) (bool, error)
	// SetValidated flips only a row currently in the opposite state and
	// reports whether a row changed.
	SetValidated(restaurantID uint, userID string, validated bool) (bool, error)
	Find(restaurantID uint, userID string) (*model.Favorite, error)
	FindByUser(userID string, validated *bool) ([]model.Favorite, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Insert(restaurantID uint, userID string) (bool, error) {
	logger.Debug("Inserting favorite in database", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
	})

	favorite := &model.Favorite{RestaurantID: restaurantID, UserID: userID}
	result := r.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(favorite)
	if result.Error != nil {
		logger.Error("Failed to insert favorite in database", result.Error, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return false, result.Error
	}

	logger.Debug("Favorite insert finished", map[string]interface{}{
		"user_id":       userID,
		"restaurant_id": restaurantID,
		"inserted":      result.RowsAffected > 0,
	})
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Delete(restaurantID uint, userID string) (bool, error) {
	result := r.db.Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).Delete(&model.Favorite{})
	if result.Error != nil {
		logger.Error("Failed to delete favorite from database", result.Error, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) SetValidated(restaurantID uint, userID string, validated bool) (bool, error) {
	result := r.db.Model(&model.Favorite{}).
		Where("restaurant_id = ? AND user_id = ? AND validated = ?", restaurantID, userID, !validated).
		Update("validated", validated)
	if result.Error != nil {
		logger.Error("Failed to update favorite state", result.Error, map[string]interface{}{
			"user_id":       userID,
			"restaurant_id": restaurantID,
			"validated":     validated,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) Find(restaurantID uint, userID string) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.Where("restaurant_id = ? AND user_id = ?", restaurantID, userID).First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindByUser returns the user's favorites, newest first, each with its
// restaurant loaded. A nil filter returns both states.
func (r *favoriteRepository) FindByUser(userID string, validated *bool) ([]model.Favorite, error) {
	query := r.db.Where("user_id = ?", userID)
	if validated != nil {
		query = query.Where("validated = ?", *validated)
	}

	var favorites []model.Favorite
	if err := query.Preload("Restaurant").
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).Error; err != nil {
		logger.Error("Failed to find favorites by user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Favorites found by user", map[string]interface{}{
		"user_id": userID,
		"count":   len(favorites),
	})
	return favorites, nil
}
