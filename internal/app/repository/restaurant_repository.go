package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

type RestaurantRepository interface {
	Create(restaurant *model.Restaurant) error
	BulkCreate(restaurants []model.Restaurant, batchSize int) error
	FindStatic() ([]model.Restaurant, error)
	FindCustom() ([]model.Restaurant, error)
	FindByID(id uint) (*model.Restaurant, error)
	CountStatic() (total int64, located int64, err error)
	ReplaceStatic(restaurants []model.Restaurant, batchSize int) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) Create(restaurant *model.Restaurant) error {
	logger.Debug("Creating restaurant in database", map[string]interface{}{
		"name":      restaurant.Name,
		"is_custom": restaurant.IsCustom,
	})

	if err := r.db.Create(restaurant).Error; err != nil {
		logger.Error("Failed to create restaurant in database", err, map[string]interface{}{
			"name": restaurant.Name,
		})
		return err
	}

	logger.Debug("Restaurant created in database", map[string]interface{}{
		"restaurant_id": restaurant.ID,
	})
	return nil
}

func (r *restaurantRepository) BulkCreate(restaurants []model.Restaurant, batchSize int) error {
	if len(restaurants) == 0 {
		return nil
	}
	logger.Info("Bulk creating restaurants", map[string]interface{}{
		"count":      len(restaurants),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(restaurants, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create restaurants", err, map[string]interface{}{
			"count": len(restaurants),
		})
		return err
	}
	return nil
}

// FindStatic returns the imported catalog in insertion order.
func (r *restaurantRepository) FindStatic() ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.Where("is_custom = ?", false).Order("id ASC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to find static restaurants", err)
		return nil, err
	}

	logger.Debug("Static restaurants found", map[string]interface{}{
		"count": len(restaurants),
	})
	return restaurants, nil
}

// FindCustom returns the user-added overlay in insertion order.
func (r *restaurantRepository) FindCustom() ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.Where("is_custom = ?", true).Order("id ASC").Find(&restaurants).Error; err != nil {
		logger.Error("Failed to find custom restaurants", err)
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) FindByID(id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find restaurant by ID", err, map[string]interface{}{
				"restaurant_id": id,
			})
		}
		return nil, err
	}
	return &restaurant, nil
}

// CountStatic reports how many static rows exist and how many of them carry
// a usable position.
func (r *restaurantRepository) CountStatic() (int64, int64, error) {
	var total, located int64
	if err := r.db.Model(&model.Restaurant{}).Where("is_custom = ?", false).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.Model(&model.Restaurant{}).
		Where("is_custom = ? AND NOT (latitude = 0 AND longitude = 0)", false).
		Count(&located).Error
	if err != nil {
		return 0, 0, err
	}
	return total, located, nil
}

// ReplaceStatic swaps the imported catalog for restaurants in one
// transaction. Custom rows are left alone; on failure the old rows stay.
func (r *restaurantRepository) ReplaceStatic(restaurants []model.Restaurant, batchSize int) error {
	logger.Warn("Replacing static catalog rows", map[string]interface{}{
		"count": len(restaurants),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("is_custom = ?", false).Delete(&model.Restaurant{}).Error; err != nil {
			return err
		}
		if len(restaurants) == 0 {
			return nil
		}
		return tx.CreateInBatches(restaurants, batchSize).Error
	})
	if err != nil {
		logger.Error("Failed to replace static catalog", err, map[string]interface{}{
			"count": len(restaurants),
		})
		return err
	}
	return nil
}
