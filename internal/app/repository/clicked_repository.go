package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClickRingSize is the number of distinct restaurants kept per user.
const ClickRingSize = 20

type ClickedRepository interface {
	Register(entry *model.ClickedRestaurant) error
	Recent(userID string, limit int) ([]model.ClickedRestaurant, error)
}

type clickedRepository struct {
	db       *gorm.DB
	capacity int
}

func NewClickedRepository(db *gorm.DB) ClickedRepository {
	return &clickedRepository{db: db, capacity: ClickRingSize}
}

// Register moves the restaurant to the most recent slot, replacing any
// previous entry for it, then drops the oldest entries beyond capacity.
func (r *clickedRepository) Register(entry *model.ClickedRestaurant) error {
	logger.Debug("Registering clicked restaurant", map[string]interface{}{
		"user_id":       entry.UserID,
		"restaurant_id": entry.RestaurantID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&model.ClickedRestaurant{}).
			Where("user_id = ?", entry.UserID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		entry.Seq = maxSeq + 1

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "restaurant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cuisines", "type", "seq"}),
		}).Create(entry).Error; err != nil {
			return err
		}

		var ids []uint
		if err := tx.Model(&model.ClickedRestaurant{}).
			Where("user_id = ?", entry.UserID).
			Order("seq DESC").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) <= r.capacity {
			return nil
		}
		return tx.Where("id IN ?", ids[r.capacity:]).Delete(&model.ClickedRestaurant{}).Error
	})
	if err != nil {
		logger.Error("Failed to register clicked restaurant", err, map[string]interface{}{
			"user_id":       entry.UserID,
			"restaurant_id": entry.RestaurantID,
		})
		return err
	}
	return nil
}

// Recent returns up to limit entries, most recent first.
func (r *clickedRepository) Recent(userID string, limit int) ([]model.ClickedRestaurant, error) {
	if limit <= 0 || limit > r.capacity {
		limit = r.capacity
	}

	var entries []model.ClickedRestaurant
	if err := r.db.Where("user_id = ?", userID).
		Order("seq DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		logger.Error("Failed to read clicked restaurants", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return entries, nil
}
