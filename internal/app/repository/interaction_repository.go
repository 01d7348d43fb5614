package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

// InteractionRepository is the append-only interaction log. There is no
// update or delete.
type InteractionRepository interface {
	Append(event *model.Interaction) error
	All(userID string) ([]model.Interaction, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Append(event *model.Interaction) error {
	logger.Debug("Appending interaction", map[string]interface{}{
		"user_id":       event.UserID,
		"restaurant_id": event.RestaurantID,
		"action":        event.Action,
	})

	if err := r.db.Create(event).Error; err != nil {
		logger.Error("Failed to append interaction", err, map[string]interface{}{
			"user_id":       event.UserID,
			"restaurant_id": event.RestaurantID,
		})
		return err
	}
	return nil
}

// All returns every event of the user in insertion order.
func (r *interactionRepository) All(userID string) ([]model.Interaction, error) {
	var events []model.Interaction
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&events).Error; err != nil {
		logger.Error("Failed to read interactions", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Interactions read", map[string]interface{}{
		"user_id": userID,
		"count":   len(events),
	})
	return events, nil
}
