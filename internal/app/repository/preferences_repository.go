package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository interface {
	FindByUserID(userID string) (*model.UserPreferences, error)
	Upsert(prefs *model.UserPreferences) error
}

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) FindByUserID(userID string) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	if err := r.db.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Upsert(prefs *model.UserPreferences) error {
	logger.Debug("Saving preferences", map[string]interface{}{
		"user_id": prefs.UserID,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(prefs).Error
	if err != nil {
		logger.Error("Failed to save preferences", err, map[string]interface{}{
			"user_id": prefs.UserID,
		})
		return err
	}
	return nil
}
