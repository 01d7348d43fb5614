package repository

import (
	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
	Delete(id string) (bool, error)
	FindByID(id string) (*model.Profile, error)
	FindAll() ([]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	logger.Debug("Creating profile in database", map[string]interface{}{
		"profile_id": profile.ID,
		"name":       profile.Name,
	})

	if err := r.db.Create(profile).Error; err != nil {
		logger.Error("Failed to create profile in database", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return err
	}
	return nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		logger.Error("Failed to update profile in database", err, map[string]interface{}{
			"profile_id": profile.ID,
		})
		return err
	}
	return nil
}

func (r *profileRepository) Delete(id string) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Profile{})
	if result.Error != nil {
		logger.Error("Failed to delete profile from database", result.Error, map[string]interface{}{
			"profile_id": id,
		})
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *profileRepository) FindByID(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindAll returns profiles oldest first; the first one is the fallback
// active profile on a fresh device.
func (r *profileRepository) FindAll() ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.Order("created_at ASC").Order("id ASC").Find(&profiles).Error; err != nil {
		logger.Error("Failed to list profiles", err)
		return nil, err
	}
	return profiles, nil
}
