package service

import (
	"errors"
	"strings"

	"github.com/foodreco/foodreco-backend/internal/app/model"
	"github.com/foodreco/foodreco-backend/internal/app/repository"
	"github.com/foodreco/foodreco-backend/pkg/logger"
	"gorm.io/gorm"
)

type PreferencesInput struct {
	PreferredTypes    []string `json:"preferred_types"`
	Cuisines          []string `json:"cuisines"`
	Diet              string   `json:"diet"`
	TakeawayPreferred bool     `json:"takeaway_preferred"`
}

type PreferencesService interface {
	// Get never fails: a missing row or a read failure yields defaults.
	Get(userID string) model.UserPreferences
	// Save and CompleteOnboarding return the stored preferences. When the
	// write fails the previous preferences are returned unchanged.
	Save(userID string, input PreferencesInput) model.UserPreferences
	CompleteOnboarding(userID string, input PreferencesInput) model.UserPreferences
	HasCompletedOnboarding(userID string) bool
}

type preferencesService struct {
	preferencesRepo repository.PreferencesRepository
}

func NewPreferencesService(preferencesRepo repository.PreferencesRepository) PreferencesService {
	return &preferencesService{preferencesRepo: preferencesRepo}
}

func (s *preferencesService) Get(userID string) model.UserPreferences {
	userID = normalizeUserID(userID)

	prefs, err := s.preferencesRepo.FindByUserID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to read preferences, using defaults", err, map[string]interface{}{
				"user_id": userID,
			})
		}
		return model.DefaultPreferences(userID)
	}
	if prefs.PreferredTypes == nil {
		prefs.PreferredTypes = model.StringArray{}
	}
	if prefs.Cuisines == nil {
		prefs.Cuisines = model.StringArray{}
	}
	return *prefs
}

func (s *preferencesService) Save(userID string, input PreferencesInput) model.UserPreferences {
	current := s.Get(userID)
	prefs := applyPreferencesInput(current, input)

	if err := s.preferencesRepo.Upsert(&prefs); err != nil {
		logger.Error("Preferences not saved", err, map[string]interface{}{
			"user_id": prefs.UserID,
		})
		return current
	}

	logger.Info("Preferences saved", map[string]interface{}{
		"user_id": prefs.UserID,
		"diet":    prefs.Diet,
		"types":   len(prefs.PreferredTypes),
	})
	return prefs
}

func (s *preferencesService) CompleteOnboarding(userID string, input PreferencesInput) model.UserPreferences {
	current := s.Get(userID)
	prefs := applyPreferencesInput(current, input)
	prefs.OnboardingDone = true

	if err := s.preferencesRepo.Upsert(&prefs); err != nil {
		logger.Error("Onboarding not saved", err, map[string]interface{}{
			"user_id": prefs.UserID,
		})
		return current
	}

	logger.Info("Onboarding completed", map[string]interface{}{
		"user_id": prefs.UserID,
	})
	return prefs
}

func (s *preferencesService) HasCompletedOnboarding(userID string) bool {
	return s.Get(userID).OnboardingDone
}

func applyPreferencesInput(prefs model.UserPreferences, input PreferencesInput) model.UserPreferences {
	prefs.PreferredTypes = cleanList(input.PreferredTypes, false)
	prefs.Cuisines = cleanList(input.Cuisines, true)
	prefs.Diet = model.NormalizeDiet(input.Diet)
	prefs.TakeawayPreferred = input.TakeawayPreferred
	return prefs
}

// cleanList trims and de-duplicates values, lowercasing them when asked.
func cleanList(values []string, lower bool) model.StringArray {
	out := model.StringArray{}
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
