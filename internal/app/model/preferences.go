package model

import (
	"strings"
	"time"
)

type DietPreference string

const (
	DietNone       DietPreference = "none"
	DietVegetarian DietPreference = "vegetarian"
	DietVegan      DietPreference = "vegan"
)

// UserPreferences drives catalog search and the preference bonus of the
// adaptive ranking.
type UserPreferences struct {
	UserID            string         `gorm:"primaryKey;type:varchar(64)" json:"user_id"`
	PreferredTypes    StringArray    `gorm:"type:text" json:"preferred_types"`
	Cuisines          StringArray    `gorm:"type:text" json:"cuisines"`
	Diet              DietPreference `gorm:"type:varchar(16);default:none" json:"diet"`
	TakeawayPreferred bool           `gorm:"default:false" json:"takeaway_preferred"`
	OnboardingDone    bool           `gorm:"default:false" json:"onboarding_done"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

// DefaultPreferences returns the preferences of a user who never saved any.
func DefaultPreferences(userID string) UserPreferences {
	return UserPreferences{
		UserID:         userID,
		PreferredTypes: StringArray{},
		Cuisines:       StringArray{},
		Diet:           DietNone,
	}
}

// NormalizeDiet maps free text from older clients ("Végétarien",
// "vegan strict", ...) onto a DietPreference.
func NormalizeDiet(value string) DietPreference {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch {
	case normalized == "":
		return DietNone
	case strings.Contains(normalized, "vegan"), strings.Contains(normalized, "végan"):
		return DietVegan
	case strings.Contains(normalized, "vege"),
		strings.Contains(normalized, "végé"),
		strings.Contains(normalized, "vegetarian"):
		return DietVegetarian
	default:
		return DietNone
	}
}

// Matches reports whether a restaurant passes the type, diet and takeaway
// filters.
func (p UserPreferences) Matches(r Restaurant) bool {
	if len(p.PreferredTypes) > 0 {
		found := false
		for _, t := range p.PreferredTypes {
			if t == r.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if p.Diet == DietVegetarian && !r.Vegetarian {
		return false
	}
	if p.Diet == DietVegan && !r.Vegan {
		return false
	}
	if p.TakeawayPreferred && !r.Takeaway {
		return false
	}
	return true
}
