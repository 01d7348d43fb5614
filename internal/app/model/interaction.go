package model

import "strings"

// UnknownCuisine is recorded when an interaction carries no cuisine tag.
const UnknownCuisine = "unknown"

// DefaultUserID is used when no profile is active.
const DefaultUserID = "default"

type ActionKind string

const (
	ActionView    ActionKind = "view"
	ActionClick   ActionKind = "click"
	ActionCall    ActionKind = "call"
	ActionRoute   ActionKind = "route"
	ActionWebsite ActionKind = "website"
)

// ParseActionKind accepts the five known kinds, case-insensitively.
func ParseActionKind(s string) (ActionKind, bool) {
	switch a := ActionKind(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionView, ActionClick, ActionCall, ActionRoute, ActionWebsite:
		return a, true
	default:
		return "", false
	}
}

// IsEngaging is true for every kind except a passive view.
func (a ActionKind) IsEngaging() bool {
	switch a {
	case ActionClick, ActionCall, ActionRoute, ActionWebsite:
		return true
	default:
		return false
	}
}

// Interaction is one entry of the append-only interaction log.
type Interaction struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       string     `gorm:"type:varchar(64);not null;index" json:"user_id"`
	RestaurantID string     `gorm:"type:varchar(64);not null;index" json:"restaurant_id"`
	Cuisine      string     `gorm:"type:text;not null" json:"cuisine"`
	Action       ActionKind `gorm:"type:varchar(16);not null" json:"action"`
	Timestamp    int64      `gorm:"not null" json:"timestamp"` // milliseconds since epoch
}

func (Interaction) TableName() string {
	return "interactions"
}

// ClickedRestaurant is one slot of the per-user ring of recently
// interacted restaurants. Seq grows on every registration, so the highest
// Seq is the most recent.
type ClickedRestaurant struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	UserID       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_clicked_user_restaurant" json:"user_id"`
	RestaurantID uint   `gorm:"not null;uniqueIndex:idx_clicked_user_restaurant" json:"restaurant_id"`
	Cuisines     string `gorm:"type:text" json:"cuisines"`
	Type         string `gorm:"type:varchar(64)" json:"type"`
	Seq          int64  `gorm:"not null;index" json:"seq"`
}

func (ClickedRestaurant) TableName() string {
	return "clicked_restaurants"
}

// Tokens returns the cuisine tags followed by the type, all lowercase.
func (c ClickedRestaurant) Tokens() []string {
	tokens := SplitTags(c.Cuisines)
	if t := strings.ToLower(strings.TrimSpace(c.Type)); t != "" {
		tokens = append(tokens, t)
	}
	return tokens
}
