package model

import (
	"time"
)

type FavoriteStatus string

const (
	FavoriteToTry     FavoriteStatus = "to_try"
	FavoriteValidated FavoriteStatus = "validated"
	FavoriteAbsent    FavoriteStatus = "absent"
)

// Favorite is a saved restaurant for one user. The (restaurant, user) pair
// is unique; rows are hard-deleted so a later re-add starts fresh.
type Favorite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;uniqueIndex:idx_favorite_restaurant_user" json:"restaurant_id"`
	UserID       string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_favorite_restaurant_user;index" json:"user_id"`
	Validated    bool      `gorm:"not null;default:false" json:"validated"`
	CreatedAt    time.Time `json:"created_at"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f Favorite) Status() FavoriteStatus {
	if f.Validated {
		return FavoriteValidated
	}
	return FavoriteToTry
}
