package model

import "time"

const (
	XPPerLevel = 100
	MaxLevel   = 10
)

// Profile is a local user identity. Its ID is the user id used by
// favorites, interactions and preferences.
type Profile struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Avatar    string    `gorm:"type:varchar(50);default:default" json:"avatar"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	XP        int       `gorm:"not null;default:0" json:"xp"`
	CreatedAt time.Time `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// LevelForXP is 1 + one level per 100 XP, capped at MaxLevel.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	level := xp/XPPerLevel + 1
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelProgress is the XP earned inside the current level (0-99).
func (p Profile) LevelProgress() int {
	if p.XP < 0 {
		return 0
	}
	return p.XP % XPPerLevel
}
