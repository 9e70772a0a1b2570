package models

import "gorm.io/gorm"

// Activity types written by the progression engine
const (
	ActivityAchievementUnlocked = "achievement_unlocked"
	ActivityLevelUp             = "level_up"
)

// Activity is an append-only feed entry. The engine writes these as a
// side effect of unlocks and level-ups; it never reads them back.
type Activity struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Type        string `gorm:"size:32;not null" json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metadata    string `gorm:"type:text" json:"metadata"`
}
