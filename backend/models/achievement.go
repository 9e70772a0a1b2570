package models

import (
	"time"

	"gorm.io/gorm"
)

// Achievement status values
const (
	StatusLocked     = "locked"
	StatusInProgress = "in-progress"
	StatusUnlocked   = "unlocked"
)

// Achievement is the per-user projection of a catalog definition.
// One row per (user, achievement id); created lazily when the
// achievement's level is materialized for the user.
type Achievement struct {
	gorm.Model
	UserID        uint       `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID string     `gorm:"uniqueIndex:idx_user_achievement;size:64;not null" json:"achievement_id"`
	Level         int        `gorm:"not null" json:"level"`
	LevelLocked   bool       `gorm:"default:false" json:"level_locked"`
	Status        string     `gorm:"default:locked" json:"status"`
	Progress      int        `gorm:"default:0" json:"progress"`
	Target        int        `gorm:"not null" json:"target"`
	Unlocked      bool       `gorm:"default:false" json:"unlocked"`
	UnlockedAt    *time.Time `json:"unlocked_at"`
}
