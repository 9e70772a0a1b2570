package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`

	// Cumulative activity counters
	TotalDocuments  int `gorm:"default:0" json:"total_documents"`
	TotalFlashcards int `gorm:"default:0" json:"total_flashcards"`
	TotalQuizzes    int `gorm:"default:0" json:"total_quizzes"`

	StudyStreak   int        `gorm:"default:0" json:"study_streak"`
	LastStudyDate *time.Time `json:"last_study_date"`

	CurrentLevel int `gorm:"default:1" json:"current_level"`
	TotalXP      int `gorm:"default:0" json:"total_xp"`
	CurrentXP    int `gorm:"default:0" json:"current_xp"`
	NextLevelXP  int `gorm:"default:500" json:"next_level_xp"`
}
