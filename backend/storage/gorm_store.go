package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studybuddy/backend/gamification"
	"studybuddy/backend/models"
)

// GormStore is the production Store, backed by Postgres through GORM.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", gamification.ErrUserNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *GormStore) FindAchievements(userID uint, level int) ([]models.Achievement, error) {
	var records []models.Achievement
	query := s.DB.Where("user_id = ?", userID)
	if level > 0 {
		query = query.Where("level = ?", level)
	}
	// Insertion order equals catalog order within a level.
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormStore) InsertAchievements(records []models.Achievement) error {
	if len(records) == 0 {
		return nil
	}
	return s.DB.Create(&records).Error
}

func (s *GormStore) SaveAchievement(record *models.Achievement) error {
	return s.DB.Save(record).Error
}

func (s *GormStore) AppendActivity(entry *models.Activity) error {
	return s.DB.Create(entry).Error
}

func (s *GormStore) RecentActivities(userID uint, limit int) ([]models.Activity, error) {
	var entries []models.Activity
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *GormStore) StaleStreakUsers(cutoff time.Time) ([]models.User, error) {
	var users []models.User
	if err := s.DB.
		Where("study_streak > 0 AND last_study_date IS NOT NULL AND last_study_date < ?", cutoff).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
