package storage

import (
	"fmt"
	"sync"
	"time"

	"studybuddy/backend/gamification"
	"studybuddy/backend/models"
)

// MemoryStore is an in-memory Store for tests and local development. It
// mirrors GormStore semantics: records keep insertion order, ids are
// assigned on insert.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[uint]models.User
	achievements []models.Achievement
	activities   []models.Activity
	nextUserID   uint
	nextRecordID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]models.User),
		nextUserID:   1,
		nextRecordID: 1,
	}
}

// AddUser seeds a user, assigning an id if the record has none.
func (s *MemoryStore) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == 0 {
		user.ID = s.nextUserID
		s.nextUserID++
	} else if user.ID >= s.nextUserID {
		s.nextUserID = user.ID + 1
	}
	s.users[user.ID] = user
	return user
}

func (s *MemoryStore) GetUser(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", gamification.ErrUserNotFound, id)
	}
	return &user, nil
}

func (s *MemoryStore) SaveUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("%w: id %d", gamification.ErrUserNotFound, user.ID)
	}
	s.users[user.ID] = *user
	return nil
}

func (s *MemoryStore) FindAchievements(userID uint, level int) ([]models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Achievement
	for _, rec := range s.achievements {
		if rec.UserID != userID {
			continue
		}
		if level > 0 && rec.Level != level {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *MemoryStore) InsertAchievements(records []models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range records {
		records[i].ID = s.nextRecordID
		s.nextRecordID++
		records[i].CreatedAt = time.Now()
		s.achievements = append(s.achievements, records[i])
	}
	return nil
}

func (s *MemoryStore) SaveAchievement(record *models.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.achievements {
		if s.achievements[i].ID == record.ID {
			s.achievements[i] = *record
			return nil
		}
	}
	return fmt.Errorf("achievement record %d not found", record.ID)
}

func (s *MemoryStore) AppendActivity(entry *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uint(len(s.activities) + 1)
	entry.CreatedAt = time.Now()
	s.activities = append(s.activities, *entry)
	return nil
}

func (s *MemoryStore) RecentActivities(userID uint, limit int) ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Activity
	for i := len(s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if s.activities[i].UserID == userID {
			out = append(out, s.activities[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) StaleStreakUsers(cutoff time.Time) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, user := range s.users {
		if user.StudyStreak > 0 && user.LastStudyDate != nil && user.LastStudyDate.Before(cutoff) {
			out = append(out, user)
		}
	}
	return out, nil
}

// Activities returns every feed entry for a user in append order. Test
// helper.
func (s *MemoryStore) Activities(userID uint) []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Activity
	for _, entry := range s.activities {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out
}
