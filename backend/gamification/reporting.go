package gamification

import (
	"time"

	"studybuddy/backend/models"
)

// AchievementView joins a user's record with its catalog definition for the
// API layer.
type AchievementView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Level       int        `json:"level"`
	Target      int        `json:"target"`
	XPReward    int        `json:"xp_reward"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
}

// LevelStatus summarizes one achievement level for a user.
type LevelStatus struct {
	Level         int  `json:"level"`
	Materialized  bool `json:"materialized"`
	UnlockedCount int  `json:"unlocked_count"`
	Total         int  `json:"total"`
	Complete      bool `json:"complete"`
}

// ListAchievements returns the user's achievement records joined with the
// catalog, in catalog order. First access materializes level 1 and refreshes
// progress, so the listing is always current.
func (s *Service) ListAchievements(userID uint) ([]AchievementView, error) {
	if _, err := s.Check(userID); err != nil {
		return nil, err
	}

	records, err := s.store.FindAchievements(userID, 0)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Achievement, len(records))
	for i := range records {
		byID[records[i].AchievementID] = &records[i]
	}

	views := make([]AchievementView, 0, len(records))
	for i := range catalog {
		def := &catalog[i]
		rec, ok := byID[def.ID]
		if !ok {
			continue
		}
		views = append(views, viewOf(def, rec))
	}
	return views, nil
}

// UnlockedAchievements returns only the unlocked subset, catalog order.
func (s *Service) UnlockedAchievements(userID uint) ([]AchievementView, error) {
	views, err := s.ListAchievements(userID)
	if err != nil {
		return nil, err
	}
	unlocked := make([]AchievementView, 0, len(views))
	for _, v := range views {
		if v.Unlocked {
			unlocked = append(unlocked, v)
		}
	}
	return unlocked, nil
}

// LevelStatuses reports per-level completion for all five achievement
// levels, materialized or not.
func (s *Service) LevelStatuses(userID uint) ([]LevelStatus, error) {
	if _, err := s.Check(userID); err != nil {
		return nil, err
	}

	records, err := s.store.FindAchievements(userID, 0)
	if err != nil {
		return nil, err
	}

	statuses := make([]LevelStatus, LevelCount)
	for i := range statuses {
		statuses[i] = LevelStatus{Level: i + 1, Total: PerLevel}
	}
	for i := range records {
		rec := &records[i]
		if rec.Level < 1 || rec.Level > LevelCount {
			continue
		}
		st := &statuses[rec.Level-1]
		st.Materialized = true
		if rec.Unlocked {
			st.UnlockedCount++
		}
	}
	for i := range statuses {
		st := &statuses[i]
		st.Complete = st.Materialized && st.UnlockedCount == st.Total
	}
	return statuses, nil
}

func viewOf(def *Definition, rec *models.Achievement) AchievementView {
	v := AchievementView{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Category:    def.Category,
		Level:       def.Level,
		Target:      def.Target,
		XPReward:    def.XPReward,
		Status:      rec.Status,
		Progress:    rec.Progress,
		Unlocked:    rec.Unlocked,
		UnlockedAt:  rec.UnlockedAt,
	}
	if v.Unlocked {
		v.Progress = 100
	}
	return v
}
