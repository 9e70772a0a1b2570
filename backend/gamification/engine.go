package gamification

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"studybuddy/backend/models"
)

// Store is the account & content store the engine computes against. All
// durable state lives behind it; the engine performs no I/O of its own.
// Callers are expected to serialize concurrent calls for the same user.
type Store interface {
	GetUser(id uint) (*models.User, error)
	SaveUser(user *models.User) error
	// FindAchievements returns the user's records, optionally filtered to a
	// single achievement level (0 means all levels).
	FindAchievements(userID uint, level int) ([]models.Achievement, error)
	InsertAchievements(records []models.Achievement) error
	SaveAchievement(record *models.Achievement) error
	AppendActivity(entry *models.Activity) error
	// RecentActivities returns the newest feed entries for a user, newest
	// first. Only the API layer reads these; the engine just appends.
	RecentActivities(userID uint, limit int) ([]models.Activity, error)
	// StaleStreakUsers returns users with a positive streak whose last study
	// date is before cutoff.
	StaleStreakUsers(cutoff time.Time) ([]models.User, error)
}

// EventType names the external actions that feed the progression engine.
type EventType string

const (
	EventDocumentUpload EventType = "document_upload"
	EventFlashcardBatch EventType = "flashcard_batch"
	EventQuizGenerated  EventType = "quiz_generated"
	EventQuizSubmitted  EventType = "quiz_submitted"
	EventCheck          EventType = "achievement_check"
)

// Event is one qualifying activity. Count is the batch size (flashcards are
// generated in batches); zero means 1.
type Event struct {
	Type  EventType `json:"type"`
	Count int       `json:"count"`
}

func (t EventType) streakQualifying() bool {
	switch t {
	case EventDocumentUpload, EventFlashcardBatch, EventQuizGenerated, EventQuizSubmitted:
		return true
	}
	return false
}

// Unlock pairs a freshly unlocked record with its catalog definition.
type Unlock struct {
	Definition
	UnlockedAt time.Time `json:"unlocked_at"`
}

// Result is everything one OnActivity call changed, for the caller to
// persist and report.
type Result struct {
	Unlocked         []Unlock         `json:"unlocked"`
	Level            LevelState       `json:"level"`
	LeveledUp        bool             `json:"leveled_up"`
	Streak           int              `json:"streak"`
	StreakTransition StreakTransition `json:"streak_transition,omitempty"`
}

// Service runs the progression rules against a Store.
type Service struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
}

func NewService(store Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger, now: time.Now}
}

// OnActivity applies one activity event: counters, streak, achievement
// recompute, XP and level-level materialization, in that order. Replaying
// the same call against the resulting state is a no-op for unlocks and XP.
func (s *Service) OnActivity(userID uint, event Event) (*Result, error) {
	if event.Count < 0 {
		return nil, fmt.Errorf("%w: negative activity count %d", ErrInvalidCounterState, event.Count)
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	s.clampCounters(user)

	count := event.Count
	if count == 0 {
		count = 1
	}
	switch event.Type {
	case EventDocumentUpload:
		user.TotalDocuments += count
	case EventFlashcardBatch:
		user.TotalFlashcards += count
	case EventQuizGenerated:
		user.TotalQuizzes += count
	case EventQuizSubmitted, EventCheck:
		// no counter of their own
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}

	res := &Result{Unlocked: []Unlock{}}
	if event.Type.streakQualifying() {
		streak, last, transition := UpdateStreak(user.LastStudyDate, s.now(), user.StudyStreak)
		user.StudyStreak = streak
		user.LastStudyDate = &last
		res.StreakTransition = transition
	}

	if err := s.evaluate(user, res); err != nil {
		return nil, err
	}

	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}

	res.Streak = user.StudyStreak
	res.Level = LevelStateOf(user)
	return res, nil
}

// Check re-evaluates achievements without recording any activity. Used by
// the explicit recheck endpoint and by the reporting surface on first
// access.
func (s *Service) Check(userID uint) (*Result, error) {
	return s.OnActivity(userID, Event{Type: EventCheck})
}

// evaluate walks the materialized levels in ascending order, unlocking what
// the counters now satisfy and opening the next level whenever one is
// cleared. Level 1 is materialized on first contact.
func (s *Service) evaluate(user *models.User, res *Result) error {
	records, err := s.store.FindAchievements(user.ID, 0)
	if err != nil {
		return err
	}

	byLevel := make(map[int][]*models.Achievement)
	for i := range records {
		rec := &records[i]
		byLevel[rec.Level] = append(byLevel[rec.Level], rec)
	}

	levelBefore := user.CurrentLevel

	if len(byLevel[1]) == 0 {
		created, unlocked, err := s.materializeLevel(user, 1)
		if err != nil {
			return err
		}
		byLevel[1] = created
		res.Unlocked = append(res.Unlocked, unlocked...)
	}

	for level := 1; level <= LevelCount; level++ {
		recs := byLevel[level]
		if len(recs) == 0 {
			break
		}

		unlocked, err := s.recomputeLevel(user, recs)
		if err != nil {
			return err
		}
		res.Unlocked = append(res.Unlocked, unlocked...)

		if level < LevelCount && levelCleared(recs) && len(byLevel[level+1]) == 0 {
			created, newly, err := s.materializeLevel(user, level+1)
			if err != nil {
				return err
			}
			byLevel[level+1] = created
			res.Unlocked = append(res.Unlocked, newly...)
		}
	}

	if user.CurrentLevel > levelBefore {
		res.LeveledUp = true
		if err := s.appendLevelUpActivity(user, levelBefore); err != nil {
			return err
		}
	}
	return nil
}

// materializeLevel creates the user's records for one achievement level from
// the current counter snapshot. A user who already qualifies gets the record
// in the unlocked state right away, with its XP awarded.
func (s *Service) materializeLevel(user *models.User, level int) ([]*models.Achievement, []Unlock, error) {
	now := s.now()
	defs := DefinitionsForLevel(level)
	records := make([]models.Achievement, 0, len(defs))
	for i := range defs {
		def := &defs[i]
		rec := models.Achievement{
			UserID:        user.ID,
			AchievementID: def.ID,
			Level:         def.Level,
			Target:        def.Target,
			Status:        models.StatusLocked,
			Progress:      ProgressPercent(def, user),
		}
		if Unlocks(def, user) {
			rec.Status = models.StatusUnlocked
			rec.Unlocked = true
			rec.Progress = 100
			rec.UnlockedAt = &now
		} else if rec.Progress > 0 {
			rec.Status = models.StatusInProgress
		}
		records = append(records, rec)
	}

	if err := s.store.InsertAchievements(records); err != nil {
		return nil, nil, err
	}

	out := make([]*models.Achievement, 0, len(records))
	var unlocked []Unlock
	for i := range records {
		rec := &records[i]
		out = append(out, rec)
		if !rec.Unlocked {
			continue
		}
		def, ok := Lookup(rec.AchievementID)
		if !ok {
			continue
		}
		if err := s.award(user, def); err != nil {
			return nil, nil, err
		}
		unlocked = append(unlocked, Unlock{Definition: *def, UnlockedAt: *rec.UnlockedAt})
	}
	return out, unlocked, nil
}

// recomputeLevel refreshes progress for every open record of one level and
// unlocks the ones whose condition now holds. Records are processed in
// catalog order so activity entries come out deterministically.
func (s *Service) recomputeLevel(user *models.User, recs []*models.Achievement) ([]Unlock, error) {
	byID := make(map[string]*models.Achievement, len(recs))
	for _, rec := range recs {
		byID[rec.AchievementID] = rec
	}

	var unlocked []Unlock
	seen := make(map[string]bool, len(recs))
	for _, def := range DefinitionsForLevel(recs[0].Level) {
		rec, ok := byID[def.ID]
		if !ok {
			continue
		}
		seen[def.ID] = true
		if rec.Unlocked || rec.LevelLocked {
			continue
		}

		progress := ProgressPercent(&def, user)
		changed := progress != rec.Progress
		rec.Progress = progress

		if Unlocks(&def, user) {
			now := s.now()
			rec.Unlocked = true
			rec.Status = models.StatusUnlocked
			rec.Progress = 100
			rec.UnlockedAt = &now
			if err := s.store.SaveAchievement(rec); err != nil {
				return nil, err
			}
			if err := s.award(user, &def); err != nil {
				return nil, err
			}
			unlocked = append(unlocked, Unlock{Definition: def, UnlockedAt: now})
			continue
		}

		if progress > 0 && rec.Status == models.StatusLocked {
			rec.Status = models.StatusInProgress
			changed = true
		}
		if changed {
			if err := s.store.SaveAchievement(rec); err != nil {
				return nil, err
			}
		}
	}

	// Records pointing at ids the catalog no longer knows are skipped, never
	// fatal.
	for _, rec := range recs {
		if !seen[rec.AchievementID] {
			if _, ok := Lookup(rec.AchievementID); !ok {
				s.logger.Printf("gamification: user %d has record for unknown achievement %q, skipping", user.ID, rec.AchievementID)
			}
		}
	}
	return unlocked, nil
}

// award feeds an unlock's XP into the leveling ledger and writes the feed
// entry. The unlock row is already persisted when this runs, so a replay
// after a failure here can never award the XP twice.
func (s *Service) award(user *models.User, def *Definition) error {
	SetLevelState(user, ApplyXP(LevelStateOf(user), def.XPReward))

	meta, _ := json.Marshal(map[string]interface{}{
		"achievement_id": def.ID,
		"category":       def.Category,
		"level":          def.Level,
		"xp_reward":      def.XPReward,
	})
	return s.store.AppendActivity(&models.Activity{
		UserID:      user.ID,
		Type:        models.ActivityAchievementUnlocked,
		Title:       def.Title,
		Description: def.Description,
		Metadata:    string(meta),
	})
}

func (s *Service) appendLevelUpActivity(user *models.User, from int) error {
	meta, _ := json.Marshal(map[string]interface{}{
		"from_level": from,
		"to_level":   user.CurrentLevel,
		"total_xp":   user.TotalXP,
	})
	return s.store.AppendActivity(&models.Activity{
		UserID:      user.ID,
		Type:        models.ActivityLevelUp,
		Title:       fmt.Sprintf("Reached level %d", user.CurrentLevel),
		Description: fmt.Sprintf("Advanced from level %d to level %d", from, user.CurrentLevel),
		Metadata:    string(meta),
	})
}

// levelCleared reports whether a full, fully unlocked record set exists for
// the level. A level counts as cleared only with all of its achievements
// unlocked; this includes level 5.
func levelCleared(recs []*models.Achievement) bool {
	unlocked := 0
	for _, rec := range recs {
		if _, ok := Lookup(rec.AchievementID); !ok {
			continue
		}
		if !rec.Unlocked {
			return false
		}
		unlocked++
	}
	return unlocked >= PerLevel
}

// clampCounters repairs negative counters in place rather than letting a
// corrupt row poison predicate evaluation.
func (s *Service) clampCounters(user *models.User) {
	fix := func(name string, v *int) {
		if *v < 0 {
			s.logger.Printf("gamification: user %d has negative %s (%d), clamping to 0", user.ID, name, *v)
			*v = 0
		}
	}
	fix("total_documents", &user.TotalDocuments)
	fix("total_flashcards", &user.TotalFlashcards)
	fix("total_quizzes", &user.TotalQuizzes)
	fix("study_streak", &user.StudyStreak)
	SetLevelState(user, normalizeLevelState(LevelStateOf(user)))
}

// ExpireStreaks is the daily maintenance sweep: any user who has been away
// for more than two days loses their streak, whether or not they ever come
// back to trigger the update path. Returns how many users were reset.
func (s *Service) ExpireStreaks(today time.Time) (int, error) {
	users, err := s.store.StaleStreakUsers(StreakExpiryCutoff(today))
	if err != nil {
		return 0, err
	}
	reset := 0
	for i := range users {
		user := &users[i]
		user.StudyStreak = 0
		if err := s.store.SaveUser(user); err != nil {
			return reset, err
		}
		reset++
	}
	return reset, nil
}
