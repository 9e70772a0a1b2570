package gamification_test

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/backend/gamification"
	"studybuddy/backend/models"
	"studybuddy/backend/storage"
)

func newTestService() (*gamification.Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	logger := log.New(io.Discard, "", 0)
	return gamification.NewService(store, logger), store
}

func seedUser(store *storage.MemoryStore, user models.User) models.User {
	if user.CurrentLevel == 0 {
		user.CurrentLevel = 1
	}
	if user.NextLevelXP == 0 {
		user.NextLevelXP = gamification.BaseNextLevelXP
	}
	return store.AddUser(user)
}

func unlockedIDs(result *gamification.Result) []string {
	ids := make([]string, 0, len(result.Unlocked))
	for _, u := range result.Unlocked {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestOnActivityUserNotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.OnActivity(42, gamification.Event{Type: gamification.EventDocumentUpload})

	assert.ErrorIs(t, err, gamification.ErrUserNotFound)
}

func TestOnActivityRejectsUnknownEvent(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{Username: "ana", Email: "ana@example.com"})

	_, err := service.OnActivity(user.ID, gamification.Event{Type: "telepathy"})

	assert.ErrorIs(t, err, gamification.ErrUnknownEvent)
}

func TestOnActivityRejectsNegativeCount(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{Username: "ana", Email: "ana@example.com"})

	_, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventFlashcardBatch, Count: -3})

	assert.ErrorIs(t, err, gamification.ErrInvalidCounterState)
}

func TestFirstActivityMaterializesLevelOne(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{Username: "ana", Email: "ana@example.com"})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, gamification.StreakStarted, result.StreakTransition)
	assert.Equal(t, []string{"doc_1"}, unlockedIDs(result))

	levelOne, err := store.FindAchievements(user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, levelOne, gamification.PerLevel)

	levelTwo, err := store.FindAchievements(user.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, levelTwo)
}

func TestEndToEndDocumentUnlockAwardsXP(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:       "ben",
		Email:          "ben@example.com",
		TotalDocuments: 4,
	})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)

	// The fifth upload satisfies both doc_1 (25 XP) and doc_5 (50 XP) at
	// first materialization.
	assert.Equal(t, []string{"doc_1", "doc_5"}, unlockedIDs(result))
	assert.False(t, result.LeveledUp)
	assert.Equal(t, 1, result.Level.CurrentLevel)
	assert.Equal(t, 75, result.Level.TotalXP)
	assert.Equal(t, 75, result.Level.CurrentXP)
	assert.Equal(t, 500, result.Level.NextLevelXP)

	saved, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.TotalDocuments)
	assert.Equal(t, 75, saved.TotalXP)

	entries := store.Activities(user.ID)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActivityAchievementUnlocked, entries[0].Type)
	assert.Equal(t, "First Steps", entries[0].Title)
	assert.Equal(t, "Paper Trail", entries[1].Title)
}

func TestUnlockXPCanCauseLevelUp(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:       "cleo",
		Email:          "cleo@example.com",
		TotalDocuments: 4,
		TotalXP:        450,
		CurrentXP:      450,
	})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)

	// doc_1 (25) brings the ledger to 475, doc_5 (50) crosses 500 for a
	// level-up; level_2 then unlocks in the same pass for another 40.
	assert.Equal(t, []string{"doc_1", "doc_5", "level_2"}, unlockedIDs(result))
	assert.True(t, result.LeveledUp)
	assert.Equal(t, 2, result.Level.CurrentLevel)
	assert.Equal(t, 65, result.Level.CurrentXP)
	assert.Equal(t, 750, result.Level.NextLevelXP)
	assert.Equal(t, 565, result.Level.TotalXP)

	var types []string
	for _, entry := range store.Activities(user.ID) {
		types = append(types, entry.Type)
	}
	assert.Equal(t, []string{
		models.ActivityAchievementUnlocked,
		models.ActivityAchievementUnlocked,
		models.ActivityAchievementUnlocked,
		models.ActivityLevelUp,
	}, types)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:       "dax",
		Email:          "dax@example.com",
		TotalDocuments: 4,
	})

	first, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)
	require.NotEmpty(t, first.Unlocked)
	feedLen := len(store.Activities(user.ID))

	second, err := service.Check(user.ID)
	require.NoError(t, err)

	assert.Empty(t, second.Unlocked)
	assert.False(t, second.LeveledUp)
	assert.Equal(t, first.Level, second.Level)
	assert.Len(t, store.Activities(user.ID), feedLen)
}

func TestLevelTwoGatedOnFullLevelOneClear(t *testing.T) {
	service, store := newTestService()
	now := time.Now().UTC()
	user := seedUser(store, models.User{
		Username:        "eli",
		Email:           "eli@example.com",
		TotalDocuments:  40,
		TotalQuizzes:    40,
		TotalFlashcards: 30,
		StudyStreak:     4,
		LastStudyDate:   &now,
		CurrentLevel:    3,
		NextLevelXP:     1125,
	})

	result, err := service.Check(user.ID)
	require.NoError(t, err)

	levelOne, err := store.FindAchievements(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, levelOne, gamification.PerLevel)
	for _, rec := range levelOne {
		assert.True(t, rec.Unlocked, "level 1 record %q", rec.AchievementID)
		assert.Equal(t, models.StatusUnlocked, rec.Status)
		assert.NotNil(t, rec.UnlockedAt)
	}

	// Clearing level 1 opens level 2 in the same call, snapshot included.
	levelTwo, err := store.FindAchievements(user.ID, 2)
	require.NoError(t, err)
	require.Len(t, levelTwo, gamification.PerLevel)

	unlockedTwo := 0
	for _, rec := range levelTwo {
		if rec.Unlocked {
			unlockedTwo++
		}
	}
	assert.Greater(t, unlockedTwo, 0)
	assert.Less(t, unlockedTwo, gamification.PerLevel)

	// Level 3 stays closed until level 2 is fully cleared.
	levelThree, err := store.FindAchievements(user.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, levelThree)

	// Both levels' unlocks are reported from the single call.
	assert.GreaterOrEqual(t, len(result.Unlocked), gamification.PerLevel)

	statuses, err := service.LevelStatuses(user.ID)
	require.NoError(t, err)
	require.Len(t, statuses, gamification.LevelCount)
	assert.True(t, statuses[0].Complete)
	assert.True(t, statuses[1].Materialized)
	assert.False(t, statuses[1].Complete)
	assert.False(t, statuses[2].Materialized)
}

func TestMaterializationSnapshotUnlocksImmediately(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:     "fay",
		Email:        "fay@example.com",
		TotalQuizzes: 100,
	})

	views, err := service.ListAchievements(user.ID)
	require.NoError(t, err)

	var quizRookie *gamification.AchievementView
	for i := range views {
		if views[i].ID == "quiz_1" {
			quizRookie = &views[i]
			break
		}
	}
	require.NotNil(t, quizRookie)
	assert.True(t, quizRookie.Unlocked)
	assert.Equal(t, models.StatusUnlocked, quizRookie.Status)
	assert.Equal(t, 100, quizRookie.Progress)
	assert.NotNil(t, quizRookie.UnlockedAt)
}

func TestUnlockedNeverReverts(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:       "gus",
		Email:          "gus@example.com",
		TotalDocuments: 5,
	})

	_, err := service.Check(user.ID)
	require.NoError(t, err)

	// Simulate counter loss; the unlock must survive.
	stored, err := store.GetUser(user.ID)
	require.NoError(t, err)
	stored.TotalDocuments = 0
	require.NoError(t, store.SaveUser(stored))

	views, err := service.ListAchievements(user.ID)
	require.NoError(t, err)
	for _, v := range views {
		if v.ID == "doc_1" || v.ID == "doc_5" {
			assert.True(t, v.Unlocked, v.ID)
			assert.Equal(t, 100, v.Progress, v.ID)
		}
	}
}

func TestStreakThroughActivity(t *testing.T) {
	service, store := newTestService()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	user := seedUser(store, models.User{
		Username:      "hana",
		Email:         "hana@example.com",
		StudyStreak:   3,
		LastStudyDate: &yesterday,
	})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventQuizSubmitted})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Streak)
	assert.Equal(t, gamification.StreakIncremented, result.StreakTransition)

	again, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventQuizSubmitted})
	require.NoError(t, err)
	assert.Equal(t, 4, again.Streak)
	assert.Equal(t, gamification.StreakSameDay, again.StreakTransition)
}

func TestFlashcardBatchCount(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{Username: "ivo", Email: "ivo@example.com"})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventFlashcardBatch, Count: 12})
	require.NoError(t, err)

	assert.Contains(t, unlockedIDs(result), "flashcard_10")

	saved, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, saved.TotalFlashcards)
}

func TestUnknownRecordIsSkipped(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{Username: "jill", Email: "jill@example.com"})

	_, err := service.Check(user.ID)
	require.NoError(t, err)

	ghost := []models.Achievement{{
		UserID:        user.ID,
		AchievementID: "retired_achievement",
		Level:         1,
		Target:        10,
		Status:        models.StatusLocked,
	}}
	require.NoError(t, store.InsertAchievements(ghost))

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)
	assert.Equal(t, []string{"doc_1"}, unlockedIDs(result))
}

func TestExpireStreaks(t *testing.T) {
	service, store := newTestService()
	fiveDaysAgo := time.Now().UTC().AddDate(0, 0, -5)
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	away := seedUser(store, models.User{Username: "kim", Email: "kim@example.com", StudyStreak: 9, LastStudyDate: &fiveDaysAgo})
	active := seedUser(store, models.User{Username: "lou", Email: "lou@example.com", StudyStreak: 2, LastStudyDate: &yesterday})

	reset, err := service.ExpireStreaks(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, reset)

	awayUser, err := store.GetUser(away.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, awayUser.StudyStreak)

	activeUser, err := store.GetUser(active.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, activeUser.StudyStreak)
}

func TestNegativeCountersAreClamped(t *testing.T) {
	service, store := newTestService()
	user := seedUser(store, models.User{
		Username:       "mia",
		Email:          "mia@example.com",
		TotalDocuments: -7,
		StudyStreak:    -2,
	})

	result, err := service.OnActivity(user.ID, gamification.Event{Type: gamification.EventDocumentUpload})
	require.NoError(t, err)

	saved, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.TotalDocuments)
	assert.Equal(t, 1, saved.StudyStreak)
	assert.Equal(t, []string{"doc_1"}, unlockedIDs(result))
}
