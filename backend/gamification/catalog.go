package gamification

import (
	"fmt"
	"math"

	"studybuddy/backend/models"
)

// Definition is one immutable catalog entry. The unlock condition is data,
// not code: the achievement unlocks once the category's counter reaches
// Target.
type Definition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Level       int      `json:"level"`
	Target      int      `json:"target"`
	XPReward    int      `json:"xp_reward"`
}

const (
	// LevelCount is the number of achievement levels.
	LevelCount = 5
	// PerLevel is the number of achievements in each level.
	PerLevel = 15
)

// catalog is the canonical achievement list. IDs are stable because user
// records reference them; never reuse or rename an ID.
var catalog = []Definition{
	// Level 1
	{ID: "doc_1", Title: "First Steps", Description: "Upload your first document", Category: CategoryDocument, Level: 1, Target: 1, XPReward: 25},
	{ID: "doc_5", Title: "Paper Trail", Description: "Upload 5 documents", Category: CategoryDocument, Level: 1, Target: 5, XPReward: 50},
	{ID: "quiz_1", Title: "Quiz Rookie", Description: "Generate your first quiz", Category: CategoryQuiz, Level: 1, Target: 1, XPReward: 25},
	{ID: "quiz_5", Title: "Question Time", Description: "Generate 5 quizzes", Category: CategoryQuiz, Level: 1, Target: 5, XPReward: 50},
	{ID: "flashcard_10", Title: "Card Collector", Description: "Create 10 flashcards", Category: CategoryFlashcard, Level: 1, Target: 10, XPReward: 25},
	{ID: "flashcard_25", Title: "Deck Builder", Description: "Create 25 flashcards", Category: CategoryFlashcard, Level: 1, Target: 25, XPReward: 50},
	{ID: "streak_2", Title: "Back for More", Description: "Study 2 days in a row", Category: CategoryStreak, Level: 1, Target: 2, XPReward: 30},
	{ID: "streak_3", Title: "Three in a Row", Description: "Study 3 days in a row", Category: CategoryStreak, Level: 1, Target: 3, XPReward: 50},
	{ID: "level_2", Title: "Moving Up", Description: "Reach level 2", Category: CategoryLevel, Level: 1, Target: 2, XPReward: 40},
	{ID: "level_3", Title: "Getting Serious", Description: "Reach level 3", Category: CategoryLevel, Level: 1, Target: 3, XPReward: 60},
	{ID: "mastery_10", Title: "Well Rounded", Description: "Complete 10 study activities", Category: CategoryMastery, Level: 1, Target: 10, XPReward: 50},
	{ID: "mastery_20", Title: "Study Mix", Description: "Complete 20 study activities", Category: CategoryMastery, Level: 1, Target: 20, XPReward: 75},
	{ID: "consistency_4", Title: "Creature of Habit", Description: "Keep a 4-day study streak", Category: CategoryConsistency, Level: 1, Target: 4, XPReward: 60},
	{ID: "speed_15", Title: "Quick Start", Description: "Complete 15 study activities", Category: CategorySpeed, Level: 1, Target: 15, XPReward: 60},
	{ID: "accuracy_25", Title: "Sharp Eye", Description: "Complete 25 study activities", Category: CategoryAccuracy, Level: 1, Target: 25, XPReward: 100},

	// Level 2
	{ID: "doc_10", Title: "Document Stack", Description: "Upload 10 documents", Category: CategoryDocument, Level: 2, Target: 10, XPReward: 100},
	{ID: "doc_20", Title: "Growing Library", Description: "Upload 20 documents", Category: CategoryDocument, Level: 2, Target: 20, XPReward: 150},
	{ID: "quiz_10", Title: "Quiz Regular", Description: "Generate 10 quizzes", Category: CategoryQuiz, Level: 2, Target: 10, XPReward: 100},
	{ID: "quiz_20", Title: "Quiz Enthusiast", Description: "Generate 20 quizzes", Category: CategoryQuiz, Level: 2, Target: 20, XPReward: 150},
	{ID: "flashcard_50", Title: "Half Century", Description: "Create 50 flashcards", Category: CategoryFlashcard, Level: 2, Target: 50, XPReward: 100},
	{ID: "flashcard_100", Title: "Card Shark", Description: "Create 100 flashcards", Category: CategoryFlashcard, Level: 2, Target: 100, XPReward: 150},
	{ID: "streak_5", Title: "Work Week", Description: "Study 5 days in a row", Category: CategoryStreak, Level: 2, Target: 5, XPReward: 125},
	{ID: "streak_7", Title: "One Full Week", Description: "Study 7 days in a row", Category: CategoryStreak, Level: 2, Target: 7, XPReward: 175},
	{ID: "level_5", Title: "Climbing Higher", Description: "Reach level 5", Category: CategoryLevel, Level: 2, Target: 5, XPReward: 150},
	{ID: "level_7", Title: "Seasoned Learner", Description: "Reach level 7", Category: CategoryLevel, Level: 2, Target: 7, XPReward: 200},
	{ID: "mastery_40", Title: "Broad Knowledge", Description: "Complete 40 study activities", Category: CategoryMastery, Level: 2, Target: 40, XPReward: 150},
	{ID: "mastery_60", Title: "Deep Diver", Description: "Complete 60 study activities", Category: CategoryMastery, Level: 2, Target: 60, XPReward: 200},
	{ID: "consistency_8", Title: "Routine Builder", Description: "Keep an 8-day study streak", Category: CategoryConsistency, Level: 2, Target: 8, XPReward: 175},
	{ID: "speed_50", Title: "Fast Learner", Description: "Complete 50 study activities", Category: CategorySpeed, Level: 2, Target: 50, XPReward: 175},
	{ID: "accuracy_75", Title: "Fine Tuned", Description: "Complete 75 study activities", Category: CategoryAccuracy, Level: 2, Target: 75, XPReward: 250},

	// Level 3
	{ID: "doc_35", Title: "Archive Keeper", Description: "Upload 35 documents", Category: CategoryDocument, Level: 3, Target: 35, XPReward: 250},
	{ID: "doc_50", Title: "Document Curator", Description: "Upload 50 documents", Category: CategoryDocument, Level: 3, Target: 50, XPReward: 350},
	{ID: "quiz_35", Title: "Quiz Veteran", Description: "Generate 35 quizzes", Category: CategoryQuiz, Level: 3, Target: 35, XPReward: 250},
	{ID: "quiz_50", Title: "Quiz Machine", Description: "Generate 50 quizzes", Category: CategoryQuiz, Level: 3, Target: 50, XPReward: 350},
	{ID: "flashcard_200", Title: "Card Stacker", Description: "Create 200 flashcards", Category: CategoryFlashcard, Level: 3, Target: 200, XPReward: 250},
	{ID: "flashcard_300", Title: "Full Deck", Description: "Create 300 flashcards", Category: CategoryFlashcard, Level: 3, Target: 300, XPReward: 350},
	{ID: "streak_10", Title: "Double Digits", Description: "Study 10 days in a row", Category: CategoryStreak, Level: 3, Target: 10, XPReward: 300},
	{ID: "streak_14", Title: "Fortnight Focus", Description: "Study 14 days in a row", Category: CategoryStreak, Level: 3, Target: 14, XPReward: 400},
	{ID: "level_10", Title: "Double Figures", Description: "Reach level 10", Category: CategoryLevel, Level: 3, Target: 10, XPReward: 350},
	{ID: "level_12", Title: "Rising Star", Description: "Reach level 12", Category: CategoryLevel, Level: 3, Target: 12, XPReward: 400},
	{ID: "mastery_100", Title: "Century Scholar", Description: "Complete 100 study activities", Category: CategoryMastery, Level: 3, Target: 100, XPReward: 300},
	{ID: "mastery_150", Title: "Knowledge Bank", Description: "Complete 150 study activities", Category: CategoryMastery, Level: 3, Target: 150, XPReward: 400},
	{ID: "consistency_16", Title: "Steady Hand", Description: "Keep a 16-day study streak", Category: CategoryConsistency, Level: 3, Target: 16, XPReward: 400},
	{ID: "speed_120", Title: "Rapid Pace", Description: "Complete 120 study activities", Category: CategorySpeed, Level: 3, Target: 120, XPReward: 400},
	{ID: "accuracy_175", Title: "Precision Work", Description: "Complete 175 study activities", Category: CategoryAccuracy, Level: 3, Target: 175, XPReward: 500},

	// Level 4
	{ID: "doc_75", Title: "Serious Collection", Description: "Upload 75 documents", Category: CategoryDocument, Level: 4, Target: 75, XPReward: 500},
	{ID: "doc_100", Title: "Document Hoard", Description: "Upload 100 documents", Category: CategoryDocument, Level: 4, Target: 100, XPReward: 700},
	{ID: "quiz_75", Title: "Quiz Addict", Description: "Generate 75 quizzes", Category: CategoryQuiz, Level: 4, Target: 75, XPReward: 500},
	{ID: "quiz_100", Title: "Hundred Club", Description: "Generate 100 quizzes", Category: CategoryQuiz, Level: 4, Target: 100, XPReward: 700},
	{ID: "flashcard_500", Title: "Card Vault", Description: "Create 500 flashcards", Category: CategoryFlashcard, Level: 4, Target: 500, XPReward: 500},
	{ID: "flashcard_750", Title: "Card Tycoon", Description: "Create 750 flashcards", Category: CategoryFlashcard, Level: 4, Target: 750, XPReward: 700},
	{ID: "streak_21", Title: "Three Weeks Strong", Description: "Study 21 days in a row", Category: CategoryStreak, Level: 4, Target: 21, XPReward: 600},
	{ID: "streak_30", Title: "Monthly Devotion", Description: "Study 30 days in a row", Category: CategoryStreak, Level: 4, Target: 30, XPReward: 800},
	{ID: "level_15", Title: "High Achiever", Description: "Reach level 15", Category: CategoryLevel, Level: 4, Target: 15, XPReward: 700},
	{ID: "level_20", Title: "Elite Learner", Description: "Reach level 20", Category: CategoryLevel, Level: 4, Target: 20, XPReward: 900},
	{ID: "mastery_250", Title: "Master in Training", Description: "Complete 250 study activities", Category: CategoryMastery, Level: 4, Target: 250, XPReward: 600},
	{ID: "mastery_350", Title: "Polymath", Description: "Complete 350 study activities", Category: CategoryMastery, Level: 4, Target: 350, XPReward: 800},
	{ID: "consistency_35", Title: "Iron Discipline", Description: "Keep a 35-day study streak", Category: CategoryConsistency, Level: 4, Target: 35, XPReward: 800},
	{ID: "speed_300", Title: "Full Throttle", Description: "Complete 300 study activities", Category: CategorySpeed, Level: 4, Target: 300, XPReward: 800},
	{ID: "accuracy_400", Title: "Laser Focus", Description: "Complete 400 study activities", Category: CategoryAccuracy, Level: 4, Target: 400, XPReward: 1000},

	// Level 5
	{ID: "doc_150", Title: "Grand Archive", Description: "Upload 150 documents", Category: CategoryDocument, Level: 5, Target: 150, XPReward: 1000},
	{ID: "doc_250", Title: "Library of One", Description: "Upload 250 documents", Category: CategoryDocument, Level: 5, Target: 250, XPReward: 1500},
	{ID: "quiz_150", Title: "Quiz Legend", Description: "Generate 150 quizzes", Category: CategoryQuiz, Level: 5, Target: 150, XPReward: 1000},
	{ID: "quiz_250", Title: "Quizmaster General", Description: "Generate 250 quizzes", Category: CategoryQuiz, Level: 5, Target: 250, XPReward: 1500},
	{ID: "flashcard_1000", Title: "Thousand Cards", Description: "Create 1000 flashcards", Category: CategoryFlashcard, Level: 5, Target: 1000, XPReward: 1000},
	{ID: "flashcard_1500", Title: "Card Empire", Description: "Create 1500 flashcards", Category: CategoryFlashcard, Level: 5, Target: 1500, XPReward: 1500},
	{ID: "streak_50", Title: "Fifty Day March", Description: "Study 50 days in a row", Category: CategoryStreak, Level: 5, Target: 50, XPReward: 1250},
	{ID: "streak_75", Title: "Unbreakable", Description: "Study 75 days in a row", Category: CategoryStreak, Level: 5, Target: 75, XPReward: 2000},
	{ID: "level_25", Title: "Summit Seeker", Description: "Reach level 25", Category: CategoryLevel, Level: 5, Target: 25, XPReward: 1500},
	{ID: "level_30", Title: "Peak Performance", Description: "Reach level 30", Category: CategoryLevel, Level: 5, Target: 30, XPReward: 2000},
	{ID: "mastery_500", Title: "True Scholar", Description: "Complete 500 study activities", Category: CategoryMastery, Level: 5, Target: 500, XPReward: 1250},
	{ID: "mastery_750", Title: "Living Encyclopedia", Description: "Complete 750 study activities", Category: CategoryMastery, Level: 5, Target: 750, XPReward: 1750},
	{ID: "consistency_90", Title: "Quarter of Devotion", Description: "Keep a 90-day study streak", Category: CategoryConsistency, Level: 5, Target: 90, XPReward: 2000},
	{ID: "speed_600", Title: "Lightning Scholar", Description: "Complete 600 study activities", Category: CategorySpeed, Level: 5, Target: 600, XPReward: 1750},
	{ID: "accuracy_850", Title: "Perfectionist", Description: "Complete 850 study activities", Category: CategoryAccuracy, Level: 5, Target: 850, XPReward: 2500},
}

var catalogIndex = buildCatalogIndex()

func buildCatalogIndex() map[string]*Definition {
	idx := make(map[string]*Definition, len(catalog))
	for i := range catalog {
		d := &catalog[i]
		if _, dup := idx[d.ID]; dup {
			panic(fmt.Sprintf("gamification: duplicate achievement id %q", d.ID))
		}
		idx[d.ID] = d
	}
	return idx
}

// Catalog returns the full definition list in canonical order.
func Catalog() []Definition {
	return catalog
}

// DefinitionsForLevel returns the definitions of one level in catalog order.
func DefinitionsForLevel(level int) []Definition {
	defs := make([]Definition, 0, PerLevel)
	for _, d := range catalog {
		if d.Level == level {
			defs = append(defs, d)
		}
	}
	return defs
}

// Lookup finds a definition by id.
func Lookup(id string) (*Definition, bool) {
	d, ok := catalogIndex[id]
	return d, ok
}

// Unlocks reports whether the user's counters satisfy the definition.
func Unlocks(d *Definition, u *models.User) bool {
	return CounterValue(d.Category, u) >= d.Target
}

// ProgressPercent computes how far the user is toward the target, capped at
// 100.
func ProgressPercent(d *Definition, u *models.User) int {
	if d.Target <= 0 {
		return 0
	}
	v := CounterValue(d.Category, u)
	if v <= 0 {
		return 0
	}
	if v >= d.Target {
		return 100
	}
	return int(math.Round(100 * float64(v) / float64(d.Target)))
}
