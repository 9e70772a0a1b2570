package gamification

import "studybuddy/backend/models"

// Category groups achievements by the counter their unlock condition reads.
type Category string

const (
	CategoryDocument    Category = "document"
	CategoryQuiz        Category = "quiz"
	CategoryFlashcard   Category = "flashcard"
	CategoryStreak      Category = "streak"
	CategoryLevel       Category = "level"
	CategoryMastery     Category = "mastery"
	CategoryConsistency Category = "consistency"
	CategorySpeed       Category = "speed"
	CategoryAccuracy    Category = "accuracy"
)

// totalActivity is the composite counter used by the mastery, speed and
// accuracy categories: everything the user has produced so far.
func totalActivity(u *models.User) int {
	return u.TotalDocuments + u.TotalQuizzes + u.TotalFlashcards
}

// counterFuncs maps every category to the counter its targets are measured
// against. Keep this table exhaustive over the Category constants above.
var counterFuncs = map[Category]func(*models.User) int{
	CategoryDocument:    func(u *models.User) int { return u.TotalDocuments },
	CategoryQuiz:        func(u *models.User) int { return u.TotalQuizzes },
	CategoryFlashcard:   func(u *models.User) int { return u.TotalFlashcards },
	CategoryStreak:      func(u *models.User) int { return u.StudyStreak },
	CategoryConsistency: func(u *models.User) int { return u.StudyStreak },
	CategoryLevel:       func(u *models.User) int { return u.CurrentLevel },
	CategoryMastery:     totalActivity,
	CategorySpeed:       totalActivity,
	CategoryAccuracy:    totalActivity,
}

// CounterValue returns the user's current value for the category's counter.
// Unknown categories report zero so a malformed record can never unlock.
func CounterValue(cat Category, u *models.User) int {
	fn, ok := counterFuncs[cat]
	if !ok {
		return 0
	}
	return fn(u)
}
