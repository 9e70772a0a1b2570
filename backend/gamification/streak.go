package gamification

import "time"

// StreakTransition describes what happened to the streak on an update.
type StreakTransition string

const (
	StreakStarted     StreakTransition = "started"
	StreakSameDay     StreakTransition = "same_day"
	StreakIncremented StreakTransition = "incremented"
	StreakBroken      StreakTransition = "broken"
)

// startOfDay strips the time of day. All streak arithmetic is done on UTC
// calendar days.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// UpdateStreak computes the new streak value for an activity happening today.
// A nil last study date starts a fresh streak, the same day leaves it
// untouched, the following day extends it, and any larger (or negative) gap
// resets it to 1.
func UpdateStreak(last *time.Time, today time.Time, current int) (int, time.Time, StreakTransition) {
	day := startOfDay(today)
	if last == nil {
		return 1, day, StreakStarted
	}

	lastDay := startOfDay(*last)
	days := int(day.Sub(lastDay).Hours() / 24)
	switch {
	case days == 0:
		return current, lastDay, StreakSameDay
	case days == 1:
		return current + 1, day, StreakIncremented
	default:
		return 1, day, StreakBroken
	}
}

// StreakExpiryCutoff returns the cutoff for the daily maintenance sweep: a
// user whose last study date is before this instant has been away for more
// than two full days and their streak is expired.
func StreakExpiryCutoff(today time.Time) time.Time {
	return startOfDay(today).AddDate(0, 0, -2)
}
