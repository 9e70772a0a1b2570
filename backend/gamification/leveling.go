package gamification

import "studybuddy/backend/models"

// BaseNextLevelXP is the XP needed to clear level 1; each level after that
// costs 1.5x the previous one, floored.
const BaseNextLevelXP = 500

const levelGrowth = 1.5

// LevelState is the XP ledger triple plus the current level.
type LevelState struct {
	CurrentLevel int `json:"current_level"`
	TotalXP      int `json:"total_xp"`
	CurrentXP    int `json:"current_xp"`
	NextLevelXP  int `json:"next_level_xp"`
}

// normalizeLevelState repairs malformed state before any XP is applied:
// negative XP clamps to zero and a non-positive threshold falls back to the
// base curve. Corrupt input must never produce a divide-by-zero or an
// infinite level-up loop.
func normalizeLevelState(s LevelState) LevelState {
	if s.CurrentLevel < 1 {
		s.CurrentLevel = 1
	}
	if s.TotalXP < 0 {
		s.TotalXP = 0
	}
	if s.CurrentXP < 0 {
		s.CurrentXP = 0
	}
	if s.NextLevelXP < 1 {
		s.NextLevelXP = BaseNextLevelXP
	}
	return s
}

// ApplyXP adds delta XP to the ledger and resolves every level-up it pays
// for. Leftover XP carries into the new level, so one large delta can climb
// several levels in a single call. CurrentXP < NextLevelXP holds on return.
func ApplyXP(state LevelState, delta int) LevelState {
	state = normalizeLevelState(state)
	if delta <= 0 {
		return state
	}

	state.TotalXP += delta
	state.CurrentXP += delta
	for state.CurrentXP >= state.NextLevelXP {
		state.CurrentXP -= state.NextLevelXP
		state.CurrentLevel++
		state.NextLevelXP = int(float64(state.NextLevelXP) * levelGrowth)
	}
	return state
}

// LevelStateOf reads the ledger fields off a user record.
func LevelStateOf(u *models.User) LevelState {
	return LevelState{
		CurrentLevel: u.CurrentLevel,
		TotalXP:      u.TotalXP,
		CurrentXP:    u.CurrentXP,
		NextLevelXP:  u.NextLevelXP,
	}
}

// SetLevelState writes the ledger fields back onto a user record.
func SetLevelState(u *models.User, s LevelState) {
	u.CurrentLevel = s.CurrentLevel
	u.TotalXP = s.TotalXP
	u.CurrentXP = s.CurrentXP
	u.NextLevelXP = s.NextLevelXP
}
