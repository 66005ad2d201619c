package domain

import (
	"slices"
	"time"
)

// ProgressionState is the per-user progression record: XP economy, streak,
// counters, achievements and the evolving character.
type ProgressionState struct {
	UserID string `json:"user_id"`

	Level         int   `json:"level"`
	XP            int   `json:"xp"`
	TotalXPEarned int64 `json:"total_xp_earned"`

	Streak                 int        `json:"streak"`
	LastActiveDate         *time.Time `json:"last_active_date,omitempty"`
	StreakProtectionUsedOn *time.Time `json:"streak_protection_used_on,omitempty"`

	TotalSessions   int `json:"total_sessions"`
	FocusSessions   int `json:"focus_sessions"`
	TotalMinutes    int `json:"total_minutes"`
	TotalActiveDays int `json:"total_active_days"`
	TeamSessions    int `json:"team_sessions"`
	TeamMinutes     int `json:"team_minutes"`

	UnlockedAchievementIDs []string `json:"unlocked_achievement_ids"`

	CharacterEvolutionPath []CharacterType `json:"character_evolution_path"`
	CharacterLevel         int             `json:"character_level"`
	CharacterExp           int             `json:"character_exp"`

	ActiveAbilityIDs []string `json:"active_ability_ids"`

	Games GameStats `json:"games"`

	UpdatedAt time.Time `json:"updated_at"`
}

// GameStats tracks mini-game activity used by game achievements.
type GameStats struct {
	PlayCount   int      `json:"play_count"`
	BestScore   int      `json:"best_score"`
	PlayedGames []string `json:"played_games"`
}

// NewProgressionState returns the starting state for a user.
// userID is required; use DemoProgressionState for fixtures.
func NewProgressionState(userID string) (*ProgressionState, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return &ProgressionState{
		UserID:                 userID,
		Level:                  1,
		UnlockedAchievementIDs: []string{},
		CharacterEvolutionPath: []CharacterType{StartingCharacterType},
		CharacterLevel:         1,
		ActiveAbilityIDs:       []string{},
		Games:                  GameStats{PlayedGames: []string{}},
	}, nil
}

// DemoProgressionState is the explicit fixture path for demos and tests.
func DemoProgressionState() *ProgressionState {
	state, _ := NewProgressionState(DemoUserID)
	return state
}

// Clone returns a deep copy so callers can treat states as immutable values.
func (s *ProgressionState) Clone() *ProgressionState {
	if s == nil {
		return nil
	}
	c := *s
	c.LastActiveDate = cloneTime(s.LastActiveDate)
	c.StreakProtectionUsedOn = cloneTime(s.StreakProtectionUsedOn)
	c.UnlockedAchievementIDs = slices.Clone(s.UnlockedAchievementIDs)
	c.CharacterEvolutionPath = slices.Clone(s.CharacterEvolutionPath)
	c.ActiveAbilityIDs = slices.Clone(s.ActiveAbilityIDs)
	c.Games.PlayedGames = slices.Clone(s.Games.PlayedGames)
	if c.UnlockedAchievementIDs == nil {
		c.UnlockedAchievementIDs = []string{}
	}
	if c.ActiveAbilityIDs == nil {
		c.ActiveAbilityIDs = []string{}
	}
	if c.Games.PlayedGames == nil {
		c.Games.PlayedGames = []string{}
	}
	return &c
}

// HasAchievement reports whether id is already unlocked.
func (s *ProgressionState) HasAchievement(id string) bool {
	return slices.Contains(s.UnlockedAchievementIDs, id)
}

// UnlockAchievement adds id to the unlocked set. It returns false if the
// achievement was already unlocked.
func (s *ProgressionState) UnlockAchievement(id string) bool {
	if s.HasAchievement(id) {
		return false
	}
	s.UnlockedAchievementIDs = append(s.UnlockedAchievementIDs, id)
	return true
}

// IsAbilityActive reports whether the user toggled the ability on.
func (s *ProgressionState) IsAbilityActive(id string) bool {
	return slices.Contains(s.ActiveAbilityIDs, id)
}

// MergeAchievements unions ids into the unlocked set, preserving order.
func (s *ProgressionState) MergeAchievements(ids []string) {
	for _, id := range ids {
		s.UnlockAchievement(id)
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
