package progression

import (
	"math"

	"github.com/osse101/pomoquest/internal/domain"
)

// LevelResult is the outcome of applying an XP delta
type LevelResult struct {
	Level        int
	XP           int
	LeveledUp    bool
	LevelsGained int
}

// XPThreshold returns the XP needed to advance from level to level+1.
func XPThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	if level <= FixedThresholdMaxLevel {
		return level * FixedThresholdStep
	}
	return HighLevelThresholdBase + (level-FixedThresholdMaxLevel)*HighLevelThresholdStep
}

// ApplyXP adds delta to (level, xp), carrying the remainder across as many
// level-ups as it pays for. Non-positive deltas leave the inputs unchanged.
func ApplyXP(level, xp, delta int) LevelResult {
	if level < 1 {
		level = 1
	}
	if xp < 0 {
		xp = 0
	}
	start := level
	if delta > 0 {
		xp += delta
	}
	for xp >= XPThreshold(level) {
		xp -= XPThreshold(level)
		level++
	}
	return LevelResult{
		Level:        level,
		XP:           xp,
		LeveledUp:    level > start,
		LevelsGained: level - start,
	}
}

// ReduceXP removes amount from (level, xp), walking levels downward and
// clamping at level 1 with 0 XP.
func ReduceXP(level, xp, amount int) LevelResult {
	if level < 1 {
		level = 1
	}
	if amount < 0 {
		amount = 0
	}
	xp -= amount
	for xp < 0 && level > 1 {
		level--
		xp += XPThreshold(level)
	}
	if xp < 0 {
		xp = 0
	}
	return LevelResult{Level: level, XP: xp}
}

// SessionXP computes the XP a single session earns. xpBoostPercent is the
// sum of active XP-boost abilities.
func SessionXP(event domain.SessionEvent, xpBoostPercent int) int {
	raw := float64(BaseSessionXP + (event.DurationMinutes/MinutesPerBonusStep)*XPPerBonusStep)
	if event.SessionType == domain.SessionFocus {
		raw *= FocusMultiplier
	}
	if event.IsTeamSession {
		raw *= TeamMultiplier(event.TeamSize)
	}
	if xpBoostPercent > 0 {
		raw *= 1 + float64(xpBoostPercent)/100
	}
	return int(math.Round(raw))
}

// TeamMultiplier returns the XP multiplier for a team of size members.
func TeamMultiplier(size int) float64 {
	if size < 1 {
		return teamMultipliers[1]
	}
	if size >= len(teamMultipliers) {
		return teamMultipliers[len(teamMultipliers)-1]
	}
	return teamMultipliers[size]
}

// boosted applies a percentage bonus to a fixed reward, rounded
func boosted(reward, percent int) int {
	if percent <= 0 {
		return reward
	}
	return int(math.Round(float64(reward) * (1 + float64(percent)/100)))
}
