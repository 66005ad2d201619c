package progression

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/pomoquest/internal/domain"
)

func TestXPThreshold(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 200},
		{10, 1000},
		{20, 2000},
		{21, 2200},
		{25, 3000},
		{0, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPThreshold(tt.level), "level %d", tt.level)
	}
}

func TestApplyXP(t *testing.T) {
	tests := []struct {
		name       string
		level, xp  int
		delta      int
		wantLevel  int
		wantXP     int
		wantLevels int
	}{
		{"no level up", 1, 10, 50, 1, 60, 0},
		{"carries remainder", 1, 90, 54, 2, 44, 1},
		{"exact threshold", 1, 0, 100, 2, 0, 1},
		{"multi level jump", 1, 0, 600, 4, 0, 3},
		{"zero delta", 3, 50, 0, 3, 50, 0},
		{"negative delta ignored", 3, 50, -40, 3, 50, 0},
		{"beyond table", 20, 1999, 2201, 22, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ApplyXP(tt.level, tt.xp, tt.delta)
			assert.Equal(t, tt.wantLevel, res.Level)
			assert.Equal(t, tt.wantXP, res.XP)
			assert.Equal(t, tt.wantLevels, res.LevelsGained)
			assert.Equal(t, tt.wantLevels > 0, res.LeveledUp)
		})
	}
}

func TestApplyXP_InvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	level, xp := 1, 0
	for i := 0; i < 2000; i++ {
		res := ApplyXP(level, xp, rng.Intn(1500)-200)
		level, xp = res.Level, res.XP
		assert.GreaterOrEqual(t, level, 1)
		assert.GreaterOrEqual(t, xp, 0)
		assert.Less(t, xp, XPThreshold(level))
	}
}

func TestReduceXP(t *testing.T) {
	tests := []struct {
		name      string
		level, xp int
		amount    int
		wantLevel int
		wantXP    int
	}{
		{"within level", 2, 50, 30, 2, 20},
		{"walks down one level", 2, 44, 54, 1, 90},
		{"walks down many levels", 4, 0, 600, 1, 0},
		{"clamps at floor", 2, 10, 10000, 1, 0},
		{"negative amount ignored", 3, 5, -10, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ReduceXP(tt.level, tt.xp, tt.amount)
			assert.Equal(t, tt.wantLevel, res.Level)
			assert.Equal(t, tt.wantXP, res.XP)
		})
	}
}

func TestApplyThenReduceIsSymmetric(t *testing.T) {
	up := ApplyXP(3, 120, 1500)
	down := ReduceXP(up.Level, up.XP, 1500)
	assert.Equal(t, 3, down.Level)
	assert.Equal(t, 120, down.XP)
}

func TestSessionXP(t *testing.T) {
	tests := []struct {
		name   string
		event  domain.SessionEvent
		boost  int
		wantXP int
	}{
		{
			name:   "focus 25 minutes",
			event:  domain.SessionEvent{SessionType: domain.SessionFocus, DurationMinutes: 25, TeamSize: 1},
			wantXP: 54,
		},
		{
			name:   "short break has no focus multiplier",
			event:  domain.SessionEvent{SessionType: domain.SessionShortBreak, DurationMinutes: 5, TeamSize: 1},
			wantXP: 25,
		},
		{
			name:   "partial bonus step truncates",
			event:  domain.SessionEvent{SessionType: domain.SessionLongBreak, DurationMinutes: 14, TeamSize: 1},
			wantXP: 30,
		},
		{
			name:   "team of four",
			event:  domain.SessionEvent{SessionType: domain.SessionShortBreak, DurationMinutes: 30, IsTeamSession: true, TeamSize: 4},
			wantXP: 70,
		},
		{
			name:   "team size ignored when not a team session",
			event:  domain.SessionEvent{SessionType: domain.SessionShortBreak, DurationMinutes: 30, TeamSize: 4},
			wantXP: 50,
		},
		{
			name:   "large team caps multiplier",
			event:  domain.SessionEvent{SessionType: domain.SessionShortBreak, DurationMinutes: 30, IsTeamSession: true, TeamSize: 9},
			wantXP: 75,
		},
		{
			name:   "focus team and boost stack",
			event:  domain.SessionEvent{SessionType: domain.SessionFocus, DurationMinutes: 25, IsTeamSession: true, TeamSize: 2},
			boost:  10,
			wantXP: 71,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantXP, SessionXP(tt.event, tt.boost))
		})
	}
}

func TestTeamMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, TeamMultiplier(1))
	assert.Equal(t, 1.2, TeamMultiplier(2))
	assert.Equal(t, 1.3, TeamMultiplier(3))
	assert.Equal(t, 1.4, TeamMultiplier(4))
	assert.Equal(t, 1.5, TeamMultiplier(5))
	assert.Equal(t, 1.5, TeamMultiplier(12))
	assert.Equal(t, 1.0, TeamMultiplier(0))
}
