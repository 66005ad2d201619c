package domain

import (
	"fmt"
	"time"
)

// SessionType identifies which timer phase completed
type SessionType string

const (
	SessionFocus      SessionType = "focus"
	SessionShortBreak SessionType = "shortBreak"
	SessionLongBreak  SessionType = "longBreak"
)

// Valid reports whether t is a known session type
func (t SessionType) Valid() bool {
	switch t {
	case SessionFocus, SessionShortBreak, SessionLongBreak:
		return true
	}
	return false
}

// SessionEvent is emitted once per completed timer session
type SessionEvent struct {
	SessionType     SessionType `json:"session_type" validate:"required,session_type"`
	DurationMinutes int         `json:"duration_minutes" validate:"gt=0,lte=1440"`
	IsTeamSession   bool        `json:"is_team_session"`
	TeamSize        int         `json:"team_size" validate:"gte=1"`
	TeamSessionID   string      `json:"team_session_id,omitempty"`
	OccurredAt      time.Time   `json:"occurred_at" validate:"required"`
}

// Validate rejects malformed events before any state is touched.
func (e SessionEvent) Validate() error {
	if !e.SessionType.Valid() {
		return fmt.Errorf("%w: unknown session type %q", ErrInvalidSession, e.SessionType)
	}
	if e.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidSession, e.DurationMinutes)
	}
	if e.DurationMinutes > MaxSessionMinutes {
		return fmt.Errorf("%w: duration %d exceeds %d minutes", ErrInvalidSession, e.DurationMinutes, MaxSessionMinutes)
	}
	if e.TeamSize < 1 {
		return fmt.Errorf("%w: team size must be at least 1, got %d", ErrInvalidSession, e.TeamSize)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("%w: occurred_at is required", ErrInvalidSession)
	}
	return nil
}

// OperationStatus is the lifecycle state of a queued operation
type OperationStatus string

const (
	OperationPending  OperationStatus = "pending"
	OperationInFlight OperationStatus = "inFlight"
	// OperationFailed marks an operation the server permanently rejected.
	// Failed operations leave the queue and are kept for inspection only.
	OperationFailed OperationStatus = "failed"
)

// QueuedOperation is a session event waiting for remote acknowledgment.
// ID doubles as the idempotency key on the server.
type QueuedOperation struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Payload   SessionEvent    `json:"payload"`
	Attempts  int             `json:"attempts"`
	Status    OperationStatus `json:"status"`
	LastError string          `json:"last_error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionResult is the server's authoritative answer to createSession
type SessionResult struct {
	OperationID          string   `json:"operation_id"`
	XPEarned             int      `json:"xp_earned"`
	LeveledUp            bool     `json:"leveled_up"`
	NewLevel             int      `json:"new_level"`
	CurrentXP            int      `json:"current_xp"`
	Streak               int      `json:"streak"`
	TotalXPEarned        int64    `json:"total_xp_earned"`
	UnlockedAchievements []string `json:"unlocked_achievements"`
	Replayed             bool     `json:"replayed,omitempty"`
}

// GamePlayResult is the answer to recording a mini-game play
type GamePlayResult struct {
	XPEarned             int               `json:"xp_earned"`
	UnlockedAchievements []string          `json:"unlocked_achievements"`
	State                *ProgressionState `json:"state"`
}
