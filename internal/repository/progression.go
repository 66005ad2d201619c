package repository

import (
	"context"

	"github.com/osse101/pomoquest/internal/domain"
)

// Progression defines database operations for per-user progression state
type Progression interface {
	// GetState returns domain.ErrStateNotFound when the user has no stored state
	GetState(ctx context.Context, userID string) (*domain.ProgressionState, error)

	// Transaction support
	BeginTx(ctx context.Context) (ProgressionTx, error)
}

// ProgressionTx groups the reads and writes of one createSession call so the
// state change and its idempotency record commit together.
type ProgressionTx interface {
	// GetStateForUpdate locks the user's row until the transaction ends.
	// It returns domain.ErrStateNotFound when no row exists yet.
	GetStateForUpdate(ctx context.Context, userID string) (*domain.ProgressionState, error)
	SaveState(ctx context.Context, state *domain.ProgressionState) error

	// Idempotency records, keyed by user and operation ID.
	// GetProcessedOperation returns nil, nil for an unknown pair.
	GetProcessedOperation(ctx context.Context, userID, operationID string) (*domain.SessionResult, error)
	RecordProcessedOperation(ctx context.Context, userID string, result *domain.SessionResult) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Leaderboard ranks users by total XP earned
type Leaderboard interface {
	UpdateScore(ctx context.Context, userID string, totalXPEarned int64) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	Remove(ctx context.Context, userID string) error
}
