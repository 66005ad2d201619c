package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/repository"
)

const (
	selectStateSQL = `SELECT state FROM progression_states WHERE user_id = $1`

	selectStateForUpdateSQL = selectStateSQL + ` FOR UPDATE`

	upsertStateSQL = `
		INSERT INTO progression_states (user_id, state, level, total_xp_earned, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			state = EXCLUDED.state,
			level = EXCLUDED.level,
			total_xp_earned = EXCLUDED.total_xp_earned,
			updated_at = EXCLUDED.updated_at`

	selectOperationSQL = `SELECT result FROM processed_operations WHERE user_id = $1 AND operation_id = $2`

	insertOperationSQL = `
		INSERT INTO processed_operations (user_id, operation_id, result)
		VALUES ($1, $2, $3)`
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type progressionRepository struct {
	pool *pgxpool.Pool
}

// NewProgressionRepository creates a new Postgres-backed progression repository
func NewProgressionRepository(pool *pgxpool.Pool) repository.Progression {
	return &progressionRepository{pool: pool}
}

func (r *progressionRepository) GetState(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	return getState(ctx, r.pool, selectStateSQL, userID)
}

func (r *progressionRepository) BeginTx(ctx context.Context) (repository.ProgressionTx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &progressionTx{tx: tx}, nil
}

type progressionTx struct {
	tx pgx.Tx
}

func (t *progressionTx) GetStateForUpdate(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	return getState(ctx, t.tx, selectStateForUpdateSQL, userID)
}

func (t *progressionTx) SaveState(ctx context.Context, state *domain.ProgressionState) error {
	return saveState(ctx, t.tx, state)
}

func (t *progressionTx) GetProcessedOperation(ctx context.Context, userID, operationID string) (*domain.SessionResult, error) {
	var raw []byte
	err := t.tx.QueryRow(ctx, selectOperationSQL, userID, operationID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetOperation, err)
	}

	var result domain.SessionResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeResult, err)
	}
	return &result, nil
}

func (t *progressionTx) RecordProcessedOperation(ctx context.Context, userID string, result *domain.SessionResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeResult, err)
	}

	if _, err := t.tx.Exec(ctx, insertOperationSQL, userID, result.OperationID, raw); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%s %s: %w", ErrMsgDuplicateOperation, result.OperationID, err)
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToRecordOperation, err)
	}
	return nil
}

func (t *progressionTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *progressionTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func getState(ctx context.Context, q querier, sql, userID string) (*domain.ProgressionState, error) {
	var raw []byte
	err := q.QueryRow(ctx, sql, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetState, err)
	}

	var state domain.ProgressionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeState, err)
	}
	return state.Clone(), nil
}

func saveState(ctx context.Context, q querier, state *domain.ProgressionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeState, err)
	}
	_, err = q.Exec(ctx, upsertStateSQL, state.UserID, raw, state.Level, state.TotalXPEarned, state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveState, err)
	}
	return nil
}
