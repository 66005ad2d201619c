package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/pomoquest/internal/logger"
)

// Rollback is the part of a transaction SafeRollback needs
type Rollback interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error other than an
// already closed transaction
func SafeRollback(ctx context.Context, tx Rollback) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
