package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/repository"
)

const selectLeaderboardSQL = `
	SELECT RANK() OVER (ORDER BY total_xp_earned DESC) AS rank, user_id, total_xp_earned
	FROM progression_states
	WHERE total_xp_earned > 0
	ORDER BY total_xp_earned DESC, user_id
	LIMIT $1`

// leaderboardRepository ranks users straight from progression_states. It is
// the fallback when no Redis is configured, so writes are no-ops: the score
// is whatever SaveState last stored.
type leaderboardRepository struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a SQL-backed leaderboard
func NewLeaderboardRepository(pool *pgxpool.Pool) repository.Leaderboard {
	return &leaderboardRepository{pool: pool}
}

func (r *leaderboardRepository) UpdateScore(ctx context.Context, userID string, totalXPEarned int64) error {
	return nil
}

func (r *leaderboardRepository) Remove(ctx context.Context, userID string) error {
	return nil
}

func (r *leaderboardRepository) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, selectLeaderboardSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLeaderboard, err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var entry domain.LeaderboardEntry
		var rank int64
		if err := rows.Scan(&rank, &entry.UserID, &entry.TotalXPEarned); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanLeaderboard, err)
		}
		entry.Rank = int(rank)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLeaderboard, err)
	}
	return entries, nil
}
