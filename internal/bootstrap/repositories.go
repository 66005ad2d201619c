package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/pomoquest/internal/config"
	"github.com/osse101/pomoquest/internal/database/postgres"
	"github.com/osse101/pomoquest/internal/leaderboard"
	"github.com/osse101/pomoquest/internal/repository"
)

// Repositories holds the repository implementations used by the server
type Repositories struct {
	Progression repository.Progression
	Leaderboard repository.Leaderboard

	// redis is set when the leaderboard lives in Redis and must be closed
	redis *leaderboard.Redis
}

// InitializeRepositories creates the PostgreSQL repositories. The leaderboard
// uses Redis when REDIS_ADDR is set and the progression table otherwise.
func InitializeRepositories(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool) (*Repositories, error) {
	repos := &Repositories{
		Progression: postgres.NewProgressionRepository(dbPool),
	}

	if cfg.RedisAddr == "" {
		repos.Leaderboard = postgres.NewLeaderboardRepository(dbPool)
		slog.Info(LogMsgLeaderboardPostgres)
		return repos, nil
	}

	rdb, err := leaderboard.NewRedis(ctx, leaderboard.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}
	repos.Leaderboard = rdb
	repos.redis = rdb
	slog.Info(LogMsgLeaderboardRedis, "addr", cfg.RedisAddr)
	return repos, nil
}

// Close releases connections held outside the database pool
func (r *Repositories) Close() error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Close()
}
