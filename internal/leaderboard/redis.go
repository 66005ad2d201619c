// Package leaderboard keeps the total-XP ranking in a Redis sorted set.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/repository"
)

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Redis is a repository.Leaderboard backed by a sorted set scored by total XP.
// Ties share a rank.
type Redis struct {
	rdb *goredis.Client
	key string
}

var _ repository.Leaderboard = (*Redis)(nil)

// NewRedis connects and pings Redis
func NewRedis(ctx context.Context, opts Options) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New(ErrMsgRedisAddrRequired)
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgRedisPing, err)
	}

	slog.Default().Info(LogMsgConnected, "addr", opts.Addr, "key", opts.Key)
	return &Redis{rdb: rdb, key: opts.Key}, nil
}

// UpdateScore sets the user's score. Scores only move up through sessions;
// a reset removes the member instead.
func (r *Redis) UpdateScore(ctx context.Context, userID string, totalXPEarned int64) error {
	if totalXPEarned <= 0 {
		return r.Remove(ctx, userID)
	}
	err := r.rdb.ZAdd(ctx, r.key, goredis.Z{Score: float64(totalXPEarned), Member: userID}).Err()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdateScore, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, userID string) error {
	if err := r.rdb.ZRem(ctx, r.key, userID).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRemoveUser, err)
	}
	return nil
}

// Top returns the highest scores in descending order, ties broken by user ID
func (r *Redis) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return []domain.LeaderboardEntry{}, nil
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, r.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryTop, err)
	}
	return rank(zs), nil
}

// Close releases the Redis connection pool
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// rank converts ordered sorted-set members into entries using standard
// competition ranking (1, 2, 2, 4).
func rank(zs []goredis.Z) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		entry := domain.LeaderboardEntry{
			Rank:          i + 1,
			UserID:        member,
			TotalXPEarned: int64(z.Score),
		}
		if i > 0 && entries[i-1].TotalXPEarned == entry.TotalXPEarned {
			entry.Rank = entries[i-1].Rank
		}
		entries = append(entries, entry)
	}
	return entries
}
