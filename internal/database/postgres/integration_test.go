package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pomoquest/internal/database"
	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/repository"
	"github.com/osse101/pomoquest/internal/testing/containers"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
	migrateOnce      sync.Once
	migrateErr       error
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		connStr, stop, err := containers.StartPostgres(context.Background())
		if err != nil {
			fmt.Printf("WARNING: %v\n", err)
		} else {
			testDBConnString, terminate = connStr, stop
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupPool applies migrations once and truncates the tables for each test
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	ctx := context.Background()
	migrateOnce.Do(func() {
		testPool, migrateErr = database.NewPool(ctx, testDBConnString, 10, time.Minute, time.Hour)
		if migrateErr == nil {
			_, migrateErr = database.Migrate(ctx, testPool)
		}
	})
	require.NoError(t, migrateErr)

	_, err := testPool.Exec(ctx, "TRUNCATE progression_states, processed_operations")
	require.NoError(t, err)
	return testPool
}

func stateWithXP(t *testing.T, userID string, level int, totalXP int64) *domain.ProgressionState {
	t.Helper()
	state, err := domain.NewProgressionState(userID)
	require.NoError(t, err)
	state.Level = level
	state.XP = 15
	state.TotalXPEarned = totalXP
	state.Streak = 3
	state.UnlockedAchievementIDs = []string{"first_focus"}
	state.UpdatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return state
}

func saveInTx(t *testing.T, repo repository.Progression, state *domain.ProgressionState) {
	t.Helper()
	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	require.NoError(t, tx.SaveState(ctx, state))
	require.NoError(t, tx.Commit(ctx))
}

func TestProgressionRepository_StateRoundTrip(t *testing.T) {
	repo := NewProgressionRepository(setupPool(t))
	ctx := context.Background()

	_, err := repo.GetState(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	state := stateWithXP(t, "alice", 3, 420)
	saveInTx(t, repo, state)

	got, err := repo.GetState(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, int64(420), got.TotalXPEarned)
	assert.Equal(t, []string{"first_focus"}, got.UnlockedAchievementIDs)
	assert.True(t, state.UpdatedAt.Equal(got.UpdatedAt))

	state.Level = 4
	saveInTx(t, repo, state)
	got, err = repo.GetState(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Level)
}

func TestProgressionRepository_RollbackDiscardsWrites(t *testing.T) {
	repo := NewProgressionRepository(setupPool(t))
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.SaveState(ctx, stateWithXP(t, "bob", 2, 150)))
	require.NoError(t, tx.RecordProcessedOperation(ctx, "bob", &domain.SessionResult{OperationID: "op-1"}))
	require.NoError(t, tx.Rollback(ctx))

	// a second rollback is already closed and must stay quiet
	repository.SafeRollback(ctx, tx)

	_, err = repo.GetState(ctx, "bob")
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestProgressionRepository_ProcessedOperations(t *testing.T) {
	repo := NewProgressionRepository(setupPool(t))
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	missing, err := tx.GetProcessedOperation(ctx, "alice", "op-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	result := &domain.SessionResult{
		OperationID:          "op-1",
		XPEarned:             64,
		LeveledUp:            true,
		NewLevel:             2,
		CurrentXP:            14,
		Streak:               1,
		TotalXPEarned:        64,
		UnlockedAchievements: []string{"first_focus"},
	}
	require.NoError(t, tx.RecordProcessedOperation(ctx, "alice", result))

	got, err := tx.GetProcessedOperation(ctx, "alice", "op-1")
	require.NoError(t, err)
	assert.Equal(t, result, got)
	require.NoError(t, tx.Commit(ctx))

	tx2, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx2)
	err = tx2.RecordProcessedOperation(ctx, "alice", result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgDuplicateOperation)
}

func TestProgressionRepository_ProcessedOperationsScopedByUser(t *testing.T) {
	repo := NewProgressionRepository(setupPool(t))
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)

	aliceResult := &domain.SessionResult{OperationID: "op-shared", XPEarned: 64, NewLevel: 3, TotalXPEarned: 500}
	require.NoError(t, tx.RecordProcessedOperation(ctx, "alice", aliceResult))

	other, err := tx.GetProcessedOperation(ctx, "bob", "op-shared")
	require.NoError(t, err)
	assert.Nil(t, other, "another user's result is never returned")

	bobResult := &domain.SessionResult{OperationID: "op-shared", XPEarned: 20, NewLevel: 1, TotalXPEarned: 20}
	require.NoError(t, tx.RecordProcessedOperation(ctx, "bob", bobResult))

	got, err := tx.GetProcessedOperation(ctx, "alice", "op-shared")
	require.NoError(t, err)
	assert.Equal(t, aliceResult, got)
	got, err = tx.GetProcessedOperation(ctx, "bob", "op-shared")
	require.NoError(t, err)
	assert.Equal(t, bobResult, got)
	require.NoError(t, tx.Commit(ctx))
}

func TestProgressionRepository_GetStateForUpdateSerializes(t *testing.T) {
	repo := NewProgressionRepository(setupPool(t))
	ctx := context.Background()
	saveInTx(t, repo, stateWithXP(t, "carol", 1, 0))

	first, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, first)
	_, err = first.GetStateForUpdate(ctx, "carol")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		second, err := repo.BeginTx(ctx)
		if err != nil {
			done <- err
			return
		}
		defer repository.SafeRollback(ctx, second)
		_, err = second.GetStateForUpdate(ctx, "carol")
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("second transaction should block on the row lock")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, first.Commit(ctx))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second transaction never acquired the row lock")
	}
}

func TestLeaderboardRepository_Top(t *testing.T) {
	pool := setupPool(t)
	repo := NewProgressionRepository(pool)
	board := NewLeaderboardRepository(pool)
	ctx := context.Background()

	saveInTx(t, repo, stateWithXP(t, "alice", 3, 300))
	saveInTx(t, repo, stateWithXP(t, "bob", 5, 900))
	saveInTx(t, repo, stateWithXP(t, "carol", 3, 300))
	saveInTx(t, repo, stateWithXP(t, "dave", 1, 0))

	require.NoError(t, board.UpdateScore(ctx, "alice", 300))

	entries, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3, "users without XP are not ranked")
	assert.Equal(t, domain.LeaderboardEntry{Rank: 1, UserID: "bob", TotalXPEarned: 900}, entries[0])
	assert.Equal(t, domain.LeaderboardEntry{Rank: 2, UserID: "alice", TotalXPEarned: 300}, entries[1])
	assert.Equal(t, domain.LeaderboardEntry{Rank: 2, UserID: "carol", TotalXPEarned: 300}, entries[2])

	top1, err := board.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top1, 1)
	assert.Equal(t, "bob", top1[0].UserID)
}
