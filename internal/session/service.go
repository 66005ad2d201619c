package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/pomoquest/internal/concurrency"
	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/event"
	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/metrics"
	"github.com/osse101/pomoquest/internal/progression"
	"github.com/osse101/pomoquest/internal/repository"
	"github.com/osse101/pomoquest/internal/worker"
)

// Service is the server side of the progression API. Every write for one
// user is serialized and committed in a single transaction.
type Service interface {
	// CreateSession applies a completed session exactly once per operation ID.
	// Replays return the stored result with Replayed set and no new effects.
	CreateSession(ctx context.Context, userID, operationID string, ev domain.SessionEvent) (*domain.SessionResult, error)
	GetState(ctx context.Context, userID string) (*domain.ProgressionState, error)
	Reset(ctx context.Context, userID string) (*domain.ProgressionState, error)
	ReduceXP(ctx context.Context, userID string, amount int) (*domain.ProgressionState, error)
	ToggleAbility(ctx context.Context, userID, abilityID string, active bool) (*domain.ProgressionState, error)
	RecordGamePlayed(ctx context.Context, userID, gameID string, score int) (*domain.GamePlayResult, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// JobQueue runs jobs off the request path
type JobQueue interface {
	Enqueue(job worker.Job) bool
}

// Config sizes the idempotency front cache
type Config struct {
	ReplayCacheSize int
	ReplayCacheTTL  time.Duration
}

type service struct {
	repo    repository.Progression
	board   repository.Leaderboard
	engine  progression.Engine
	bus     event.Bus
	jobs    JobQueue
	locks   *concurrency.LockManager
	replays *expirable.LRU[string, domain.SessionResult]
	now     func() time.Time
}

// NewService creates the session service. jobs may be nil, in which case
// leaderboard updates run inline.
func NewService(repo repository.Progression, board repository.Leaderboard, engine progression.Engine, bus event.Bus, jobs JobQueue, cfg Config) Service {
	return &service{
		repo:    repo,
		board:   board,
		engine:  engine,
		bus:     bus,
		jobs:    jobs,
		locks:   concurrency.NewLockManager(),
		replays: expirable.NewLRU[string, domain.SessionResult](cfg.ReplayCacheSize, nil, cfg.ReplayCacheTTL),
		now:     time.Now,
	}
}

func (s *service) CreateSession(ctx context.Context, userID, operationID string, ev domain.SessionEvent) (*domain.SessionResult, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if operationID == "" {
		return nil, fmt.Errorf(ErrMsgOperationIDRequired, domain.ErrInvalidInput)
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	cacheKey := userID + replayKeySeparator + operationID
	if cached, ok := s.replays.Get(cacheKey); ok {
		return s.replay(ctx, cached), nil
	}

	var (
		result   *domain.SessionResult
		replayed bool
		outcome  *progression.Outcome
	)
	err := s.withStateTx(ctx, userID, func(tx repository.ProgressionTx, state *domain.ProgressionState) (*domain.ProgressionState, error) {
		stored, err := tx.GetProcessedOperation(ctx, userID, operationID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgLookupOpFailed, operationID, err)
		}
		if stored != nil {
			result, replayed = stored, true
			return nil, nil
		}

		outcome, err = s.engine.OnSessionCompleted(state, ev)
		if err != nil {
			return nil, err
		}
		result = newSessionResult(operationID, outcome)
		if err := tx.RecordProcessedOperation(ctx, userID, result); err != nil {
			return nil, fmt.Errorf(ErrMsgRecordOpFailed, operationID, err)
		}
		return outcome.State, nil
	})
	if err != nil {
		return nil, err
	}

	s.replays.Add(cacheKey, *result)
	if replayed {
		return s.replay(ctx, *result), nil
	}

	log.Info(LogMsgSessionApplied,
		"operation_id", operationID,
		"session_type", ev.SessionType,
		"xp_earned", result.XPEarned,
		"level", result.NewLevel)

	s.publish(ctx, event.NewSessionCompletedEvent(operationID, ev, outcome.State, outcome.XPEarned))
	s.publishNotifications(ctx, outcome.Notifications)
	s.updateLeaderboard(ctx, userID, outcome.State.TotalXPEarned)

	out := *result
	return &out, nil
}

func (s *service) GetState(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	state, err := s.repo.GetState(ctx, userID)
	if errors.Is(err, domain.ErrStateNotFound) {
		return domain.NewProgressionState(userID)
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadStateFailed, err)
	}
	return state, nil
}

func (s *service) Reset(ctx context.Context, userID string) (*domain.ProgressionState, error) {
	var fresh *domain.ProgressionState
	err := s.withStateTx(ctx, userID, func(_ repository.ProgressionTx, _ *domain.ProgressionState) (*domain.ProgressionState, error) {
		var err error
		fresh, err = s.engine.Reset(userID)
		return fresh, err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgProgressionReset)
	if err := s.board.Remove(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgLeaderboardFailed, "error", err)
	}
	s.publish(ctx, event.NewProgressionResetEvent(userID))
	return fresh, nil
}

func (s *service) ReduceXP(ctx context.Context, userID string, amount int) (*domain.ProgressionState, error) {
	if amount <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidAmount, domain.ErrInvalidInput, amount)
	}

	var next *domain.ProgressionState
	err := s.withStateTx(ctx, userID, func(_ repository.ProgressionTx, state *domain.ProgressionState) (*domain.ProgressionState, error) {
		next = s.engine.ReduceXP(state, amount)
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgXPReduced, "amount", amount, "level", next.Level, "xp", next.XP)
	return next, nil
}

func (s *service) ToggleAbility(ctx context.Context, userID, abilityID string, active bool) (*domain.ProgressionState, error) {
	var next *domain.ProgressionState
	err := s.withStateTx(ctx, userID, func(_ repository.ProgressionTx, state *domain.ProgressionState) (*domain.ProgressionState, error) {
		var err error
		next, err = s.engine.ToggleAbility(state, abilityID, active)
		return next, err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgAbilityToggled, "ability_id", abilityID, "active", active)
	return next, nil
}

func (s *service) RecordGamePlayed(ctx context.Context, userID, gameID string, score int) (*domain.GamePlayResult, error) {
	var outcome *progression.Outcome
	err := s.withStateTx(ctx, userID, func(_ repository.ProgressionTx, state *domain.ProgressionState) (*domain.ProgressionState, error) {
		var err error
		outcome, err = s.engine.RecordGamePlayed(state, gameID, score)
		if err != nil {
			return nil, err
		}
		return outcome.State, nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgGamePlayed, "game_id", gameID, "score", score, "xp_earned", outcome.XPEarned)
	s.publishNotifications(ctx, outcome.Notifications)
	if outcome.XPEarned > 0 {
		s.updateLeaderboard(ctx, userID, outcome.State.TotalXPEarned)
	}

	return &domain.GamePlayResult{
		XPEarned:             outcome.XPEarned,
		UnlockedAchievements: nonNil(outcome.UnlockedAchievements),
		State:                outcome.State,
	}, nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	limit = min(limit, MaxLeaderboardLimit)

	entries, err := s.board.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLeaderboardFailed, err)
	}
	return entries, nil
}

// withStateTx loads the user's state under the per-user lock and a row lock,
// runs fn and saves what it returns. A nil state from fn commits nothing new.
func (s *service) withStateTx(ctx context.Context, userID string, fn func(tx repository.ProgressionTx, state *domain.ProgressionState) (*domain.ProgressionState, error)) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}

	return s.locks.WithLock(userID, func() error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return err
		}
		defer repository.SafeRollback(ctx, tx)

		state, err := tx.GetStateForUpdate(ctx, userID)
		if errors.Is(err, domain.ErrStateNotFound) {
			state, err = domain.NewProgressionState(userID)
		}
		if err != nil {
			return fmt.Errorf(ErrMsgLoadStateFailed, err)
		}

		next, err := fn(tx, state)
		if err != nil {
			return err
		}
		if next != nil {
			next.UpdatedAt = s.now().UTC()
			if err := tx.SaveState(ctx, next); err != nil {
				return fmt.Errorf(ErrMsgSaveStateFailed, err)
			}
		}
		return tx.Commit(ctx)
	})
}

func (s *service) replay(ctx context.Context, stored domain.SessionResult) *domain.SessionResult {
	metrics.IdempotentReplays.Inc()
	logger.FromContext(ctx).Info(LogMsgSessionReplayed, "operation_id", stored.OperationID)
	stored.Replayed = true
	stored.UnlockedAchievements = nonNil(stored.UnlockedAchievements)
	return &stored
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

func (s *service) publishNotifications(ctx context.Context, notifications []domain.Notification) {
	for _, n := range notifications {
		s.publish(ctx, event.NewNotificationEvent(n))
	}
}

func (s *service) updateLeaderboard(ctx context.Context, userID string, totalXPEarned int64) {
	// Pool workers log returned errors; the inline path logs its own
	job := worker.JobFunc(func(jobCtx context.Context) error {
		if err := s.board.UpdateScore(jobCtx, userID, totalXPEarned); err != nil {
			return fmt.Errorf(ErrMsgUpdateScoreFailed, userID, err)
		}
		return nil
	})

	if s.jobs != nil && s.jobs.Enqueue(job) {
		return
	}
	log := logger.FromContext(ctx)
	if s.jobs != nil {
		log.Warn(LogMsgLeaderboardQueueFull)
	}
	if err := job.Process(context.WithoutCancel(ctx)); err != nil {
		log.Warn(LogMsgLeaderboardFailed, "error", err)
	}
}

func newSessionResult(operationID string, outcome *progression.Outcome) *domain.SessionResult {
	return &domain.SessionResult{
		OperationID:          operationID,
		XPEarned:             outcome.XPEarned,
		LeveledUp:            outcome.LeveledUp,
		NewLevel:             outcome.State.Level,
		CurrentXP:            outcome.State.XP,
		Streak:               outcome.State.Streak,
		TotalXPEarned:        outcome.State.TotalXPEarned,
		UnlockedAchievements: nonNil(outcome.UnlockedAchievements),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
