package syncqueue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/localstore"
	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/metrics"
	"github.com/osse101/pomoquest/internal/progression"
)

// Remote is the persistence API the queue replays operations against.
// CreateSession must be idempotent per operation ID.
type Remote interface {
	CreateSession(ctx context.Context, userID string, op domain.QueuedOperation) (*domain.SessionResult, error)
}

// Notifier receives notifications produced by local session completion
type Notifier interface {
	Notify(ctx context.Context, notifications []domain.Notification)
}

// Receipt is what Enqueue hands back to the caller
type Receipt struct {
	Operation domain.QueuedOperation
	Outcome   *progression.Outcome
}

// FlushReport summarises one Flush call
type FlushReport struct {
	Skipped      bool
	Acknowledged int
	Dropped      int
	Remaining    int
	LastError    error
}

// Queue is the offline-first progression store for one user. Local state is
// updated optimistically on Enqueue; Flush replays operations strictly FIFO.
type Queue struct {
	userID   string
	engine   progression.Engine
	store    localstore.Store
	remote   Remote
	notifier Notifier

	// mu guards every read-modify-write of the state and queue keys
	mu       sync.Mutex
	flushing atomic.Bool
	wg       sync.WaitGroup

	now   func() time.Time
	newID func() string
}

// Open binds a queue to userID. Operations left inFlight by a crash are
// reset to pending.
func Open(ctx context.Context, userID string, engine progression.Engine, store localstore.Store, remote Remote, notifier Notifier) (*Queue, error) {
	if userID == "" {
		return nil, fmt.Errorf(ErrMsgUserIDRequired, domain.ErrUserIDRequired)
	}
	q := &Queue{
		userID:   userID,
		engine:   engine,
		store:    store,
		remote:   remote,
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadQueue(ctx)
	if err != nil {
		return nil, err
	}
	recovered := 0
	for i := range ops {
		if ops[i].Status == domain.OperationInFlight {
			ops[i].Status = domain.OperationPending
			recovered++
		}
	}
	if recovered > 0 {
		if err := q.store.Set(ctx, domain.QueueKey(userID), ops); err != nil {
			return nil, fmt.Errorf(ErrMsgPersistFailed, err)
		}
		logger.FromContext(ctx).Info(LogMsgRecoveredInFlight, "user_id", userID, "count", recovered)
	}
	metrics.SyncQueueDepth.Set(float64(len(ops)))
	logger.FromContext(ctx).Debug(LogMsgQueueOpened, "user_id", userID, "pending", len(ops))
	return q, nil
}

// UserID returns the user this queue belongs to
func (q *Queue) UserID() string { return q.userID }

// State returns the local progression state, creating a fresh one for new users
func (q *Queue) State(ctx context.Context) (*domain.ProgressionState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loadState(ctx)
}

// Pending returns a copy of the queued operations in FIFO order
func (q *Queue) Pending(ctx context.Context) ([]domain.QueuedOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loadQueue(ctx)
}

// Failed returns operations the server permanently rejected, oldest first
func (q *Queue) Failed(ctx context.Context) ([]domain.QueuedOperation, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.loadFailed(ctx)
}

// Enqueue applies event to the local state and appends it to the durable
// queue in one write. Invalid events are rejected before anything changes.
func (q *Queue) Enqueue(ctx context.Context, event domain.SessionEvent) (*Receipt, error) {
	q.mu.Lock()
	state, err := q.loadState(ctx)
	if err != nil {
		q.mu.Unlock()
		return nil, err
	}
	outcome, err := q.engine.OnSessionCompleted(state, event)
	if err != nil {
		q.mu.Unlock()
		return nil, err
	}
	ops, err := q.loadQueue(ctx)
	if err != nil {
		q.mu.Unlock()
		return nil, err
	}

	op := domain.QueuedOperation{
		ID:        q.newID(),
		UserID:    q.userID,
		Payload:   event,
		Status:    domain.OperationPending,
		CreatedAt: q.now().UTC(),
	}
	ops = append(ops, op)
	outcome.State.UpdatedAt = q.now().UTC()

	if err := q.store.SetMany(ctx, map[string]any{
		domain.ProgressionKey(q.userID): outcome.State,
		domain.QueueKey(q.userID):       ops,
	}); err != nil {
		q.mu.Unlock()
		return nil, fmt.Errorf(ErrMsgPersistFailed, err)
	}
	metrics.SyncQueueDepth.Set(float64(len(ops)))
	q.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgEnqueued,
		"operation_id", op.ID,
		"session_type", event.SessionType,
		"xp_earned", outcome.XPEarned)

	if q.notifier != nil && len(outcome.Notifications) > 0 {
		q.notifier.Notify(ctx, outcome.Notifications)
	}
	return &Receipt{Operation: op, Outcome: outcome}, nil
}

// Update applies a local-only change to the state, e.g. toggling an ability
func (q *Queue) Update(ctx context.Context, fn func(*domain.ProgressionState) (*domain.ProgressionState, error)) (*domain.ProgressionState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	state, err := q.loadState(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(state)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = q.now().UTC()
	if err := q.store.Set(ctx, domain.ProgressionKey(q.userID), next); err != nil {
		return nil, fmt.Errorf(ErrMsgPersistFailed, err)
	}
	return next, nil
}

// Reset replaces local state with a fresh one and discards queued operations
func (q *Queue) Reset(ctx context.Context) (*domain.ProgressionState, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	state, err := q.engine.Reset(q.userID)
	if err != nil {
		return nil, err
	}
	state.UpdatedAt = q.now().UTC()
	if err := q.store.SetMany(ctx, map[string]any{
		domain.ProgressionKey(q.userID): state,
		domain.QueueKey(q.userID):       []domain.QueuedOperation{},
		domain.FailedKey(q.userID):      []domain.QueuedOperation{},
	}); err != nil {
		return nil, fmt.Errorf(ErrMsgPersistFailed, err)
	}
	metrics.SyncQueueDepth.Set(0)
	return state, nil
}

// Flush sends pending operations in FIFO order. A call made while another
// flush is running returns immediately with Skipped set; the running flush
// drains the queue. A transient failure stops the flush so later operations
// are never sent ahead of an earlier one.
func (q *Queue) Flush(ctx context.Context) (FlushReport, error) {
	if !q.flushing.CompareAndSwap(false, true) {
		logger.FromContext(ctx).Debug(LogMsgFlushSkipped, "user_id", q.userID)
		return FlushReport{Skipped: true}, nil
	}
	defer q.flushing.Store(false)

	var report FlushReport
	for {
		op, ok, err := q.claimHead(ctx)
		if err != nil {
			return report, err
		}
		if !ok {
			break
		}

		var result *domain.SessionResult
		sendErr := validateOperation(op)
		if sendErr == nil {
			result, sendErr = q.remote.CreateSession(ctx, q.userID, op)
		}

		retry, err := q.settle(ctx, op, result, sendErr, &report)
		if err != nil {
			return report, err
		}
		if retry {
			break
		}
	}

	remaining, err := q.Pending(context.WithoutCancel(ctx))
	if err != nil {
		return report, err
	}
	report.Remaining = len(remaining)
	logger.FromContext(ctx).Debug(LogMsgFlushDone,
		"user_id", q.userID,
		"acknowledged", report.Acknowledged,
		"dropped", report.Dropped,
		"remaining", report.Remaining)
	return report, nil
}

// OnConnectivityRestored triggers a flush in the background and returns immediately
func (q *Queue) OnConnectivityRestored(ctx context.Context) {
	q.flushAsync(ctx)
}

// OnForeground triggers a flush in the background and returns immediately
func (q *Queue) OnForeground(ctx context.Context) {
	q.flushAsync(ctx)
}

// Wait blocks until background flushes started by this queue have finished
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (q *Queue) flushAsync(ctx context.Context) {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		if _, err := q.Flush(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgFlushFailed, "user_id", q.userID, "error", err)
		}
	}()
}

// claimHead marks the oldest operation inFlight and returns it
func (q *Queue) claimHead(ctx context.Context) (domain.QueuedOperation, bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadQueue(ctx)
	if err != nil || len(ops) == 0 {
		return domain.QueuedOperation{}, false, err
	}
	ops[0].Status = domain.OperationInFlight
	if err := q.store.Set(ctx, domain.QueueKey(q.userID), ops); err != nil {
		return domain.QueuedOperation{}, false, fmt.Errorf(ErrMsgPersistFailed, err)
	}
	return ops[0], true, nil
}

// settle records the result of sending op. It reports true when the flush
// must stop and retry later.
func (q *Queue) settle(ctx context.Context, op domain.QueuedOperation, result *domain.SessionResult, sendErr error, report *FlushReport) (bool, error) {
	// The outcome must be recorded even if the caller gave up on ctx
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()

	ops, err := q.loadQueue(ctx)
	if err != nil {
		return false, err
	}
	idx := slices.IndexFunc(ops, func(o domain.QueuedOperation) bool { return o.ID == op.ID })
	if idx < 0 {
		// Removed underneath us by Reset
		return false, nil
	}

	switch {
	case sendErr == nil:
		ops = slices.Delete(ops, idx, idx+1)
		state, err := q.loadState(ctx)
		if err != nil {
			return false, err
		}
		if len(ops) == 0 {
			state = reconcile(state, result)
		} else {
			// Later operations are still only applied locally; the server's
			// totals would roll them back until they are acknowledged too.
			state = state.Clone()
			state.MergeAchievements(result.UnlockedAchievements)
		}
		state.UpdatedAt = q.now().UTC()
		if err := q.store.SetMany(ctx, map[string]any{
			domain.ProgressionKey(q.userID): state,
			domain.QueueKey(q.userID):       ops,
		}); err != nil {
			return false, fmt.Errorf(ErrMsgPersistFailed, err)
		}
		report.Acknowledged++
		metrics.SyncOperations.WithLabelValues(metrics.OutcomeAcknowledged).Inc()
		log.Debug(LogMsgOperationAcked, "operation_id", op.ID, "replayed", result.Replayed)

	case isPermanent(sendErr):
		failed, err := q.loadFailed(ctx)
		if err != nil {
			return false, err
		}
		parked := ops[idx]
		parked.Status = domain.OperationFailed
		parked.Attempts++
		parked.LastError = sendErr.Error()
		failed = append(failed, parked)
		if len(failed) > MaxFailedOperations {
			failed = failed[len(failed)-MaxFailedOperations:]
		}
		ops = slices.Delete(ops, idx, idx+1)
		if err := q.store.SetMany(ctx, map[string]any{
			domain.QueueKey(q.userID):  ops,
			domain.FailedKey(q.userID): failed,
		}); err != nil {
			return false, fmt.Errorf(ErrMsgPersistFailed, err)
		}
		report.Dropped++
		report.LastError = sendErr
		metrics.SyncOperations.WithLabelValues(metrics.OutcomeDropped).Inc()
		log.Warn(LogMsgOperationDropped, "operation_id", op.ID, "error", sendErr)

	default:
		ops[idx].Status = domain.OperationPending
		ops[idx].Attempts++
		ops[idx].LastError = sendErr.Error()
		if err := q.store.Set(ctx, domain.QueueKey(q.userID), ops); err != nil {
			return false, fmt.Errorf(ErrMsgPersistFailed, err)
		}
		report.LastError = sendErr
		metrics.SyncOperations.WithLabelValues(metrics.OutcomeRetry).Inc()
		log.Info(LogMsgOperationRetry, "operation_id", op.ID, "attempts", ops[idx].Attempts, "error", sendErr)
		metrics.SyncQueueDepth.Set(float64(len(ops)))
		return true, nil
	}

	metrics.SyncQueueDepth.Set(float64(len(ops)))
	return false, nil
}

func (q *Queue) loadState(ctx context.Context) (*domain.ProgressionState, error) {
	var state domain.ProgressionState
	found, err := q.store.Get(ctx, domain.ProgressionKey(q.userID), &state)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadStateFailed, err)
	}
	if !found {
		return domain.NewProgressionState(q.userID)
	}
	return &state, nil
}

func (q *Queue) loadQueue(ctx context.Context) ([]domain.QueuedOperation, error) {
	var ops []domain.QueuedOperation
	if _, err := q.store.Get(ctx, domain.QueueKey(q.userID), &ops); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadQueueFailed, err)
	}
	return ops, nil
}

func (q *Queue) loadFailed(ctx context.Context) ([]domain.QueuedOperation, error) {
	var ops []domain.QueuedOperation
	if _, err := q.store.Get(ctx, domain.FailedKey(q.userID), &ops); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadQueueFailed, err)
	}
	return ops, nil
}

// reconcile overwrites the server-authoritative fields with the server's
// values. Achievements are unioned so the unlocked set never shrinks.
// Only called once the queue has drained.
func reconcile(state *domain.ProgressionState, result *domain.SessionResult) *domain.ProgressionState {
	next := state.Clone()
	next.Level = result.NewLevel
	next.XP = result.CurrentXP
	next.Streak = result.Streak
	next.TotalXPEarned = result.TotalXPEarned
	next.MergeAchievements(result.UnlockedAchievements)
	return next
}

func validateOperation(op domain.QueuedOperation) error {
	if err := op.Payload.Validate(); err != nil {
		return fmt.Errorf(ErrMsgInvalidOperation, domain.ErrInvalidSession, op.ID, err)
	}
	return nil
}

// isPermanent reports whether retrying err can never succeed
func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrRejected) || errors.Is(err, domain.ErrInvalidSession)
}
