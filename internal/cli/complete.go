package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/syncqueue"
)

// CompleteOptions holds flags for the complete command
type CompleteOptions struct {
	*RootOptions
	SessionType string
	Minutes     int
	TeamSize    int
	TeamID      string
}

// CompleteResult is the outcome of recording one session
type CompleteResult struct {
	OperationID          string                `json:"operation_id"`
	XPEarned             int                   `json:"xp_earned"`
	LeveledUp            bool                  `json:"leveled_up"`
	Level                int                   `json:"level"`
	XP                   int                   `json:"xp"`
	Streak               int                   `json:"streak"`
	UnlockedAchievements []string              `json:"unlocked_achievements"`
	Notifications        []domain.Notification `json:"notifications"`
	Pending              int                   `json:"pending"`
}

// FlushResult summarises one flush
type FlushResult struct {
	Skipped      bool   `json:"skipped"`
	Acknowledged int    `json:"acknowledged"`
	Dropped      int    `json:"dropped"`
	Remaining    int    `json:"remaining"`
	LastError    string `json:"last_error,omitempty"`
}

// NewCompleteCommand creates the complete command
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Record a completed timer session",
		Long: `Record a completed timer session. XP, streak and achievements update
locally right away; the session is queued and synced to the server in order.

Examples:
  pomoctl complete
  pomoctl complete --type shortBreak
  pomoctl complete --minutes 50 --team-size 3 --team-id standup`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				return runComplete(ctx, a, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.SessionType, "type", string(domain.SessionFocus), "session type (focus|shortBreak|longBreak)")
	cmd.Flags().IntVar(&opts.Minutes, "minutes", 0, "session length; defaults to your settings")
	cmd.Flags().IntVar(&opts.TeamSize, "team-size", 1, "number of participants")
	cmd.Flags().StringVar(&opts.TeamID, "team-id", "", "shared team session ID")

	return cmd
}

func runComplete(ctx context.Context, a *app, opts *CompleteOptions) error {
	sessionType := domain.SessionType(opts.SessionType)
	minutes := opts.Minutes
	if minutes == 0 {
		settings, err := a.settings(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, ErrMsgSettingsLoad, err)
		}
		minutes = settings.DurationFor(sessionType)
	}

	event := domain.SessionEvent{
		SessionType:     sessionType,
		DurationMinutes: minutes,
		IsTeamSession:   opts.TeamSize > 1 || opts.TeamID != "",
		TeamSize:        opts.TeamSize,
		TeamSessionID:   opts.TeamID,
		OccurredAt:      time.Now().UTC(),
	}

	receipt, err := a.queue.Enqueue(ctx, event)
	if errors.Is(err, domain.ErrInvalidSession) {
		return WrapExitError(ExitUsage, ErrMsgInvalidSession, err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgCompleteFailed, err)
	}

	if !opts.Offline {
		if _, err := a.queue.Flush(ctx); err != nil {
			a.out.warn(MsgFlushAfterSession, err)
		}
	}
	pending, err := a.queue.Pending(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgCompleteFailed, err)
	}

	state := receipt.Outcome.State
	result := CompleteResult{
		OperationID:          receipt.Operation.ID,
		XPEarned:             receipt.Outcome.XPEarned,
		LeveledUp:            receipt.Outcome.LeveledUp,
		Level:                state.Level,
		XP:                   state.XP,
		Streak:               state.Streak,
		UnlockedAchievements: nonNil(receipt.Outcome.UnlockedAchievements),
		Notifications:        receipt.Outcome.Notifications,
		Pending:              len(pending),
	}
	return a.out.emit(result, func(w io.Writer) {
		fmt.Fprintf(w, "+%d XP  level %d (%d XP)  streak %d\n", result.XPEarned, result.Level, result.XP, result.Streak)
		if result.Pending > 0 {
			fmt.Fprintf(w, "%d session(s) waiting to sync\n", result.Pending)
		}
	})
}

// NewFlushCommand creates the flush command
func NewFlushCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Sync queued sessions to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Offline {
				return NewExitError(ExitUsage, ErrMsgOfflineOnly)
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				report, err := a.queue.Flush(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgFlushFailed, err)
				}
				return a.out.emit(newFlushResult(report), func(w io.Writer) {
					fmt.Fprintf(w, "synced %d, dropped %d, remaining %d\n", report.Acknowledged, report.Dropped, report.Remaining)
					if report.LastError != nil {
						fmt.Fprintf(w, "last error: %v\n", report.LastError)
					}
				})
			})
		},
	}
}

func newFlushResult(report syncqueue.FlushReport) FlushResult {
	res := FlushResult{
		Skipped:      report.Skipped,
		Acknowledged: report.Acknowledged,
		Dropped:      report.Dropped,
		Remaining:    report.Remaining,
	}
	if report.LastError != nil {
		res.LastError = report.LastError.Error()
	}
	return res
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
