package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/remote"
	"github.com/osse101/pomoquest/internal/worker"
)

// NewLeaderboardCommand creates the leaderboard command
func NewLeaderboardCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top users by total XP earned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Offline {
				return NewExitError(ExitUsage, ErrMsgOfflineOnly)
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				entries, err := a.remote.GetLeaderboard(ctx, a.userID, limit)
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgLeaderboard, err)
				}
				return a.out.emit(entries, func(w io.Writer) {
					for _, e := range entries {
						marker := " "
						if e.UserID == a.userID {
							marker = "*"
						}
						fmt.Fprintf(w, "%s%3d. %-24s %d XP\n", marker, e.Rank, e.UserID, e.TotalXPEarned)
					}
				})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", DefaultLeaderboardLimit, "number of entries")
	return cmd
}

// NewWatchCommand creates the watch command
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream notifications and keep the queue synced until interrupted",
		Long: `Stream level-ups, achievements and evolutions from the server while
flushing queued sessions in the background. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Offline {
				return NewExitError(ExitUsage, ErrMsgOfflineOnly)
			}
			return withApp(cmd, rootOpts, runWatch)
		},
	}
}

func runWatch(ctx context.Context, a *app) error {
	flusher := worker.NewFlushWorker(a.queue, a.opts.FlushInterval)
	flusher.Start(ctx)
	defer func() { _ = flusher.Shutdown(context.WithoutCancel(ctx)) }()

	a.queue.OnForeground(ctx)

	err := a.remote.Watch(ctx, a.userID, func(ev remote.Event) error {
		logger.FromContext(ctx).Debug(LogMsgWatchEvent, "type", ev.Type)
		if a.out.json() {
			return a.out.emit(ev, nil)
		}
		if !isNotificationType(ev.Type) {
			return nil
		}
		n, err := ev.Notification()
		if err != nil {
			return err
		}
		printNotification(a.out.w, n)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		if !a.out.json() {
			fmt.Fprintln(a.out.w, MsgWatchStopped)
		}
		return nil
	}
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgWatchFailed, err)
	}
	return nil
}

func isNotificationType(t string) bool {
	switch domain.NotificationType(t) {
	case domain.NotificationLevelUp, domain.NotificationAchievementUnlocked, domain.NotificationCharacterEvolved:
		return true
	}
	return false
}
