package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/progression"
)

// StatusResult is the local view of a user's progression
type StatusResult struct {
	State          *domain.ProgressionState `json:"state"`
	Character      domain.Character         `json:"character"`
	XPToNextLevel  int                      `json:"xp_to_next_level"`
	Pending        []domain.QueuedOperation `json:"pending"`
	Failed         []domain.QueuedOperation `json:"failed"`
	AchievementCnt int                      `json:"achievement_count"`
}

// NewStatusCommand creates the status command
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, streak, character and sync queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, runStatus)
		},
	}
}

func runStatus(ctx context.Context, a *app) error {
	state, err := a.queue.State(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgStatusFailed, err)
	}
	pending, err := a.queue.Pending(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgStatusFailed, err)
	}
	failed, err := a.queue.Failed(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, ErrMsgStatusFailed, err)
	}

	result := StatusResult{
		State:          state,
		Character:      a.engine.Character(state),
		XPToNextLevel:  progression.XPThreshold(state.Level) - state.XP,
		Pending:        pending,
		Failed:         failed,
		AchievementCnt: len(state.UnlockedAchievementIDs),
	}
	return a.out.emit(result, func(w io.Writer) {
		fmt.Fprintf(w, "User:         %s\n", state.UserID)
		fmt.Fprintf(w, "Level:        %d (%d XP, %d to next)\n", state.Level, state.XP, result.XPToNextLevel)
		fmt.Fprintf(w, "Total XP:     %d\n", state.TotalXPEarned)
		fmt.Fprintf(w, "Streak:       %d day(s)\n", state.Streak)
		fmt.Fprintf(w, "Sessions:     %d (%d focus, %d minutes)\n", state.TotalSessions, state.FocusSessions, state.TotalMinutes)
		fmt.Fprintf(w, "Achievements: %d\n", result.AchievementCnt)
		fmt.Fprintf(w, "Character:    %s (level %d, %d exp)\n", result.Character.Name, state.CharacterLevel, state.CharacterExp)
		if len(state.ActiveAbilityIDs) > 0 {
			fmt.Fprintf(w, "Abilities:    %s\n", strings.Join(state.ActiveAbilityIDs, ", "))
		}
		fmt.Fprintf(w, "Pending sync: %d\n", len(pending))
		if len(failed) > 0 {
			fmt.Fprintf(w, "Rejected:     %d (last: %s)\n", len(failed), failed[len(failed)-1].LastError)
		}
	})
}
