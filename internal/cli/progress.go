package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/progression"
)

// GameResult is the local outcome of one mini-game play
type GameResult struct {
	GameID               string   `json:"game_id"`
	Score                int      `json:"score"`
	XPEarned             int      `json:"xp_earned"`
	UnlockedAchievements []string `json:"unlocked_achievements"`
	Level                int      `json:"level"`
}

// NewAbilityCommand creates the ability command group
func NewAbilityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ability",
		Short: "Turn character abilities on or off",
	}
	cmd.AddCommand(newAbilityToggleCommand(rootOpts, "enable", true))
	cmd.AddCommand(newAbilityToggleCommand(rootOpts, "disable", false))
	return cmd
}

func newAbilityToggleCommand(rootOpts *RootOptions, use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <ability-id>",
		Short: use + " an ability owned by your current character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abilityID := args[0]
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				state, err := a.queue.Update(ctx, func(s *domain.ProgressionState) (*domain.ProgressionState, error) {
					return a.engine.ToggleAbility(s, abilityID, active)
				})
				if errors.Is(err, domain.ErrUnknownAbility) || errors.Is(err, domain.ErrAbilityNotOwned) {
					return WrapExitError(ExitUsage, ErrMsgAbilityFailed, err)
				}
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgAbilityFailed, err)
				}

				a.syncRemote(ctx, MsgRemoteAbility, func(ctx context.Context) error {
					_, err := a.remote.SetAbility(ctx, a.userID, abilityID, active)
					return err
				})
				return a.out.emit(state, func(w io.Writer) {
					fmt.Fprintf(w, "%s %sd\n", abilityID, use)
				})
			})
		},
	}
}

// NewResetCommand creates the reset command
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start over from level 1, discarding unsynced sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return NewExitError(ExitUsage, ErrMsgResetNeedsYes)
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				state, err := a.queue.Reset(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgResetFailed, err)
				}
				a.syncRemote(ctx, MsgRemoteReset, func(ctx context.Context) error {
					_, err := a.remote.ResetProgression(ctx, a.userID)
					return err
				})
				return a.out.emit(state, func(w io.Writer) {
					fmt.Fprintln(w, "Progression reset.")
				})
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

// NewGameCommand creates the game command
func NewGameCommand(rootOpts *RootOptions) *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "game <game-id>",
		Short: "Record a mini-game played during a break",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				var outcome *progression.Outcome
				state, err := a.queue.Update(ctx, func(s *domain.ProgressionState) (*domain.ProgressionState, error) {
					var err error
					outcome, err = a.engine.RecordGamePlayed(s, gameID, score)
					if err != nil {
						return nil, err
					}
					return outcome.State, nil
				})
				if errors.Is(err, domain.ErrInvalidInput) {
					return WrapExitError(ExitUsage, ErrMsgGameFailed, err)
				}
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgGameFailed, err)
				}
				a.out.Notify(ctx, outcome.Notifications)

				a.syncRemote(ctx, MsgRemoteGame, func(ctx context.Context) error {
					_, err := a.remote.RecordGamePlayed(ctx, a.userID, gameID, score)
					return err
				})
				result := GameResult{
					GameID:               gameID,
					Score:                score,
					XPEarned:             outcome.XPEarned,
					UnlockedAchievements: nonNil(outcome.UnlockedAchievements),
					Level:                state.Level,
				}
				return a.out.emit(result, func(w io.Writer) {
					fmt.Fprintf(w, "%s scored %d: +%d XP\n", gameID, score, result.XPEarned)
				})
			})
		},
	}
	cmd.Flags().IntVar(&score, "score", 0, "final score")
	return cmd
}

// syncRemote mirrors a local-only change to the server. Failures are
// reported but never undo the local change.
func (a *app) syncRemote(ctx context.Context, what string, fn func(ctx context.Context) error) {
	if a.opts.Offline {
		return
	}
	if err := fn(ctx); err != nil {
		a.out.warn(what, err)
	}
}
