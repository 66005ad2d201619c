package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osse101/pomoquest/internal/config"
	"github.com/osse101/pomoquest/internal/domain"
)

// NewSettingsCommand creates the settings command group
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change timer settings",
	}
	cmd.AddCommand(newSettingsShowCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	return cmd
}

func newSettingsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current timer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				settings, err := a.settings(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgSettingsLoad, err)
				}
				return a.out.emit(settings, func(w io.Writer) { printSettings(w, settings) })
			})
		},
	}
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	var values config.Settings

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change timer settings; only the flags given are updated",
		Long: `Change timer settings. Only flags passed on the command line are applied.

Examples:
  pomoctl settings set --focus 50 --short-break 10
  pomoctl settings set --sound=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := patchFromFlags(cmd.Flags(), values)
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				current, err := a.settings(ctx)
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgSettingsLoad, err)
				}
				merged, err := current.Merge(patch)
				if errors.Is(err, domain.ErrInvalidSettings) {
					return WrapExitError(ExitUsage, ErrMsgInvalidSettings, err)
				}
				if err != nil {
					return WrapExitError(ExitFailure, ErrMsgSettingsSave, err)
				}
				if err := a.store.Set(ctx, domain.SettingsKey(a.userID), merged); err != nil {
					return WrapExitError(ExitFailure, ErrMsgSettingsSave, err)
				}
				return a.out.emit(merged, func(w io.Writer) { printSettings(w, merged) })
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&values.FocusMinutes, "focus", 0, "focus minutes (1-120)")
	f.IntVar(&values.ShortBreakMinutes, "short-break", 0, "short break minutes (1-30)")
	f.IntVar(&values.LongBreakMinutes, "long-break", 0, "long break minutes (1-60)")
	f.IntVar(&values.SessionsBeforeLongBreak, "sessions-before-long-break", 0, "focus sessions before a long break (1-12)")
	f.BoolVar(&values.AutoStartBreaks, "auto-start-breaks", false, "start breaks automatically")
	f.BoolVar(&values.AutoStartFocus, "auto-start-focus", false, "start focus automatically")
	f.BoolVar(&values.Sound, "sound", false, "play a sound when a session ends")
	f.BoolVar(&values.Vibration, "vibration", false, "vibrate when a session ends")

	return cmd
}

// patchFromFlags keeps only the flags the user actually passed
func patchFromFlags(f *pflag.FlagSet, v config.Settings) config.SettingsPatch {
	var p config.SettingsPatch
	if f.Changed("focus") {
		p.FocusMinutes = &v.FocusMinutes
	}
	if f.Changed("short-break") {
		p.ShortBreakMinutes = &v.ShortBreakMinutes
	}
	if f.Changed("long-break") {
		p.LongBreakMinutes = &v.LongBreakMinutes
	}
	if f.Changed("sessions-before-long-break") {
		p.SessionsBeforeLongBreak = &v.SessionsBeforeLongBreak
	}
	if f.Changed("auto-start-breaks") {
		p.AutoStartBreaks = &v.AutoStartBreaks
	}
	if f.Changed("auto-start-focus") {
		p.AutoStartFocus = &v.AutoStartFocus
	}
	if f.Changed("sound") {
		p.Sound = &v.Sound
	}
	if f.Changed("vibration") {
		p.Vibration = &v.Vibration
	}
	return p
}

func printSettings(w io.Writer, s config.Settings) {
	fmt.Fprintf(w, "Focus:        %d min\n", s.FocusMinutes)
	fmt.Fprintf(w, "Short break:  %d min\n", s.ShortBreakMinutes)
	fmt.Fprintf(w, "Long break:   %d min (after %d sessions)\n", s.LongBreakMinutes, s.SessionsBeforeLongBreak)
	fmt.Fprintf(w, "Auto-start:   breaks=%t focus=%t\n", s.AutoStartBreaks, s.AutoStartFocus)
	fmt.Fprintf(w, "Alerts:       sound=%t vibration=%t\n", s.Sound, s.Vibration)
}
