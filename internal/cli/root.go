package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/config"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	DBPath        string
	ServerURL     string
	APIKey        string
	UserID        string
	Demo          bool
	Offline       bool
	Format        string
	Timezone      string
	Timeout       time.Duration
	FlushInterval time.Duration
}

// NewRootCommand creates the pomoctl root command. cfg supplies flag defaults.
func NewRootCommand(cfg *config.ClientConfig) *cobra.Command {
	opts := &RootOptions{
		APIKey:        cfg.APIKey,
		Timezone:      cfg.Timezone,
		Timeout:       cfg.RequestTimeout,
		FlushInterval: cfg.FlushInterval,
	}

	cmd := &cobra.Command{
		Use:   "pomoctl",
		Short: "pomoctl - offline-first pomodoro progression client",
		Long: `Record completed pomodoro sessions, earn XP and achievements, and
evolve your character. Sessions are applied locally first and synced to the
server in order whenever it is reachable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf(ErrMsgInvalidFormat, opts.Format, ValidFormats))
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", cfg.DBPath, "path to the local SQLite store")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", cfg.ServerURL, "pomoquest server base URL")
	cmd.PersistentFlags().StringVar(&opts.UserID, "user", cfg.UserID, "user ID")
	cmd.PersistentFlags().BoolVar(&opts.Demo, "demo", cfg.Demo, "use the demo user with an in-memory store")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "never contact the server")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json)")

	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewFlushCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewAbilityCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewGameCommand(opts))
	cmd.AddCommand(NewLeaderboardCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}
