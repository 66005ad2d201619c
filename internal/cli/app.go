package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/pomoquest/internal/config"
	"github.com/osse101/pomoquest/internal/domain"
	"github.com/osse101/pomoquest/internal/localstore"
	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/progression"
	"github.com/osse101/pomoquest/internal/remote"
	"github.com/osse101/pomoquest/internal/syncqueue"
)

// app is everything one command invocation works with
type app struct {
	opts   *RootOptions
	userID string
	engine progression.Engine
	store  localstore.Store
	remote *remote.Client
	queue  *syncqueue.Queue
	out    *output
}

func openApp(cmd *cobra.Command, opts *RootOptions) (*app, error) {
	ctx := cmd.Context()
	out := &output{format: opts.Format, w: cmd.OutOrStdout(), errW: cmd.ErrOrStderr()}

	userID := opts.UserID
	if opts.Demo {
		userID = domain.DemoUserID
	}
	if userID == "" {
		return nil, NewExitError(ExitUsage, ErrMsgUserRequired)
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		return nil, WrapExitError(ExitUsage, ErrMsgLoadTimezone, err)
	}
	engine, err := progression.NewEngine(loc)
	if err != nil {
		return nil, WrapExitError(ExitFailure, ErrMsgOpenEngine, err)
	}

	var store localstore.Store
	if opts.Demo {
		store = localstore.NewMemoryStore()
	} else {
		sqlite, err := localstore.NewSQLiteStore(ctx, opts.DBPath)
		if err != nil {
			return nil, WrapExitError(ExitFailure, ErrMsgOpenStore, err)
		}
		store = sqlite
	}
	logger.FromContext(ctx).Debug(LogMsgStoreOpened, "path", opts.DBPath, "demo", opts.Demo)

	client := remote.NewClient(opts.ServerURL, opts.APIKey, opts.Timeout)
	queue, err := syncqueue.Open(ctx, userID, engine, store, client, out)
	if err != nil {
		_ = store.Close()
		return nil, WrapExitError(ExitFailure, ErrMsgOpenQueue, err)
	}

	return &app{
		opts:   opts,
		userID: userID,
		engine: engine,
		store:  store,
		remote: client,
		queue:  queue,
		out:    out,
	}, nil
}

func (a *app) Close() error {
	a.queue.Wait()
	return a.store.Close()
}

// withApp opens the app for the duration of fn
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(cmd.Context(), a)
}

func (a *app) settings(ctx context.Context) (config.Settings, error) {
	settings := config.DefaultSettings()
	if _, err := a.store.Get(ctx, domain.SettingsKey(a.userID), &settings); err != nil {
		return settings, err
	}
	return settings, nil
}
