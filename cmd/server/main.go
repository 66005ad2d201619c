// @title pomoquest API
// @version 1.0
// @description Progression server for the pomoquest focus timer: XP, streaks, achievements and character evolution.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/pomoquest/internal/bootstrap"
	"github.com/osse101/pomoquest/internal/config"
	"github.com/osse101/pomoquest/internal/database"
	"github.com/osse101/pomoquest/internal/progression"
	"github.com/osse101/pomoquest/internal/server"
	"github.com/osse101/pomoquest/internal/session"
	"github.com/osse101/pomoquest/internal/sse"
	"github.com/osse101/pomoquest/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := cfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	applied, err := database.Migrate(ctx, dbPool)
	if err != nil {
		return err
	}
	slog.Info("Database migrated", "version", applied)

	repos, err := bootstrap.InitializeRepositories(ctx, cfg, dbPool)
	if err != nil {
		return err
	}

	engine, err := progression.NewEngine(cfg.Location())
	if err != nil {
		return err
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	bootstrap.RegisterEventHandlers(eventBus, hub)

	pool := worker.NewPool(cfg.WorkerPoolSize, worker.DefaultQueueSize)
	pool.Start()

	sessionService := session.NewService(repos.Progression, repos.Leaderboard, engine, publisher, pool, session.Config{
		ReplayCacheSize: cfg.IdempotencyCacheSize,
		ReplayCacheTTL:  cfg.IdempotencyCacheTTL,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}, dbPool, sessionService, hub)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "port", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		WorkerPool:         pool,
		Hub:                hub,
		ResilientPublisher: publisher,
		Repositories:       repos,
	})
	return err
}
