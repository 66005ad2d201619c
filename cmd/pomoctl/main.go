package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/pomoquest/internal/cli"
	"github.com/osse101/pomoquest/internal/config"
	"github.com/osse101/pomoquest/internal/logger"
)

// version is set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.LoadClient()

	// Logs go to stderr so --format json output stays parseable
	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, config.DefaultClientServiceName, version, logger.EnvironmentCLI, false)
	logger.InitLoggerWithWriter(logCfg, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := cli.NewRootCommand(cfg)
	root.Version = version
	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
