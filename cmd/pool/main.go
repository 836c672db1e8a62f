package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/voetbalpool/voetbalpool/internal/app"
	"github.com/voetbalpool/voetbalpool/internal/config"
	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/scheduler"
	"github.com/voetbalpool/voetbalpool/internal/usecase"
)

const (
	exitOK        = 0
	exitConfig    = 1
	exitIntegrity = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return exitConfig
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer logger.Sync()
	logging.SetDefault(logger)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return exitConfig
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunInterval > 0 {
		return runScheduled(ctx, cfg, application, logger)
	}
	return runOnce(ctx, application, logger)
}

// runOnce executes a single pass and prints the approved snapshot on
// stdout. All diagnostics go to stderr.
func runOnce(ctx context.Context, application *app.App, logger *logging.Logger) int {
	result, err := application.Pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrIntegrity) {
			logger.Error("run rejected, previous snapshot kept", "error", err)
			return exitIntegrity
		}
		logger.Error("run failed", "error", err)
		return exitConfig
	}

	out, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("encode snapshot", "error", err)
		return exitConfig
	}
	fmt.Println(string(out))
	return exitOK
}

func runScheduled(ctx context.Context, cfg config.Config, application *app.App, logger *logging.Logger) int {
	sched, err := scheduler.New(application, cfg.RunInterval, logger)
	if err != nil {
		logger.Error("build scheduler", "error", err)
		return exitConfig
	}
	if err := sched.Start(ctx); err != nil {
		logger.Error("start scheduler", "error", err)
		return exitConfig
	}

	logger.Info("scheduler started", "interval", cfg.RunInterval)
	<-ctx.Done()

	if err := sched.Stop(); err != nil {
		logger.Error("scheduler shutdown failed", "error", err)
		return exitConfig
	}
	logger.Info("scheduler stopped")
	return exitOK
}
