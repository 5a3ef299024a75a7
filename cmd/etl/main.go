package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"brickset/internal/engine"
	"brickset/internal/logging"
	"brickset/internal/spec"
)

func main() {
	cfg := engine.Config{
		SettingsFile: "brickset.yml", // optional
		Job:          spec.DefaultJob,
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(ctx, cfg)
	if err != nil {
		logging.L().Error("bootstrap", "err", err)
		os.Exit(1)
	}

	if err := e.Run(ctx); err != nil {
		logging.L().Error("run failed", "err", err)
		stop()
		os.Exit(1)
	}
}
