package engine

import (
	"context"
	"fmt"

	"brickset/internal/config"
	"brickset/internal/logging"
	"brickset/internal/pipeline"
	"brickset/internal/telemetry"
)

type Config struct {
	SettingsFile string // optional; missing file means defaults + env
	Job          []byte // job document, normally spec.DefaultJob
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	// 1. runtime settings + logging
	s, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	logging.Configure(logging.Options{Level: s.Log.Level, JSON: s.Log.JSON})

	// 2. job
	job, err := config.ParseJobSpec(cfg.Job)
	if err != nil {
		return nil, err
	}

	// 3. pipeline runner
	m := telemetry.New()
	runner, err := pipeline.Compile(job, s, m)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := ctx.Err(); err != nil {
		_ = runner.Close()
		return nil, err
	}

	return &Engine{
		runner:   runner,
		metrics:  m,
		settings: s,
	}, nil
}
