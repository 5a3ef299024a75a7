package engine

import (
	"context"
	"time"

	"brickset/internal/config"
	"brickset/internal/logging"
	"brickset/internal/pipeline"
	"brickset/internal/telemetry"
)

type Engine struct {
	runner   *pipeline.Runner
	metrics  *telemetry.Metrics
	settings config.Settings
}

func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		if err := e.runner.Close(); err != nil {
			logging.L().Warn("close runner", "err", err)
		}
	}()

	start := time.Now()
	sum, err := e.runner.Run(ctx)
	if err == nil {
		for _, s := range sum {
			logging.ForTable(s.Table).Info("table written", "rows", s.Rows, "columns", s.Columns)
		}
		logging.L().Info("run complete", "tables", len(sum), "elapsed", time.Since(start))
	}

	if path := e.settings.Metrics.Textfile; path != "" {
		if werr := e.metrics.WriteTextfile(path); werr != nil {
			logging.L().Warn("metrics textfile", "path", path, "err", werr)
		}
	}
	return err
}
