// Package logging holds the process-wide slog logger. It starts as a text
// logger on stderr and is replaced once runtime settings are loaded.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level  string    // debug|info|warn|error, anything else is info
	JSON   bool      // JSON lines instead of key=value text
	Output io.Writer // defaults to stderr
}

var current atomic.Pointer[slog.Logger]

func Configure(opts Options) {
	current.Store(newLogger(opts))
}

func newLogger(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: parseLevel(opts.Level)}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, ho))
	}
	return slog.New(slog.NewTextHandler(out, ho))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// L returns the configured logger, or the stderr default before Configure.
func L() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	l := newLogger(Options{})
	if current.CompareAndSwap(nil, l) {
		return l
	}
	return current.Load()
}

// ForTable tags every record with the table being processed.
func ForTable(name string) *slog.Logger {
	return L().With("table", name)
}
