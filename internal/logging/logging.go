// Package logging sets up the process-wide slog logger used by the pipeline,
// batch runner, watcher and CLI. Analyzers never log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init installs a text or JSON handler at the given level as the slog
// default. Output goes to os.Stderr unless a writer is supplied.
func Init(level slog.Level, format string, w ...io.Writer) {
	var out io.Writer = os.Stderr
	if len(w) > 0 && w[0] != nil {
		out = w[0]
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps a config level name to a slog level, defaulting to info
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// New returns the default logger tagged with a component name
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}
