package ecotab

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ecotab-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSamples adds a sample-count field to the logger.
func (l *Logger) WithSamples(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("samples", n),
	}
}

// WithFeatures adds a feature-count field to the logger.
func (l *Logger) WithFeatures(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("features", n),
	}
}

// LogLoad logs a table load operation.
func (l *Logger) LogLoad(ctx context.Context, path string, features, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"path", path,
			"features", features,
			"samples", samples,
		)
	}
}

// LogDissimilarity logs a dissimilarity-matrix load operation.
func (l *Logger) LogDissimilarity(ctx context.Context, path string, samples int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dissimilarity load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dissimilarity load completed",
			"path", path,
			"samples", samples,
		)
	}
}

// LogFilter logs a filter operation. Filtering is a pure in-memory
// transformation, so no context is threaded through.
func (l *Logger) LogFilter(axis string, before, after int, err error) {
	if err != nil {
		l.Error("filter failed",
			"axis", axis,
			"error", err,
		)
	} else {
		l.Debug("filter completed",
			"axis", axis,
			"before", before,
			"after", after,
		)
	}
}

// LogExport logs an export operation.
func (l *Logger) LogExport(ctx context.Context, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "export completed",
			"path", path,
		)
	}
}
