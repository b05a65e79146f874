package trustgraph

import (
	"context"
	"log/slog"
	"os"

	"github.com/paymolabs/trustgraph/model"
)

// Logger wraps slog.Logger with trustgraph-specific context.
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

// WithUser adds a user field to the logger.
func (l *Logger) WithUser(u model.UserID) *Logger {
	return &Logger{
		Logger: l.Logger.With("user", u.String()),
	}
}

// LogEvaluate logs the evaluation of one live payment.
func (l *Logger) LogEvaluate(ctx context.Context, from, to model.UserID, degree model.Degree, direct bool) {
	if direct {
		l.DebugContext(ctx, "existing direct connection",
			"from", from.String(),
			"to", to.String(),
		)
		return
	}

	l.DebugContext(ctx, "payment evaluated",
		"from", from.String(),
		"to", to.String(),
		"degree", degree.String(),
	)
}

// LogBulkLoad logs a historic bulk-load operation.
func (l *Logger) LogBulkLoad(ctx context.Context, pairs, inserted int) {
	l.InfoContext(ctx, "historic payments loaded",
		"pairs", pairs,
		"edges_inserted", inserted,
	)
}

// LogSnapshot logs a snapshot export or restore operation.
func (l *Logger) LogSnapshot(ctx context.Context, name string, edges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"name", name,
			"edges", edges,
		)
	}
}
