package lloyd

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with lloyd-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogIteration logs one centroid/assignment pass.
func (l *Logger) LogIteration(ctx context.Context, iteration int, changed bool, centroidTime, assignTime time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"changed", changed,
		"centroid_time", centroidTime,
		"assign_time", assignTime,
	)
}

// LogEmptyCluster logs a cluster that received no points in a pass.
func (l *Logger) LogEmptyCluster(ctx context.Context, iteration, cluster int) {
	l.DebugContext(ctx, "empty cluster kept previous centroid",
		"iteration", iteration,
		"cluster", cluster,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, res *Result, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "clustering failed",
			"error", err,
		)
	case res.Status == StatusIterationLimitReached:
		l.WarnContext(ctx, "clustering stopped at iteration limit",
			"iterations", res.Iterations,
			"t_means", res.CentroidTime,
			"t_ind", res.AssignmentTime,
		)
	default:
		l.InfoContext(ctx, "clustering converged",
			"iterations", res.Iterations,
			"t_means", res.CentroidTime,
			"t_ind", res.AssignmentTime,
		)
	}
}
