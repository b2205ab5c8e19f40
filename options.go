package lloyd

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/lloyd/resource"
)

// DefaultMaxIterations is the iteration cap used when none is configured.
const DefaultMaxIterations = 100

type options struct {
	maxIterations    int
	workers          int
	chunkSize        int
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
}

// Option configures a clustering run.
type Option func(*options)

// WithMaxIterations sets the number of centroid/assignment passes after
// which the run stops with StatusIterationLimitReached.
//
// Values < 1 make Cluster return ErrInvalidMaxIterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithWorkers bounds the number of goroutines used by each pass.
// If n <= 0, runtime.GOMAXPROCS(0) is used.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkSize sets the number of points handled by one task.
// Results do not depend on it; it only trades scheduling overhead
// against load balance. If n <= 0, 1024 is used.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, _ := lloyd.Cluster(ctx, ds, 3, lloyd.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Passes: %d, Avg assign: %dns\n", stats.Iterations, stats.AssignAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lloyd.NewJSONLogger(slog.LevelInfo)
//	res, _ := lloyd.Cluster(ctx, ds, 3, lloyd.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController shares a memory and worker budget between runs.
// The working set of a run is reserved up front; if it does not fit, Cluster
// fails with ErrInsufficientMemory. Every task of every pass holds one of the
// controller's worker slots while it runs.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxIterations:    DefaultMaxIterations,
		workers:          runtime.GOMAXPROCS(0),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
