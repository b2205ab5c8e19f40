package lloyd

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIteration is called after each centroid/assignment pass.
	RecordIteration(centroidTime, assignTime time.Duration, changed bool)

	// RecordEmptyCluster is called once per cluster that received no points in a pass.
	RecordEmptyCluster()

	// RecordRun is called when a run ends. err is nil if a result was produced.
	RecordRun(iterations int, status Status, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(time.Duration, time.Duration, bool) {}
func (NoopMetricsCollector) RecordEmptyCluster()                                {}
func (NoopMetricsCollector) RecordRun(int, Status, time.Duration, error)        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Iterations        atomic.Int64
	CentroidNanos     atomic.Int64
	AssignNanos       atomic.Int64
	EmptyClusters     atomic.Int64
	Runs              atomic.Int64
	RunErrors         atomic.Int64
	Converged         atomic.Int64
	IterationLimitHit atomic.Int64
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(centroidTime, assignTime time.Duration, _ bool) {
	b.Iterations.Add(1)
	b.CentroidNanos.Add(centroidTime.Nanoseconds())
	b.AssignNanos.Add(assignTime.Nanoseconds())
}

// RecordEmptyCluster implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmptyCluster() {
	b.EmptyClusters.Add(1)
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ int, status Status, _ time.Duration, err error) {
	b.Runs.Add(1)
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch status {
	case StatusConverged:
		b.Converged.Add(1)
	case StatusIterationLimitReached:
		b.IterationLimitHit.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	iterations := b.Iterations.Load()
	stats := BasicMetricsStats{
		Iterations:        iterations,
		EmptyClusters:     b.EmptyClusters.Load(),
		Runs:              b.Runs.Load(),
		RunErrors:         b.RunErrors.Load(),
		Converged:         b.Converged.Load(),
		IterationLimitHit: b.IterationLimitHit.Load(),
	}
	if iterations > 0 {
		stats.CentroidAvgNanos = b.CentroidNanos.Load() / iterations
		stats.AssignAvgNanos = b.AssignNanos.Load() / iterations
	}
	return stats
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Iterations        int64
	CentroidAvgNanos  int64
	AssignAvgNanos    int64
	EmptyClusters     int64
	Runs              int64
	RunErrors         int64
	Converged         int64
	IterationLimitHit int64
}
