package lloyd

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/internal/kmeans"
)

// Status is the state of the convergence loop.
type Status int

const (
	// StatusRunning means passes are still being executed.
	StatusRunning Status = iota
	// StatusConverged means the last pass moved no point.
	StatusConverged
	// StatusIterationLimitReached means the iteration cap was hit while points were still moving.
	StatusIterationLimitReached
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusIterationLimitReached:
		return "iteration_limit_reached"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Result is the outcome of a clustering run.
type Result struct {
	// Assignments holds the cluster index in [0, k) of every point.
	Assignments []int
	// Centroids are the centroids the final assignment pass was computed against.
	Centroids []dataset.Point
	// Iterations is the number of centroid/assignment passes executed.
	Iterations int
	// Status is StatusConverged or StatusIterationLimitReached.
	Status Status
	// Inertia is the sum of squared distances from each point to its centroid.
	Inertia float64
	// CentroidTime is the total time spent recomputing centroids.
	CentroidTime time.Duration
	// AssignmentTime is the total time spent resolving assignments.
	AssignmentTime time.Duration
}

// Converged reports whether the run stopped because no point moved.
func (r *Result) Converged() bool {
	return r.Status == StatusConverged
}

// K returns the number of clusters.
func (r *Result) K() int {
	return len(r.Centroids)
}

// Sizes returns the number of points in every cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, len(r.Centroids))
	for _, c := range r.Assignments {
		sizes[c]++
	}
	return sizes
}

// Members returns the indices of the points assigned to cluster c.
func (r *Result) Members(c int) *roaring.Bitmap {
	bm := roaring.New()
	for i, a := range r.Assignments {
		if a == c {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// Cluster partitions ds into k clusters with Lloyd's algorithm.
//
// Point i starts in cluster i mod k. Every pass recomputes the centroids from
// the current assignment and then moves each point to its nearest centroid,
// lowest index winning ties. The run ends after the first pass in which no
// point moves, or after the configured iteration cap. Hitting the cap is not
// an error: the last assignment is returned with StatusIterationLimitReached.
//
// Invalid input (empty dataset, ragged or non-finite points, k outside
// [1, len(ds)]) is rejected before any work starts.
func Cluster(ctx context.Context, ds dataset.Dataset, k int, optFns ...Option) (*Result, error) {
	o := applyOptions(optFns)
	start := time.Now()

	res, err := run(ctx, ds, k, o)

	var (
		iterations int
		status     Status
	)
	if res != nil {
		iterations, status = res.Iterations, res.Status
	}
	o.metricsCollector.RecordRun(iterations, status, time.Since(start), err)
	o.logger.LogRun(ctx, res, err)

	return res, err
}

func validate(ds dataset.Dataset, k, maxIterations int) (int, error) {
	dim, err := ds.Validate()
	if err != nil {
		return 0, translateError(err)
	}
	if k < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if k > len(ds) {
		return 0, fmt.Errorf("%w: k=%d, n=%d", ErrTooManyClusters, k, len(ds))
	}
	if maxIterations < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMaxIterations, maxIterations)
	}
	return dim, nil
}

func run(ctx context.Context, ds dataset.Dataset, k int, o options) (*Result, error) {
	dim, err := validate(ds, k, o.maxIterations)
	if err != nil {
		return nil, err
	}

	logger := o.logger.WithK(k).WithCount(len(ds)).WithDimension(dim)
	kopts := kmeans.Options{Workers: o.workers, ChunkSize: o.chunkSize}

	if o.resources != nil {
		need := kmeans.WorkingSetBytes(len(ds), dim, k)
		if err := o.resources.AcquireMemory(need); err != nil {
			return nil, fmt.Errorf("reserve %d bytes: %w", need, translateError(err))
		}
		defer o.resources.ReleaseMemory(need)

		kopts.Limiter = o.resources
	}

	res := &Result{
		Assignments: kmeans.Seed(len(ds), k),
		Status:      StatusRunning,
	}

	for res.Status == StatusRunning {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := time.Now()
		centroids, empty, err := kmeans.ComputeCentroids(ctx, ds, res.Assignments, k, res.Centroids, kopts)
		if err != nil {
			return nil, fmt.Errorf("compute centroids: %w", err)
		}
		centroidTime := time.Since(t)
		res.Centroids = centroids

		t = time.Now()
		changed, err := kmeans.ComputeAssignments(ctx, ds, centroids, res.Assignments, kopts)
		if err != nil {
			return nil, fmt.Errorf("compute assignments: %w", err)
		}
		assignTime := time.Since(t)

		res.Iterations++
		res.CentroidTime += centroidTime
		res.AssignmentTime += assignTime

		for _, c := range empty {
			logger.LogEmptyCluster(ctx, res.Iterations, c)
			o.metricsCollector.RecordEmptyCluster()
		}
		logger.LogIteration(ctx, res.Iterations, changed, centroidTime, assignTime)
		o.metricsCollector.RecordIteration(centroidTime, assignTime, changed)

		switch {
		case !changed:
			res.Status = StatusConverged
		case res.Iterations >= o.maxIterations:
			res.Status = StatusIterationLimitReached
		}
	}

	res.Inertia = kmeans.Inertia(ds, res.Centroids, res.Assignments)

	return res, nil
}
