package kmeans

import (
	"context"
	"runtime"
)

const (
	// DefaultChunkSize is the number of points handled by one assignment task.
	DefaultChunkSize = 1024

	// partialSize is the number of points summed by one centroid task. It is
	// fixed so the summation order never depends on Options.
	partialSize = 1024

	// maxPartials bounds the number of per-chunk accumulators ComputeCentroids
	// allocates, each of which holds k*dim sums.
	maxPartials = 64
)

// Options controls how a pass is scheduled.
type Options struct {
	// Workers is the maximum number of concurrently running tasks.
	// If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// ChunkSize is the number of points per assignment task.
	// If <= 0, DefaultChunkSize is used.
	ChunkSize int

	// Limiter, if set, must grant a slot before every task runs.
	Limiter Limiter
}

// Limiter bounds the number of tasks running across several passes.
type Limiter interface {
	AcquireWorker(ctx context.Context) error
	ReleaseWorker()
}

// run executes fn inside a limiter slot, checking ctx first.
func (o Options) run(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.Limiter != nil {
		if err := o.Limiter.AcquireWorker(ctx); err != nil {
			return err
		}
		defer o.Limiter.ReleaseWorker()
	}
	fn()
	return nil
}

func (o Options) normalized() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	return o
}

// span is a half-open index range [lo, hi).
type span struct{ lo, hi int }

// split cuts [0, n) into at most limit contiguous spans of roughly size points.
func split(n, size, limit int) []span {
	parts := (n + size - 1) / size
	if limit > 0 && parts > limit {
		parts = limit
	}
	if parts < 1 {
		parts = 1
	}

	spans := make([]span, parts)
	step := (n + parts - 1) / parts
	for i := range spans {
		lo := min(i*step, n)
		spans[i] = span{lo: lo, hi: min(lo+step, n)}
	}
	return spans
}

// WorkingSetBytes estimates the memory ComputeCentroids and the convergence
// loop allocate for n points of dimension dim in k clusters.
func WorkingSetBytes(n, dim, k int) int64 {
	parts := int64(len(split(n, partialSize, maxPartials)))
	perCluster := int64(k) * (int64(dim) + 1) * 8 // sums and count
	return int64(n)*8 + // assignment vector
		(parts+1)*perCluster + // partials and merged totals
		2*int64(k)*int64(dim)*8 // current and previous centroids
}

// Seed returns the initial round-robin assignment: point i belongs to cluster i mod k.
func Seed(n, k int) []int {
	assign := make([]int, n)
	for i := range assign {
		assign[i] = i % k
	}
	return assign
}
