package kmeans

import (
	"context"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/distance"
)

// Nearest returns the index of the centroid closest to p and its squared
// distance. Ties go to the lowest index.
func Nearest(p dataset.Point, centroids []dataset.Point) (int, float64) {
	best := 0
	minDist := math.Inf(1)

	for c, centroid := range centroids {
		d := distance.SquaredEuclidean(p, centroid)
		if d < minDist {
			minDist = d
			best = c
		}
	}

	return best, minDist
}

// ComputeAssignments moves every point in assign to its nearest centroid,
// in place, and reports whether any entry changed.
//
// Each chunk writes only its own indices; the changed flag is the only
// state shared between tasks.
func ComputeAssignments(ctx context.Context, data dataset.Dataset, centroids []dataset.Point, assign []int, opts Options) (bool, error) {
	opts = opts.normalized()

	var changed atomic.Bool

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, s := range split(len(data), opts.ChunkSize, 0) {
		g.Go(func() error {
			return opts.run(ctx, func() {
				moved := false
				for i := s.lo; i < s.hi; i++ {
					best, _ := Nearest(data[i], centroids)
					if assign[i] != best {
						assign[i] = best
						moved = true
					}
				}
				if moved {
					changed.Store(true)
				}
			})
		})
	}

	if err := g.Wait(); err != nil {
		return false, err
	}

	return changed.Load(), nil
}

// Inertia returns the sum of squared distances from every point to its
// assigned centroid.
func Inertia(data dataset.Dataset, centroids []dataset.Point, assign []int) float64 {
	var sum float64
	for i, p := range data {
		sum += distance.SquaredEuclidean(p, centroids[assign[i]])
	}
	return sum
}
