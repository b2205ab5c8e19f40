package kmeans

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/lloyd/dataset"
)

// partial holds one chunk's per-cluster sums (k*dim, row-major) and counts.
type partial struct {
	sums   []float64
	counts []int
}

// ComputeCentroids returns the mean of every cluster under assign.
//
// A cluster with no points keeps its centroid from prev. If prev is nil
// (first pass) it is re-seeded with a copy of point c mod n. The indices of
// such empty clusters are returned alongside the centroids.
//
// Per-chunk partial sums are merged in chunk order.
func ComputeCentroids(ctx context.Context, data dataset.Dataset, assign []int, k int, prev []dataset.Point, opts Options) ([]dataset.Point, []int, error) {
	opts = opts.normalized()
	n := len(data)
	dim := len(data[0])

	spans := split(n, partialSize, maxPartials)
	partials := make([]partial, len(spans))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for c, s := range spans {
		g.Go(func() error {
			return opts.run(ctx, func() {
				p := partial{
					sums:   make([]float64, k*dim),
					counts: make([]int, k),
				}
				for i := s.lo; i < s.hi; i++ {
					cl := assign[i]
					row := p.sums[cl*dim : (cl+1)*dim]
					for j, v := range data[i] {
						row[j] += v
					}
					p.counts[cl]++
				}
				partials[c] = p
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sums := make([]float64, k*dim)
	counts := make([]int, k)
	for _, p := range partials {
		for i, v := range p.sums {
			sums[i] += v
		}
		for i, v := range p.counts {
			counts[i] += v
		}
	}

	var empty []int
	centroids := make([]dataset.Point, k)
	for c := range k {
		if counts[c] == 0 {
			empty = append(empty, c)
			if c < len(prev) && prev[c] != nil {
				centroids[c] = prev[c].Clone()
			} else {
				centroids[c] = data[c%n].Clone()
			}
			continue
		}

		centroid := make(dataset.Point, dim)
		count := float64(counts[c])
		for j := range centroid {
			centroid[j] = sums[c*dim+j] / count
		}
		centroids[c] = centroid
	}

	return centroids, empty, nil
}
