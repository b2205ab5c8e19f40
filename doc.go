// Package lloyd clusters points in d-dimensional space with Lloyd's k-means
// algorithm.
//
// # Quick Start
//
//	ds, _ := dataset.ReadFile("points.csv")
//	res, err := lloyd.Cluster(ctx, ds, 3)
//	if err != nil {
//	    return err // invalid input, nothing was clustered
//	}
//	fmt.Println(res.Assignments, res.Status)
//
// # Algorithm
//
// Point i is first assigned to cluster i mod k. Each pass then
//
//  1. recomputes every centroid as the mean of its points, and
//  2. moves every point to its nearest centroid (Euclidean distance,
//     lowest index on ties).
//
// The run converges after the first pass that moves no point, or stops at the
// iteration cap (WithMaxIterations, default 100). Hitting the cap still
// returns the last assignment, flagged StatusIterationLimitReached.
//
// A cluster that loses all its points keeps its previous centroid, so no
// NaN ever reaches a distance computation.
//
// # Concurrency
//
// Both passes run on a bounded set of goroutines (WithWorkers). The dataset
// and centroids are shared read-only; each goroutine writes a disjoint range
// of the assignment vector. Results are identical for any worker count.
//
// # Observability
//
//	metrics := &lloyd.BasicMetricsCollector{}
//	res, _ := lloyd.Cluster(ctx, ds, 3,
//	    lloyd.WithLogger(lloyd.NewTextLogger(slog.LevelDebug)),
//	    lloyd.WithMetricsCollector(metrics),
//	)
package lloyd
