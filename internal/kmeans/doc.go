// Package kmeans implements the two alternating passes of Lloyd's algorithm.
//
// ComputeCentroids averages the points of each cluster; ComputeAssignments
// moves every point to its nearest centroid and reports whether any point
// moved. Both split the dataset into fixed-size chunks processed by an
// errgroup, so the dataset and centroids are shared read-only and every
// write targets a slot owned by exactly one chunk.
//
// Centroid sums are accumulated over chunks whose boundaries depend only on
// the dataset size and are merged in chunk order, so results are
// bit-identical whatever Options are used.
package kmeans
