// Package testutil provides testing utilities for lloyd.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	ds, labels := rng.Blobs(testutil.ThreeBlobs, 50, 0.5)
//
// # Checking Clusterings
//
//	ok := testutil.SamePartition(labels, result.Assignments)
package testutil
