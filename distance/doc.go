// Package distance provides the Euclidean distance used for clustering.
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	d2 := distance.SquaredEuclidean(a, b) // same ordering, no sqrt
package distance
