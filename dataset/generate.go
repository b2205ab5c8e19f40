package dataset

import "math/rand/v2"

// DefaultCenters are the blob centers written by "lloyd gen".
var DefaultCenters = []Point{{-6, 6}, {0, 0}, {6, -6}}

// Generate returns n points per center. Each point is its center plus a
// uniform [0, 1) offset in every coordinate. Points are grouped by center,
// in the order centers are given.
func Generate(rng *rand.Rand, centers []Point, n int) Dataset {
	ds := make(Dataset, 0, len(centers)*n)
	for _, c := range centers {
		for range n {
			p := make(Point, len(c))
			for j, v := range c {
				p[j] = v + rng.Float64()
			}
			ds = append(ds, p)
		}
	}
	return ds
}
