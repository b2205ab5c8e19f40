// Package dataset holds the point data that lloyd clusters and the file
// formats used to move it in and out of the process.
//
// # Files
//
// Datasets are stored as CSV with a single header row and one record per
// point. Every column must parse as a float64. Files ending in ".zst" or
// ".lz4" are transparently (de)compressed:
//
//	ds, err := dataset.ReadFile("points.csv.zst")
//	err = dataset.WriteFile("copy.csv.lz4", ds)
//
// # Synthetic Data
//
// Generate produces blobs of uniformly jittered points around fixed centers,
// which is what the "lloyd gen" command writes:
//
//	rng := rand.New(rand.NewPCG(seed, seed))
//	ds := dataset.Generate(rng, dataset.DefaultCenters, 100)
package dataset
