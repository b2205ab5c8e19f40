package benchmark_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/internal/kmeans"
	"github.com/hupe1980/lloyd/testutil"
)

func BenchmarkCluster(b *testing.B) {
	ctx := context.Background()

	for _, n := range []int{1_000, 10_000, 100_000} {
		ds, _ := testutil.NewRNG(42).Blobs(testutil.ThreeBlobs, n/3, 2.0)

		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("n=%d/workers=%d", n, workers), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					if _, err := lloyd.Cluster(ctx, ds, 3, lloyd.WithWorkers(workers)); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCluster_Dimension(b *testing.B) {
	ctx := context.Background()

	for _, dim := range []int{2, 16, 128} {
		ds := testutil.NewRNG(42).UniformPoints(10_000, dim, -1, 1)

		b.Run(fmt.Sprintf("dim=%d", dim), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := lloyd.Cluster(ctx, ds, 8, lloyd.WithMaxIterations(10)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComputeAssignments(b *testing.B) {
	ctx := context.Background()
	ds := testutil.NewRNG(42).UniformPoints(100_000, 8, -1, 1)
	centroids := testutil.NewRNG(7).UniformPoints(16, 8, -1, 1)
	assign := kmeans.Seed(len(ds), len(centroids))

	for _, chunk := range []int{256, 1024, 8192} {
		b.Run(fmt.Sprintf("chunk=%d", chunk), func(b *testing.B) {
			opts := kmeans.Options{ChunkSize: chunk}
			b.ReportAllocs()
			for b.Loop() {
				if _, err := kmeans.ComputeAssignments(ctx, ds, centroids, assign, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkComputeCentroids(b *testing.B) {
	ctx := context.Background()
	ds := testutil.NewRNG(42).UniformPoints(100_000, 8, -1, 1)
	assign := kmeans.Seed(len(ds), 16)
	var prev []dataset.Point

	b.ReportAllocs()
	for b.Loop() {
		var err error
		if prev, _, err = kmeans.ComputeCentroids(ctx, ds, assign, 16, prev, kmeans.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadFile(b *testing.B) {
	ds := testutil.NewRNG(42).UniformPoints(50_000, 2, -10, 10)

	for _, ext := range []string{".csv", ".csv.lz4", ".csv.zst"} {
		path := b.TempDir() + "/points" + ext
		if err := dataset.WriteFile(path, ds); err != nil {
			b.Fatal(err)
		}

		b.Run(ext, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := dataset.ReadFile(path); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
