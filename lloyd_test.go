package lloyd

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/resource"
	"github.com/hupe1980/lloyd/testutil"
)

func TestCluster_ThreeBlobs(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		num    int
		spread float64
	}{
		{3, 1.0},
		{50, 1.0},
		{200, 1.0},
		{200, 2.0},
	} {
		ds, labels := testutil.WeylBlobs(testutil.ThreeBlobs, tt.num, tt.spread)

		res, err := Cluster(ctx, ds, 3, WithChunkSize(64))
		require.NoError(t, err)

		assert.Equal(t, StatusConverged, res.Status)
		assert.True(t, res.Converged())
		assert.Less(t, res.Iterations, DefaultMaxIterations)
		assert.True(t, testutil.SamePartition(labels, res.Assignments), "num=%d spread=%v", tt.num, tt.spread)
		assert.Equal(t, []int{tt.num, tt.num, tt.num}, sortedSizes(res.Sizes()))
	}
}

func TestCluster_NinePoints(t *testing.T) {
	ctx := context.Background()
	ds := dataset.Dataset{
		{-5.8, 6.1}, {-5.2, 6.9}, {-5.5, 6.4},
		{0.3, 0.7}, {0.9, 0.1}, {0.5, 0.5},
		{6.2, -5.9}, {6.8, -5.1}, {6.4, -5.6},
	}

	res, err := Cluster(ctx, ds, 3)
	require.NoError(t, err)

	require.Len(t, res.Assignments, 9)
	assert.True(t, testutil.SamePartition([]int{0, 0, 0, 1, 1, 1, 2, 2, 2}, res.Assignments))
	assert.Equal(t, 3, res.K())

	seen := map[int]bool{}
	for _, a := range res.Assignments {
		seen[a] = true
	}
	assert.Len(t, seen, 3)
}

func TestCluster_AssignmentsInRange(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(7)

	for _, k := range []int{1, 2, 5, 13} {
		ds := rng.UniformPoints(97, 3, -1, 1)
		res, err := Cluster(ctx, ds, k)
		require.NoError(t, err)
		require.Len(t, res.Assignments, len(ds))
		for _, a := range res.Assignments {
			assert.GreaterOrEqual(t, a, 0)
			assert.Less(t, a, k)
		}
	}
}

func TestCluster_KEqualsN(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewRNG(5).UniformPoints(25, 2, 0, 10)
	// Duplicate points make several clusters lose their only member.
	ds[3] = ds[0].Clone()
	ds[4] = ds[0].Clone()

	metrics := &BasicMetricsCollector{}
	res, err := Cluster(ctx, ds, len(ds), WithMetricsCollector(metrics))
	require.NoError(t, err)
	require.Len(t, res.Assignments, len(ds))

	for _, c := range res.Centroids {
		for _, v := range c {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
	assert.False(t, math.IsNaN(res.Inertia))
	assert.Positive(t, metrics.GetStats().EmptyClusters)
}

func TestCluster_Deterministic(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewRNG(9).UniformPoints(4000, 4, -50, 50)

	want, err := Cluster(ctx, ds, 8, WithWorkers(1))
	require.NoError(t, err)

	for _, opts := range [][]Option{
		{WithWorkers(1)},
		{WithWorkers(4), WithChunkSize(33)},
		{WithWorkers(16), WithChunkSize(1)},
	} {
		got, err := Cluster(ctx, ds, 8, opts...)
		require.NoError(t, err)
		assert.Equal(t, want.Assignments, got.Assignments)
		assert.Equal(t, want.Iterations, got.Iterations)
	}
}

func TestCluster_IterationLimit(t *testing.T) {
	ctx := context.Background()
	ds := testutil.NewRNG(3).UniformPoints(500, 2, 0, 100)

	res, err := Cluster(ctx, ds, 10, WithMaxIterations(1))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, StatusIterationLimitReached, res.Status)
	assert.False(t, res.Converged())
	assert.Len(t, res.Assignments, 500)
}

func TestCluster_SingleCluster(t *testing.T) {
	ctx := context.Background()
	ds := dataset.Dataset{{1, 1}, {3, 3}, {5, 5}}

	res, err := Cluster(ctx, ds, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, res.Assignments)
	assert.Equal(t, []dataset.Point{{3, 3}}, res.Centroids)
	assert.Equal(t, 1, res.Iterations)
	assert.InDelta(t, 16.0, res.Inertia, 1e-12)
}

func TestCluster_Preconditions(t *testing.T) {
	ctx := context.Background()
	ok := dataset.Dataset{{1, 2}, {3, 4}}

	tests := []struct {
		name string
		ds   dataset.Dataset
		k    int
		opts []Option
		want error
	}{
		{"empty", dataset.Dataset{}, 1, nil, ErrEmptyDataset},
		{"zero k", ok, 0, nil, ErrInvalidK},
		{"negative k", ok, -1, nil, ErrInvalidK},
		{"k > n", ok, 3, nil, ErrTooManyClusters},
		{"nan", dataset.Dataset{{1, math.NaN()}}, 1, nil, ErrNonFiniteValue},
		{"max iterations", ok, 1, []Option{WithMaxIterations(0)}, ErrInvalidMaxIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Cluster(ctx, tt.ds, tt.k, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}

	t.Run("ragged", func(t *testing.T) {
		_, err := Cluster(ctx, dataset.Dataset{{1, 2}, {3}}, 1)
		var dm *ErrDimensionMismatch
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 1, dm.Index)
		assert.Equal(t, 2, dm.Expected)
		assert.Equal(t, 1, dm.Actual)

		var inner *dataset.ErrDimensionMismatch
		assert.ErrorAs(t, err, &inner)
	})

	t.Run("zero dimension", func(t *testing.T) {
		_, err := Cluster(ctx, dataset.Dataset{{}}, 1)
		var id *ErrInvalidDimension
		assert.ErrorAs(t, err, &id)
	})
}

func TestCluster_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metrics := &BasicMetricsCollector{}
	_, err := Cluster(ctx, testutil.NewRNG(1).UniformPoints(10, 2, 0, 1), 2, WithMetricsCollector(metrics))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), metrics.GetStats().RunErrors)
}

func TestCluster_MetricsAndLogging(t *testing.T) {
	ctx := context.Background()
	ds, _ := testutil.NewRNG(2).Blobs(testutil.ThreeBlobs, 30, 0.5)

	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := &BasicMetricsCollector{}

	res, err := Cluster(ctx, ds, 3, WithLogger(logger), WithMetricsCollector(metrics))
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(res.Iterations), stats.Iterations)
	assert.Equal(t, int64(1), stats.Runs)
	assert.Equal(t, int64(1), stats.Converged)
	assert.Zero(t, stats.RunErrors)

	out := buf.String()
	assert.Contains(t, out, "iteration completed")
	assert.Contains(t, out, "clustering converged")
	assert.Contains(t, out, "k=3")
}

func TestCluster_ResourceController(t *testing.T) {
	ctx := context.Background()
	ds, labels := testutil.WeylBlobs(testutil.ThreeBlobs, 200, 1.0)

	t.Run("fits", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20, MaxWorkers: 1})

		res, err := Cluster(ctx, ds, 3, WithResourceController(rc), WithWorkers(4), WithChunkSize(64))
		require.NoError(t, err)
		assert.True(t, testutil.SamePartition(labels, res.Assignments))

		// Everything is returned once the run ends.
		assert.Zero(t, rc.MemoryUsage())
		assert.Zero(t, rc.ActiveWorkers())
	})

	t.Run("too small", func(t *testing.T) {
		rc := resource.NewController(resource.Config{MemoryLimitBytes: 64})

		_, err := Cluster(ctx, ds, 3, WithResourceController(rc))
		assert.ErrorIs(t, err, ErrInsufficientMemory)
		assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
		assert.Zero(t, rc.MemoryUsage())
	})
}

func TestResult_Members(t *testing.T) {
	res := &Result{
		Assignments: []int{1, 0, 1, 1},
		Centroids:   []dataset.Point{{0}, {1}},
	}

	assert.Equal(t, []uint32{1}, res.Members(0).ToArray())
	assert.Equal(t, []uint32{0, 2, 3}, res.Members(1).ToArray())
	assert.Equal(t, []int{1, 3}, res.Sizes())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "running", StatusRunning.String())
	assert.Equal(t, "converged", StatusConverged.String())
	assert.Equal(t, "iteration_limit_reached", StatusIterationLimitReached.String())
	assert.Equal(t, "Unknown(9)", Status(9).String())
}

func sortedSizes(sizes []int) []int {
	out := append([]int(nil), sizes...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
