package lloyd_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/dataset"
)

func ExampleCluster() {
	ds := dataset.Dataset{
		{-5.8, 6.1}, {-5.2, 6.9}, {-5.5, 6.4},
		{0.3, 0.7}, {0.9, 0.1}, {0.5, 0.5},
		{6.2, -5.9}, {6.8, -5.1}, {6.4, -5.6},
	}

	res, err := lloyd.Cluster(context.Background(), ds, 3)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Assignments)
	fmt.Println(res.Status, res.Iterations)
	// Output:
	// [0 0 0 2 2 2 1 1 1]
	// converged 3
}

func ExampleResult_Members() {
	ds := dataset.Dataset{{0}, {10}, {1}, {11}}

	res, err := lloyd.Cluster(context.Background(), ds, 2)
	if err != nil {
		panic(err)
	}

	fmt.Println(res.Members(0).ToArray(), res.Members(1).ToArray())
	// Output: [0 2] [1 3]
}

func ExampleBasicMetricsCollector() {
	metrics := &lloyd.BasicMetricsCollector{}
	ds := dataset.Dataset{{0, 0}, {0, 1}, {5, 5}, {5, 6}}

	if _, err := lloyd.Cluster(context.Background(), ds, 2, lloyd.WithMetricsCollector(metrics)); err != nil {
		panic(err)
	}

	stats := metrics.GetStats()
	fmt.Println(stats.Runs, stats.Converged)
	// Output: 1 1
}
