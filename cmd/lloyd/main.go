// Package main provides the lloyd k-means CLI tool.
//
// Usage:
//
//	lloyd [flags] <command> [args]
//
// Commands:
//
//	gen     - Write N points per blob around (-6,6), (0,0), (6,-6) to a CSV file
//	cluster - Cluster a CSV file into K groups and print the assignments
//
// Examples:
//
//	lloyd gen 1000 points.csv
//	lloyd cluster points.csv 3
//	0,0,0,1,1,1,2,2,2
//
// Files ending in .zst or .lz4 are compressed transparently.
package main

import (
	"fmt"
	"os"

	"github.com/hupe1980/lloyd/cmd/lloyd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
