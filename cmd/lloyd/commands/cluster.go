package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/codec"
	"github.com/hupe1980/lloyd/dataset"
	"github.com/hupe1980/lloyd/resource"
)

// report is what --output writes.
type report struct {
	Input         string          `json:"input"`
	K             int             `json:"k"`
	Points        int             `json:"points"`
	Dimension     int             `json:"dimension"`
	Status        string          `json:"status"`
	Iterations    int             `json:"iterations"`
	Inertia       float64         `json:"inertia"`
	Sizes         []int           `json:"sizes"`
	Assignments   []int           `json:"assignments"`
	Centroids     []dataset.Point `json:"centroids"`
	CentroidTimeS float64         `json:"t_means"`
	AssignTimeS   float64         `json:"t_ind"`
	TotalTimeS    float64         `json:"t_total"`
}

func newClusterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster <FILE> <K>",
		Short: "Cluster a CSV dataset into K groups",
		Long: `Cluster the points in FILE into K groups and print the cluster index of
every point, in input order, as one comma-separated line.

Point i starts in cluster i mod K. The run stops when no point changes
cluster or after --max-iterations passes; in the latter case a warning is
logged and the last assignment is still printed.

Example:
  lloyd cluster points.csv 3
  lloyd cluster points.csv.zst 3 --output report.json --workers 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			k, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("K must be an integer, got %q", args[1])
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("max-iterations") {
				if cfg.MaxIterations, err = cmd.Flags().GetInt("max-iterations"); err != nil {
					return fmt.Errorf("failed to read 'max-iterations' flag: %w", err)
				}
			}
			if cmd.Flags().Changed("workers") {
				if cfg.Workers, err = cmd.Flags().GetInt("workers"); err != nil {
					return fmt.Errorf("failed to read 'workers' flag: %w", err)
				}
			}
			if cmd.Flags().Changed("chunk-size") {
				if cfg.ChunkSize, err = cmd.Flags().GetInt("chunk-size"); err != nil {
					return fmt.Errorf("failed to read 'chunk-size' flag: %w", err)
				}
			}

			if cmd.Flags().Changed("memory-limit") {
				if cfg.MemoryLimitBytes, err = cmd.Flags().GetInt64("memory-limit"); err != nil {
					return fmt.Errorf("failed to read 'memory-limit' flag: %w", err)
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			output, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to read 'output' flag: %w", err)
			}
			c, err := reportCodec(cmd, output)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ds, err := dataset.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}

			opts := []lloyd.Option{
				lloyd.WithMaxIterations(cfg.MaxIterations),
				lloyd.WithWorkers(cfg.Workers),
				lloyd.WithChunkSize(cfg.ChunkSize),
				lloyd.WithLogger(logger),
			}
			if cfg.MemoryLimitBytes > 0 {
				opts = append(opts, lloyd.WithResourceController(resource.NewController(resource.Config{
					MemoryLimitBytes: cfg.MemoryLimitBytes,
				})))
			}

			start := time.Now()
			res, err := lloyd.Cluster(cmd.Context(), ds, k, opts...)
			if err != nil {
				return err
			}
			total := time.Since(start)

			logger.InfoContext(cmd.Context(), "clustered",
				"points", ds.Len(),
				"t_total", total,
			)

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), formatAssignments(res.Assignments)); err != nil {
				return err
			}

			if output == "" {
				return nil
			}
			rep := report{
				Input:         path,
				K:             k,
				Points:        ds.Len(),
				Dimension:     ds.Dim(),
				Status:        res.Status.String(),
				Iterations:    res.Iterations,
				Inertia:       res.Inertia,
				Sizes:         res.Sizes(),
				Assignments:   res.Assignments,
				Centroids:     res.Centroids,
				CentroidTimeS: res.CentroidTime.Seconds(),
				AssignTimeS:   res.AssignmentTime.Seconds(),
				TotalTimeS:    total.Seconds(),
			}
			data, err := c.Marshal(rep)
			if err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Int("max-iterations", lloyd.DefaultMaxIterations, "maximum number of passes")
	cmd.Flags().Int("workers", 0, "maximum concurrent goroutines per pass (default: GOMAXPROCS)")
	cmd.Flags().Int("chunk-size", 0, "points per assignment task (default: 1024)")
	cmd.Flags().Int64("memory-limit", 0, "refuse runs whose working set exceeds this many bytes (default: unlimited)")
	cmd.Flags().StringP("output", "o", "", "write a report to this file")
	cmd.Flags().String("codec", "", "report codec: json, go-json, msgpack (default: by file extension)")
	return cmd
}

// reportCodec picks --codec if given, otherwise the codec matching output.
func reportCodec(cmd *cobra.Command, output string) (codec.Codec, error) {
	name, err := cmd.Flags().GetString("codec")
	if err != nil {
		return nil, fmt.Errorf("failed to read 'codec' flag: %w", err)
	}
	if name == "" {
		return codec.ForPath(output), nil
	}
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown codec %q", name)
	}
	return c, nil
}

func formatAssignments(assign []int) string {
	var sb strings.Builder
	for i, a := range assign {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(a))
	}
	return sb.String()
}
