package commands

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd/dataset"
)

func newGenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen <N> <FILE>",
		Short: "Generate a synthetic three-blob dataset",
		Long: `Generate N points around each of (-6,6), (0,0) and (6,-6).

Every coordinate is offset by a uniform random value in [0, 1). Points are
written grouped by blob, as CSV with an "x,y" header.

Example:
  lloyd gen 100 points.csv
  lloyd gen 100000 points.csv.zst --seed 42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("N must be a positive integer, got %q", args[0])
			}
			path := args[1]

			seed, err := cmd.Flags().GetUint64("seed")
			if err != nil {
				return fmt.Errorf("failed to read 'seed' flag: %w", err)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(seed, seed))
			ds := dataset.Generate(rng, dataset.DefaultCenters, n)
			if err := dataset.WriteFile(path, ds); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			logger.InfoContext(cmd.Context(), "dataset written",
				"path", path,
				"points", ds.Len(),
				"seed", seed,
				"compression", dataset.CompressionFor(path).String(),
			)
			return nil
		},
	}

	cmd.Flags().Uint64("seed", 0, "random seed (default: current time)")
	return cmd
}
