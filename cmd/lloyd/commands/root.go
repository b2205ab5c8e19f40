package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/internal/config"
)

// Execute runs the lloyd command tree.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lloyd",
		Short: "Cluster points with Lloyd's k-means algorithm",
		Long: `lloyd clusters points read from a CSV file into k groups.

The CSV file must have a header row and one numeric column per dimension.
Files ending in .zst or .lz4 are (de)compressed transparently.

Settings can be read from a YAML file with --config:

  max_iterations: 100
  workers: 8
  memory_limit_bytes: 1073741824
  log:
    level: info
    format: text`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "YAML configuration file")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "", "log format: text, json")

	root.AddCommand(newGenCommand(), newClusterCommand())
	return root
}

// loadConfig reads --config (if set) and applies the persistent log flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to read 'config' flag: %w", err)
	}
	if path != "" {
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if cmd.Flags().Changed("log-level") {
		if cfg.Log.Level, err = cmd.Flags().GetString("log-level"); err != nil {
			return cfg, fmt.Errorf("failed to read 'log-level' flag: %w", err)
		}
	}
	if cmd.Flags().Changed("log-format") {
		if cfg.Log.Format, err = cmd.Flags().GetString("log-format"); err != nil {
			return cfg, fmt.Errorf("failed to read 'log-format' flag: %w", err)
		}
	}

	return cfg, nil
}

// newLogger builds the logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, w io.Writer) (*lloyd.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case config.FormatJSON:
		return lloyd.NewLogger(slog.NewJSONHandler(w, opts)), nil
	case config.FormatText, "":
		return lloyd.NewLogger(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
}
