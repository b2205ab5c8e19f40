// Package config loads the YAML configuration of the lloyd command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the file-level configuration of the lloyd command.
//
//	max_iterations: 100
//	workers: 8
//	chunk_size: 1024
//	memory_limit_bytes: 1073741824
//	log:
//	  level: info
//	  format: text
type Config struct {
	MaxIterations    int       `yaml:"max_iterations"`
	Workers          int       `yaml:"workers"`
	ChunkSize        int       `yaml:"chunk_size"`
	MemoryLimitBytes int64     `yaml:"memory_limit_bytes"`
	Log              LogConfig `yaml:"log"`
}

// LogConfig selects the logger the command builds.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
// Workers and ChunkSize of 0 mean "library default"; MemoryLimitBytes of 0
// means unlimited.
func Default() Config {
	return Config{
		MaxIterations: 100,
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return errors.New("max_iterations must be positive")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.ChunkSize < 0 {
		return errors.New("chunk_size must not be negative")
	}
	if c.MemoryLimitBytes < 0 {
		return errors.New("memory_limit_bytes must not be negative")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
