package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"q.log/tableau/simplex"
)

// SolverConfig is the optional YAML file passed with --config.
type SolverConfig struct {
	MaxIterations   int     `yaml:"max_iterations"`
	Tolerance       float64 `yaml:"tolerance"`
	RecordSnapshots bool    `yaml:"record_snapshots"`
}

func defaultSolverConfig() SolverConfig {
	return SolverConfig{
		MaxIterations: simplex.DefaultMaxIterations,
		Tolerance:     simplex.DefaultTolerance,
	}
}

// loadSolverConfig parses path over the defaults. Unknown keys are errors.
func loadSolverConfig(path string) (SolverConfig, error) {
	cfg := defaultSolverConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.MaxIterations <= 0 {
		return cfg, fmt.Errorf("config %s: max_iterations must be > 0, got %d", path, cfg.MaxIterations)
	}
	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("config %s: tolerance must be >= 0, got %v", path, cfg.Tolerance)
	}
	return cfg, nil
}

func (c SolverConfig) options() []simplex.Option {
	return []simplex.Option{
		simplex.WithMaxIterations(c.MaxIterations),
		simplex.WithTolerance(c.Tolerance),
		simplex.WithSnapshots(c.RecordSnapshots),
	}
}
