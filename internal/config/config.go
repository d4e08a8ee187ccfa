// Package config loads the CLI-tunables (obstacle_probability,
// grid_rows, grid_cols, agents_per_case, time_limit_seconds,
// search_depth_limit, use_pca_star) from a YAML file via
// gopkg.in/yaml.v3, the structured-config convention katalvlaran-lvlath
// also uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every CLI-tunable this package loads from a file. Zero
// values are meaningful defaults only where noted. cmd/mapfcbs does
// not call Load and has no --config flag; its flags carry their own
// defaults.
type Config struct {
	ObstacleProbability float64 `yaml:"obstacle_probability"`
	GridRows            int     `yaml:"grid_rows"`
	GridCols            int     `yaml:"grid_cols"`
	AgentsPerCase       int     `yaml:"agents_per_case"`
	TimeLimitSeconds    float64 `yaml:"time_limit_seconds"`
	SearchDepthLimit    int     `yaml:"search_depth_limit"`
	UsePCAStar          bool    `yaml:"use_pca_star"`
}

// Default returns the conservative defaults that Load starts from.
func Default() Config {
	return Config{
		ObstacleProbability: 0.2,
		GridRows:            32,
		GridCols:            32,
		AgentsPerCase:       10,
		TimeLimitSeconds:    30,
		SearchDepthLimit:    30000, // matches original_source/MS_Project/Macros.h SEARCH_DEPTH
		UsePCAStar:          true,
	}
}

// Load reads and parses a YAML config file, starting from Default()
// so any field the file omits keeps its default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
