package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := "obstacle_probability: 0.35\nagents_per_case: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.35, cfg.ObstacleProbability)
	require.Equal(t, 7, cfg.AgentsPerCase)
	require.Equal(t, Default().GridRows, cfg.GridRows, "untouched field should keep its default")
}
