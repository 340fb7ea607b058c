package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightlines/internal/core/geometry"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.True(t, cfg.Unbounded())
	assert.Equal(t, 1e-9, cfg.Sweep.Tolerance)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigJSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "sweep.json", `{
		"map_path": "maps/office.json",
		"viewpoints": [{"x": 2.5, "y": 3.5}, {"x": 7, "y": 1}],
		"targets": [{"x": 9, "y": 9}],
		"workers": 4,
		"sweep": {"max_distance": 25}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "maps/office.json", cfg.MapPath)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Unbounded())
	assert.Equal(t, 25.0, cfg.Sweep.MaxDistance)
	assert.Equal(t, 1e-9, cfg.Sweep.Tolerance, "omitted fields keep their defaults")
	assert.Equal(t, []geometry.Point{{X: 2.5, Y: 3.5}, {X: 7, Y: 1}}, cfg.ViewpointPoints())
	assert.Equal(t, []geometry.Point{{X: 9, Y: 9}}, cfg.TargetPoints())
}

func TestLoadConfigYAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "sweep.yaml", `
map_path: maps/office.json
plot_path: out/gaps.svg
verbose: true
viewpoints:
  - x: 1
    y: 2
sweep:
  tolerance: 0.001
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "out/gaps.svg", cfg.PlotPath)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Unbounded())
	assert.Equal(t, 0.001, cfg.Sweep.Tolerance)
	assert.Equal(t, []geometry.Point{{X: 1, Y: 2}}, cfg.ViewpointPoints())
	assert.Nil(t, cfg.TargetPoints())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad extension", "sweep.toml", "workers = 2", "extension"},
		{"bad json", "sweep.json", "{", "failed to parse config"},
		{"bad yaml", "sweep.yml", "workers: [", "failed to parse config"},
		{"zero workers", "sweep.json", `{"workers": 0}`, "workers must be at least 1"},
		{"negative tolerance", "sweep.json", `{"sweep": {"tolerance": -1}}`, "tolerance must be non-negative"},
		{"bad plot format", "sweep.json", `{"plot_path": "gaps.gif"}`, "unsupported plot format"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigTooLarge(t *testing.T) {
	path := writeFile(t, "big.json", `{"map_path": "`+strings.Repeat("a", maxFileSize)+`"}`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}
