// Package config loads the settings for a sightline sweep.
// Files may be JSON or YAML; fields left out keep their defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/sightlines/internal/core/geometry"
)

// maxFileSize caps how much a config file may hold (1MB)
const maxFileSize = 1 * 1024 * 1024

// Config holds everything a sweep run needs
type Config struct {
	MapPath    string      `json:"map_path" yaml:"map_path"`       // Grid map providing the obstacles
	OutputPath string      `json:"output_path" yaml:"output_path"` // Result JSON, stdout when empty
	PlotPath   string      `json:"plot_path" yaml:"plot_path"`     // Optional gap chart (.png, .svg, .pdf)
	Viewpoints []Viewpoint `json:"viewpoints" yaml:"viewpoints"`   // One sweep per viewpoint
	Targets    []Viewpoint `json:"targets" yaml:"targets"`         // Rays tested from every viewpoint
	Workers    int         `json:"workers" yaml:"workers"`         // Viewpoints swept in parallel
	Verbose    bool        `json:"verbose" yaml:"verbose"`

	Sweep SweepConfig `json:"sweep" yaml:"sweep"`
}

// SweepConfig tunes the sieve itself
type SweepConfig struct {
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"` // Negative disables the limit
	Tolerance   float64 `json:"tolerance" yaml:"tolerance"`       // Slack for ray/obstacle intersection
}

// Viewpoint is a world position in map units
type Viewpoint struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Point converts the viewpoint to a geometry point
func (v Viewpoint) Point() geometry.Point {
	return geometry.Point{X: v.X, Y: v.Y}
}

// DefaultConfig returns an unbounded sweep with a single worker
func DefaultConfig() *Config {
	return &Config{
		Workers: 1,
		Sweep: SweepConfig{
			MaxDistance: -1,
			Tolerance:   1e-9,
		},
	}
}

// LoadConfig loads a config from a .json, .yaml or .yml file on top of
// DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .json, .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig() // Start with defaults
	if ext == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	if c.Sweep.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %g", c.Sweep.Tolerance)
	}

	if c.PlotPath != "" {
		switch ext := strings.ToLower(filepath.Ext(c.PlotPath)); ext {
		case ".png", ".svg", ".pdf":
		default:
			return fmt.Errorf("unsupported plot format %q", ext)
		}
	}

	return nil
}

// Unbounded reports whether the sweep has no distance limit
func (c *Config) Unbounded() bool {
	return c.Sweep.MaxDistance < 0
}

// ViewpointPoints returns the viewpoints as geometry points
func (c *Config) ViewpointPoints() []geometry.Point {
	return toPoints(c.Viewpoints)
}

// TargetPoints returns the ray targets as geometry points
func (c *Config) TargetPoints() []geometry.Point {
	return toPoints(c.Targets)
}

func toPoints(vs []Viewpoint) []geometry.Point {
	if len(vs) == 0 {
		return nil
	}
	points := make([]geometry.Point, len(vs))
	for i, v := range vs {
		points[i] = v.Point()
	}
	return points
}
