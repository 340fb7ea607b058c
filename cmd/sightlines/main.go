// Command sightlines sweeps viewpoints inside a grid map and reports the
// angular gaps left open by its walls.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"chosenoffset.com/sightlines/internal/config"
	"chosenoffset.com/sightlines/internal/core/walls"
	"chosenoffset.com/sightlines/internal/gapplot"
	"chosenoffset.com/sightlines/internal/monitoring"
	"chosenoffset.com/sightlines/internal/sweep"
	"chosenoffset.com/sightlines/internal/world/gridmap"
)

type flags struct {
	configPath  string
	mapPath     string
	x, y        float64
	maxDistance float64
	outPath     string
	plotPath    string
	workers     int
	verbose     bool
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("sightlines", flag.ContinueOnError)
	f := &flags{}
	fs.StringVar(&f.configPath, "config", "", "Sweep config file (.json, .yaml or .yml)")
	fs.StringVar(&f.mapPath, "map", "", "Grid map JSON (overrides config)")
	fs.Float64Var(&f.x, "x", math.NaN(), "Viewpoint X; with -y replaces the configured viewpoints")
	fs.Float64Var(&f.y, "y", math.NaN(), "Viewpoint Y")
	fs.Float64Var(&f.maxDistance, "max-distance", math.NaN(), "Maximum visible distance, negative for unbounded")
	fs.StringVar(&f.outPath, "out", "", "Result JSON path (default stdout)")
	fs.StringVar(&f.plotPath, "plot", "", "Gap chart path (.png, .svg or .pdf)")
	fs.IntVar(&f.workers, "workers", 0, "Viewpoints swept in parallel")
	fs.BoolVar(&f.verbose, "v", false, "Log per-octant progress")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// resolveConfig loads the config file, if any, and applies flag overrides
func resolveConfig(f *flags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.mapPath != "" {
		cfg.MapPath = f.mapPath
	}
	if !math.IsNaN(f.x) || !math.IsNaN(f.y) {
		if math.IsNaN(f.x) || math.IsNaN(f.y) {
			return nil, fmt.Errorf("-x and -y must be given together")
		}
		cfg.Viewpoints = []config.Viewpoint{{X: f.x, Y: f.y}}
	}
	if !math.IsNaN(f.maxDistance) {
		cfg.Sweep.MaxDistance = f.maxDistance
	}
	if f.outPath != "" {
		cfg.OutputPath = f.outPath
	}
	if f.plotPath != "" {
		cfg.PlotPath = f.plotPath
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.verbose {
		cfg.Verbose = true
	}

	if cfg.MapPath == "" {
		return nil, fmt.Errorf("a map is required (-map or map_path)")
	}
	if len(cfg.Viewpoints) == 0 {
		return nil, fmt.Errorf("at least one viewpoint is required (-x/-y or viewpoints)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	grid, err := gridmap.LoadMap(cfg.MapPath)
	if err != nil {
		return err
	}

	obstacles := walls.Segments(walls.FromGrid(grid))
	monitoring.Logf("Loaded %s: %dx%d cells, %d walls", cfg.MapPath, grid.Width(), grid.Height(), len(obstacles))

	opts := sweep.Options{
		MaxDistance: cfg.Sweep.MaxDistance,
		Tolerance:   cfg.Sweep.Tolerance,
		Targets:     cfg.TargetPoints(),
		Verbose:     cfg.Verbose,
	}
	results, err := sweep.Batch(ctx, cfg.ViewpointPoints(), obstacles, opts, cfg.Workers)
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	data = append(data, '\n')

	if cfg.OutputPath == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	} else {
		if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		monitoring.Logf("Wrote %d results to %s", len(results), cfg.OutputPath)
	}

	if cfg.PlotPath != "" {
		for i, res := range results {
			path := plotPathFor(cfg.PlotPath, i, len(results))
			if err := gapplot.Save(path, res); err != nil {
				return err
			}
			monitoring.Logf("Wrote gap chart %s", path)
		}
	}

	return nil
}

// plotPathFor numbers the chart files when there is more than one viewpoint
func plotPathFor(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	monitoring.SetVerbose(cfg.Verbose)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
