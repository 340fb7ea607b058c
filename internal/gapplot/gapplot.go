// Package gapplot charts the open gaps of a sweep, one row per octant, so a
// run can be checked by eye.
package gapplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"chosenoffset.com/sightlines/internal/core/sieve"
	"chosenoffset.com/sightlines/internal/sweep"
)

var (
	octantColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	finalColor  = color.RGBA{R: 220, G: 80, B: 60, A: 255}
)

// Save renders res to path. The image format follows the file extension.
// Row q shows the gaps still open after octant q was merged; the top row
// repeats the final gap set.
func Save(path string, res *sweep.Result) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Open gaps from (%.2f, %.2f)", res.Center.X, res.Center.Y)
	p.X.Label.Text = "angular parameter"
	p.Y.Label.Text = "after octant"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = -0.5, float64(sieve.NumOctants)+0.5
	p.Add(plotter.NewGrid())

	for _, oct := range res.Octants {
		if err := addRow(p, oct.Gaps, float64(oct.Octant), octantColor); err != nil {
			return fmt.Errorf("failed to plot octant %s: %w", oct.Name, err)
		}
	}
	if err := addRow(p, res.Gaps, float64(sieve.NumOctants), finalColor); err != nil {
		return fmt.Errorf("failed to plot final gaps: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save gap plot %s: %w", path, err)
	}
	return nil
}

func addRow(p *plot.Plot, gaps []sieve.Zone, row float64, c color.Color) error {
	for _, z := range gaps {
		line, err := plotter.NewLine(plotter.XYs{
			{X: z.Start, Y: row},
			{X: z.End, Y: row},
		})
		if err != nil {
			return err
		}
		line.Width = vg.Points(6)
		line.Color = c
		p.Add(line)
	}
	return nil
}
