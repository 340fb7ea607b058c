// Package gridmap loads the cell grids that obstacle walls are traced from.
package gridmap

import (
	"encoding/json"
	"fmt"
	"os"
)

// Cell symbols understood in map rows
const (
	WallCell  = '#'
	FloorCell = '.'
)

// MapData represents the loaded map file
type MapData struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	CellSize float64  `json:"cell_size"` // World units per cell edge
	Rows     []string `json:"rows"`      // Height strings of Width cells, row 0 first
}

// Map represents a validated grid map
type Map struct {
	Data *MapData
}

// LoadMap loads a grid map from a JSON file
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	m, err := New(&mapData)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}
	return m, nil
}

// New wraps already decoded map data after validating it
func New(data *MapData) (*Map, error) {
	if err := validateMapData(data); err != nil {
		return nil, err
	}
	return &Map{Data: data}, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	if data.CellSize <= 0 {
		return fmt.Errorf("invalid cell size: %g", data.CellSize)
	}

	if len(data.Rows) != data.Height {
		return fmt.Errorf("rows height mismatch: expected %d, got %d", data.Height, len(data.Rows))
	}

	for y, row := range data.Rows {
		if len(row) != data.Width {
			return fmt.Errorf("rows width mismatch at row %d: expected %d, got %d", y, data.Width, len(row))
		}
		for x := 0; x < len(row); x++ {
			if row[x] != WallCell && row[x] != FloorCell {
				return fmt.Errorf("unknown cell %q at (%d, %d)", row[x], x, y)
			}
		}
	}

	return nil
}

// Width returns the number of cells per row
func (m *Map) Width() int { return m.Data.Width }

// Height returns the number of rows
func (m *Map) Height() int { return m.Data.Height }

// CellSize returns the world size of one cell edge
func (m *Map) CellSize() float64 { return m.Data.CellSize }

// CellAt returns the cell symbol at the given grid coordinates
func (m *Map) CellAt(x, y int) (byte, error) {
	if x < 0 || x >= m.Data.Width || y < 0 || y >= m.Data.Height {
		return 0, fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	return m.Data.Rows[y][x], nil
}

// BlocksSight returns whether the cell at the given coordinates blocks line of sight.
// Cells outside the map never block.
func (m *Map) BlocksSight(x, y int) bool {
	cell, err := m.CellAt(x, y)
	if err != nil {
		return false
	}
	return cell == WallCell
}
