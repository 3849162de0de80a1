package world

import (
	"encoding/json"
	"fmt"
	"os"
)

// MapLayer is one plane of tile IDs indexed [row][col].
type MapLayer struct {
	Tileset string  `json:"tileset"`
	Tiles   [][]int `json:"tiles"`
}

// MapData represents a loaded map file.
type MapData struct {
	Name   string     `json:"name"`
	Width  int        `json:"width"`  // columns
	Height int        `json:"height"` // rows
	Layers []MapLayer `json:"layers"` // bottom layer first
}

// LoadMap reads and validates a map from a JSON file.
func LoadMap(mapPath string) (*MapData, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", mapPath, err)
	}

	if err := mapData.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", mapPath, err)
	}

	return &mapData, nil
}

// Validate checks that every layer matches the declared dimensions and
// holds no negative tile IDs.
func (m *MapData) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", m.Width, m.Height)
	}

	if len(m.Layers) == 0 {
		return fmt.Errorf("map has no layers")
	}

	for l, layer := range m.Layers {
		if len(layer.Tiles) != m.Height {
			return fmt.Errorf("layer %d height mismatch: expected %d, got %d", l, m.Height, len(layer.Tiles))
		}
		for r, row := range layer.Tiles {
			if len(row) != m.Width {
				return fmt.Errorf("layer %d width mismatch at row %d: expected %d, got %d", l, r, m.Width, len(row))
			}
			for c, id := range row {
				if id < 0 {
					return fmt.Errorf("layer %d: negative tile id %d at (%d, %d)", l, id, c, r)
				}
			}
		}
	}

	return nil
}

// CheckTiles fails on the first tile ID outside ts.
func (l MapLayer) CheckTiles(ts *Tileset) error {
	for r, row := range l.Tiles {
		for c, id := range row {
			if !ts.Contains(id) {
				cols, rows := ts.Grid()
				return fmt.Errorf("tile id %d at (%d, %d) is outside tileset %s (%dx%d)", id, c, r, ts.Key(), cols, rows)
			}
		}
	}
	return nil
}
