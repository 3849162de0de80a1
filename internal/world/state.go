package world

import "github.com/google/uuid"

// TileState is the per-tile record kept alongside the layers. Each record
// carries its own coordinates so it can be written back where it came from.
type TileState struct {
	Layer      int
	Col        int
	Row        int
	BuildingID uuid.UUID
}

// HasBuilding reports whether a building stands on the tile.
func (s TileState) HasBuilding() bool {
	return s.BuildingID != uuid.Nil
}

// State holds one TileState per cell of every layer, indexed
// [layer][row][col].
type State struct {
	tiles [][][]TileState
}

// NewState creates a state grid with every record tagged with its position.
func NewState(layers, cols, rows int) *State {
	tiles := make([][][]TileState, layers)
	for l := range tiles {
		tiles[l] = make([][]TileState, rows)
		for r := range tiles[l] {
			tiles[l][r] = make([]TileState, cols)
			for c := range tiles[l][r] {
				tiles[l][r][c] = TileState{Layer: l, Col: c, Row: r}
			}
		}
	}
	return &State{tiles: tiles}
}

// Get returns the record at (layer, col, row). Bounds are not checked.
func (s *State) Get(layer, col, row int) TileState {
	return s.tiles[layer][row][col]
}

// Set replaces the record at (layer, col, row). Bounds are not checked.
func (s *State) Set(state TileState, layer, col, row int) {
	s.tiles[layer][row][col] = state
}

// Layers returns the number of layers tracked.
func (s *State) Layers() int {
	return len(s.tiles)
}
