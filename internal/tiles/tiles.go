// Package tiles defines what map tiles can do when clicked and keeps the
// registry that maps tile IDs to their behaviour.
package tiles

import (
	"fmt"
	"sort"

	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/ui"
	"chosenoffset.com/tilecity/internal/world"
)

// Tile is a kind of map cell, identified by its tileset ID.
type Tile interface {
	ID() int
	Name() string
}

// Clickable tiles name the UI component they open.
type Clickable interface {
	Tile
	Component() string
}

// StatefulUI tiles drive a mounted component and hand back their state on
// close.
type StatefulUI interface {
	Clickable
	Open(c ui.Component, state world.TileState) bool
	Refresh(c ui.Component)
	Close(c ui.Component) world.TileState
}

// Producible tiles stand for a building type.
type Producible interface {
	Tile
	Blueprint() city.Blueprint
}

// Registry maps tile IDs to tile behaviour.
type Registry struct {
	tiles map[int]Tile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tiles: make(map[int]Tile)}
}

// Register adds a tile. Each ID may be registered once.
func (r *Registry) Register(t Tile) error {
	if t.ID() <= 0 {
		return fmt.Errorf("tile %s: invalid id %d", t.Name(), t.ID())
	}
	if existing, ok := r.tiles[t.ID()]; ok {
		return fmt.Errorf("tile id %d already registered to %s", t.ID(), existing.Name())
	}
	r.tiles[t.ID()] = t
	return nil
}

// Lookup returns the tile registered for id.
func (r *Registry) Lookup(id int) (Tile, bool) {
	t, ok := r.tiles[id]
	return t, ok
}

// IDs returns the registered IDs in ascending order.
func (r *Registry) IDs() []int {
	ids := make([]int, 0, len(r.tiles))
	for id := range r.tiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// RegisterDefaults registers a land tile for every buildable ID and a
// building tile for every blueprint in the city catalog.
func RegisterDefaults(r *Registry, c *city.City, clock Clock, buildable map[int]string) error {
	ids := make([]int, 0, len(buildable))
	for id := range buildable {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if err := r.Register(NewLandTile(id, buildable[id], c)); err != nil {
			return err
		}
	}
	for _, bp := range c.Blueprints() {
		if err := r.Register(NewBuildingTile(bp, c, clock)); err != nil {
			return err
		}
	}
	return nil
}
