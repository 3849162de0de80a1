package tiles

import (
	"fmt"
	"time"

	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/ui"
	"chosenoffset.com/tilecity/internal/ui/panels"
	"chosenoffset.com/tilecity/internal/world"
)

// Clock returns the current simulation time.
type Clock func() time.Duration

// BuildingTile is a placed building. Clicking it opens the building panel
// for the building recorded in the tile state.
type BuildingTile struct {
	blueprint city.Blueprint
	city      *city.City
	clock     Clock
	state     world.TileState
}

// NewBuildingTile creates the tile for a blueprint.
func NewBuildingTile(bp city.Blueprint, c *city.City, clock Clock) *BuildingTile {
	if clock == nil {
		clock = func() time.Duration { return 0 }
	}
	return &BuildingTile{blueprint: bp, city: c, clock: clock}
}

func (t *BuildingTile) ID() int { return t.blueprint.TileID }

func (t *BuildingTile) Name() string { return t.blueprint.Name }

// Blueprint implements Producible.
func (t *BuildingTile) Blueprint() city.Blueprint { return t.blueprint }

// Component implements Clickable.
func (t *BuildingTile) Component() string {
	if t.blueprint.Component != "" {
		return t.blueprint.Component
	}
	return panels.KeyBuildingPanel
}

// Open shows the building. It refuses when the state carries no known
// building.
func (t *BuildingTile) Open(c ui.Component, state world.TileState) bool {
	info, ok := t.info(state)
	if !ok {
		return false
	}
	t.state = state
	c.Init(info)
	return true
}

// Refresh pushes current workers and progress to the panel.
func (t *BuildingTile) Refresh(c ui.Component) {
	if info, ok := t.info(t.state); ok {
		c.Update(info)
	}
}

// Close returns the state the tile was opened with.
func (t *BuildingTile) Close(c ui.Component) world.TileState {
	return t.state
}

func (t *BuildingTile) info(state world.TileState) (ui.BuildingInfo, bool) {
	b, ok := t.city.Building(state.BuildingID)
	if !ok {
		return ui.BuildingInfo{}, false
	}
	bp := b.Blueprint
	return ui.BuildingInfo{
		Name:        bp.Name,
		Description: bp.Description,
		Production:  fmt.Sprintf("%s every %s", bp.Production, bp.ProductionTime),
		Workers:     b.Workers(),
		MaxWorkers:  bp.MaxWorkers,
		Idle:        t.city.Idle(),
		Paused:      b.Paused(),
		Progress:    b.Progress(t.clock()),
	}, true
}
