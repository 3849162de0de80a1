package tiles

import (
	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/ui"
	"chosenoffset.com/tilecity/internal/ui/panels"
	"chosenoffset.com/tilecity/internal/world"
)

// LandTile is open ground. Clicking it offers the buildings menu.
type LandTile struct {
	id    int
	name  string
	city  *city.City
	state world.TileState
}

// NewLandTile creates a buildable land tile.
func NewLandTile(id int, name string, c *city.City) *LandTile {
	return &LandTile{id: id, name: name, city: c}
}

func (t *LandTile) ID() int { return t.id }

func (t *LandTile) Name() string { return t.name }

// Component implements Clickable.
func (t *LandTile) Component() string { return panels.KeyBuildingsMenu }

// Open fills the menu with the city's catalog. A tile that already holds a
// building refuses.
func (t *LandTile) Open(c ui.Component, state world.TileState) bool {
	if state.HasBuilding() {
		return false
	}
	t.state = state
	c.Init(t.menuData())
	return true
}

// Refresh re-evaluates which buildings are affordable.
func (t *LandTile) Refresh(c ui.Component) {
	c.Update(t.menuData())
}

// Close returns the state the tile was opened with.
func (t *LandTile) Close(c ui.Component) world.TileState {
	return t.state
}

func (t *LandTile) menuData() ui.BuildingsMenuData {
	blueprints := t.city.Blueprints()
	cards := make([]ui.BuildingCard, 0, len(blueprints))
	for _, bp := range blueprints {
		cards = append(cards, ui.BuildingCard{
			Name:       bp.Name,
			Cost:       bp.Cost.String(),
			Production: bp.Production.String(),
			Affordable: t.city.CanAfford(bp.Cost),
		})
	}
	return ui.BuildingsMenuData{Title: "Build on " + t.name, Cards: cards}
}
