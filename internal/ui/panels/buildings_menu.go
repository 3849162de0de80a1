package panels

import (
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/ui"
)

const (
	cardHeight = 56
	cardGap    = 6
	titleBlock = 40
)

// BuildingsMenu lists the buildings that can be placed on an empty tile.
// Clicking a card requests that building.
type BuildingsMenu struct {
	Panel
	data ui.BuildingsMenuData
	log  logrus.FieldLogger
}

// NewBuildingsMenu creates the menu anchored for the given screen size.
func NewBuildingsMenu(renderer render.Renderer, screenWidth, screenHeight int, log logrus.FieldLogger) *BuildingsMenu {
	if log == nil {
		log = logrus.StandardLogger()
	}
	m := &BuildingsMenu{
		Panel: newPanel(renderer, screenWidth, screenHeight),
		log:   log.WithField("component", KeyBuildingsMenu),
	}
	m.layout()
	return m
}

// Key implements ui.Component.
func (m *BuildingsMenu) Key() string { return KeyBuildingsMenu }

// Init implements ui.Component. data must be ui.BuildingsMenuData.
func (m *BuildingsMenu) Init(data any) {
	m.Update(data)
}

// Update implements ui.Component.
func (m *BuildingsMenu) Update(data any) {
	d, ok := data.(ui.BuildingsMenuData)
	if !ok {
		m.log.Warnf("Unexpected data type %T", data)
		return
	}
	m.data = d
	m.layout()
}

// SetScreenSize re-anchors the menu.
func (m *BuildingsMenu) SetScreenSize(width, height int) {
	m.Panel.SetScreenSize(width, height)
	m.layout()
}

func (m *BuildingsMenu) layout() {
	m.Height = titleBlock + len(m.data.Cards)*(cardHeight+cardGap) + m.padding
}

// CardRect returns the rectangle of card i.
func (m *BuildingsMenu) CardRect(i int) image.Rectangle {
	x := m.X + m.padding
	y := m.Y + titleBlock + i*(cardHeight+cardGap)
	return image.Rect(x, y, m.X+m.Width-m.padding, y+cardHeight)
}

// Click implements ui.Component.
func (m *BuildingsMenu) Click(x, y int) {
	pt := image.Pt(x, y)
	if pt.In(m.CloseButton()) {
		m.emitClose()
		return
	}
	for i, card := range m.data.Cards {
		if !pt.In(m.CardRect(i)) {
			continue
		}
		req := ui.BuildRequest{Blueprint: card.Name}
		m.each(func(ev ui.ComponentEvents) {
			if ev.OnBuild != nil {
				ev.OnBuild(req)
			}
		})
		return
	}
}

// Draw implements ui.Component.
func (m *BuildingsMenu) Draw(screen render.Image) {
	title := m.data.Title
	if title == "" {
		title = "Build"
	}
	m.drawFrame(screen, title)

	for i, card := range m.data.Cards {
		r := m.CardRect(i)
		border := m.borderColor
		nameColor := m.accentColor
		if !card.Affordable {
			border = m.disabledColor
			nameColor = m.dimColor
		}
		fillRect(m.renderer, screen, r, color.RGBA{30, 30, 45, 255})
		strokeRect(m.renderer, screen, r, border)

		tx := r.Min.X + m.padding/2
		ty := r.Min.Y + 4
		m.renderer.DrawText(screen, card.Name, tx, ty, nameColor, textScale)
		m.renderer.DrawText(screen, "Cost: "+card.Cost, tx, ty+m.lineHeight, m.textColor, textScale*0.85)
		m.renderer.DrawText(screen, "Makes: "+card.Production, tx, ty+2*m.lineHeight-2, m.dimColor, textScale*0.85)
	}
}
