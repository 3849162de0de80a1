package panels

import (
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/ui"
)

// BuildingPanel shows a placed building and lets the player staff it.
type BuildingPanel struct {
	Panel
	info        ui.BuildingInfo
	description []string
	log         logrus.FieldLogger
}

// NewBuildingPanel creates the panel anchored for the given screen size.
func NewBuildingPanel(renderer render.Renderer, screenWidth, screenHeight int, log logrus.FieldLogger) *BuildingPanel {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &BuildingPanel{
		Panel: newPanel(renderer, screenWidth, screenHeight),
		log:   log.WithField("component", KeyBuildingPanel),
	}
	p.layout()
	return p
}

// Key implements ui.Component.
func (p *BuildingPanel) Key() string { return KeyBuildingPanel }

// Init implements ui.Component. data must be ui.BuildingInfo.
func (p *BuildingPanel) Init(data any) {
	p.Update(data)
}

// Update implements ui.Component.
func (p *BuildingPanel) Update(data any) {
	info, ok := data.(ui.BuildingInfo)
	if !ok {
		p.log.Warnf("Unexpected data type %T", data)
		return
	}
	p.info = info
	p.description = p.wrapText(info.Description, p.Width-2*p.padding)
	p.layout()
}

// Info returns the data currently shown.
func (p *BuildingPanel) Info() ui.BuildingInfo { return p.info }

// SetScreenSize re-anchors the panel.
func (p *BuildingPanel) SetScreenSize(width, height int) {
	p.Panel.SetScreenSize(width, height)
	p.layout()
}

// body layout: title, description, production line, workers line, bar, buttons
func (p *BuildingPanel) workersY() int {
	return p.Y + titleBlock + len(p.description)*p.lineHeight + p.lineHeight + p.padding
}

func (p *BuildingPanel) layout() {
	p.Height = p.workersY() - p.Y + p.lineHeight + progressBarHt + p.padding + buttonSize + p.padding
}

// RemoveWorkerButton returns the "-" button rectangle.
func (p *BuildingPanel) RemoveWorkerButton() image.Rectangle {
	x := p.X + p.padding
	y := p.Y + p.Height - p.padding - buttonSize
	return image.Rect(x, y, x+buttonSize, y+buttonSize)
}

// AddWorkerButton returns the "+" button rectangle.
func (p *BuildingPanel) AddWorkerButton() image.Rectangle {
	r := p.RemoveWorkerButton()
	return r.Add(image.Pt(buttonSize+p.padding, 0))
}

// Click implements ui.Component.
func (p *BuildingPanel) Click(x, y int) {
	pt := image.Pt(x, y)
	switch {
	case pt.In(p.CloseButton()):
		p.emitClose()
	case pt.In(p.AddWorkerButton()):
		p.each(func(ev ui.ComponentEvents) {
			if ev.OnAddWorker != nil {
				ev.OnAddWorker()
			}
		})
	case pt.In(p.RemoveWorkerButton()):
		p.each(func(ev ui.ComponentEvents) {
			if ev.OnRemoveWorker != nil {
				ev.OnRemoveWorker()
			}
		})
	}
}

// Draw implements ui.Component.
func (p *BuildingPanel) Draw(screen render.Image) {
	p.drawFrame(screen, p.info.Name)

	x := p.X + p.padding
	y := p.Y + titleBlock
	for _, line := range p.description {
		p.renderer.DrawText(screen, line, x, y, p.textColor, textScale)
		y += p.lineHeight
	}
	p.renderer.DrawText(screen, "Produces "+p.info.Production, x, y, p.dimColor, textScale)

	y = p.workersY()
	p.drawDivider(screen, y-p.padding/2)
	status := ""
	if p.info.Paused {
		status = " - paused"
	}
	workers := fmt.Sprintf("Workers: %d/%d (%d idle)%s", p.info.Workers, p.info.MaxWorkers, p.info.Idle, status)
	p.renderer.DrawText(screen, workers, x, y, p.textColor, textScale)

	y += p.lineHeight
	bar := image.Rect(x, y, p.X+p.Width-p.padding, y+progressBarHt)
	barColor := color.RGBA{50, 180, 50, 255}
	if p.info.Paused {
		barColor = color.RGBA{200, 180, 50, 255}
	}
	p.drawBar(screen, bar, p.info.Progress, barColor)

	p.drawButton(screen, p.RemoveWorkerButton(), "-", p.info.Workers > 0)
	p.drawButton(screen, p.AddWorkerButton(), "+", p.info.Workers < p.info.MaxWorkers && p.info.Idle > 0)
}
