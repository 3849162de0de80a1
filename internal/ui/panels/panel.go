// Package panels provides the concrete UI components: the buildings menu,
// the building panel and the city header.
package panels

import (
	"image"
	"image/color"
	"strings"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/ui"
)

// Component keys referenced by tiles and configuration.
const (
	KeyBuildingsMenu = "buildings-menu"
	KeyBuildingPanel = "building-panel"
	KeyCityHeader    = "city-header"
)

const (
	panelWidth    = 300
	panelMargin   = 10
	closeSize     = 20
	buttonSize    = 28
	headerHeight  = 28
	textScale     = 1.0
	titleScale    = 1.2
	progressBarHt = 10
)

type subscription struct {
	id     int
	events ui.ComponentEvents
}

// subscribers fans component events out to every listener.
type subscribers struct {
	next int
	subs []subscription
}

// Subscribe registers listeners and returns a function that removes them.
func (s *subscribers) Subscribe(events ui.ComponentEvents) func() {
	id := s.next
	s.next++
	s.subs = append(s.subs, subscription{id: id, events: events})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of active listeners.
func (s *subscribers) Subscribers() int {
	return len(s.subs)
}

// each calls f for every listener. Listeners may unsubscribe from inside f.
func (s *subscribers) each(f func(ui.ComponentEvents)) {
	for _, sub := range append([]subscription(nil), s.subs...) {
		f(sub.events)
	}
}

func (s *subscribers) emitClose() {
	s.each(func(ev ui.ComponentEvents) {
		if ev.OnClose != nil {
			ev.OnClose()
		}
	})
}

// Panel holds the geometry and drawing helpers shared by the modal panels.
type Panel struct {
	X, Y          int
	Width, Height int

	renderer render.Renderer
	subscribers

	screenWidth  int
	screenHeight int

	// Visual settings
	bgColor       color.RGBA
	borderColor   color.RGBA
	textColor     color.RGBA
	dimColor      color.RGBA
	accentColor   color.RGBA
	disabledColor color.RGBA
	lineHeight    int
	padding       int
}

func newPanel(renderer render.Renderer, screenWidth, screenHeight int) Panel {
	p := Panel{
		Width:         panelWidth,
		renderer:      renderer,
		bgColor:       color.RGBA{20, 20, 30, 230},
		borderColor:   color.RGBA{60, 60, 80, 255},
		textColor:     color.RGBA{220, 220, 220, 255},
		dimColor:      color.RGBA{140, 140, 140, 255},
		accentColor:   color.RGBA{255, 255, 150, 255},
		disabledColor: color.RGBA{50, 50, 60, 255},
		lineHeight:    18,
		padding:       10,
	}
	p.SetScreenSize(screenWidth, screenHeight)
	return p
}

// SetScreenSize anchors the panel to the right edge below the header.
func (p *Panel) SetScreenSize(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
	p.X = width - p.Width - panelMargin
	if p.X < 0 {
		p.X = 0
	}
	p.Y = headerHeight + panelMargin
}

// Bounds returns the panel rectangle on screen.
func (p *Panel) Bounds() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
}

// Contains reports whether the screen point lies on the panel.
func (p *Panel) Contains(x, y int) bool {
	return image.Pt(x, y).In(p.Bounds())
}

// CloseButton returns the close button rectangle.
func (p *Panel) CloseButton() image.Rectangle {
	x := p.X + p.Width - p.padding - closeSize
	y := p.Y + p.padding
	return image.Rect(x, y, x+closeSize, y+closeSize)
}

func fillRect(r render.Renderer, dst render.Image, rect image.Rectangle, clr color.Color) {
	r.FillRect(dst, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), clr)
}

func strokeRect(r render.Renderer, dst render.Image, rect image.Rectangle, clr color.Color) {
	r.StrokeRect(dst, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), 1, clr)
}

// drawFrame draws the background, border, title and close button.
func (p *Panel) drawFrame(screen render.Image, title string) {
	fillRect(p.renderer, screen, p.Bounds(), p.bgColor)
	strokeRect(p.renderer, screen, p.Bounds(), p.borderColor)

	p.renderer.DrawText(screen, title, p.X+p.padding, p.Y+p.padding, p.accentColor, titleScale)
	p.drawButton(screen, p.CloseButton(), "x", true)
}

// drawButton draws a labelled button, centring the label.
func (p *Panel) drawButton(screen render.Image, r image.Rectangle, label string, enabled bool) {
	bg := p.borderColor
	fg := p.textColor
	if !enabled {
		bg = p.disabledColor
		fg = p.dimColor
	}
	fillRect(p.renderer, screen, r, bg)

	w, h := p.renderer.MeasureText(label, textScale)
	p.renderer.DrawText(screen, label, r.Min.X+(r.Dx()-w)/2, r.Min.Y+(r.Dy()-h)/2, fg, textScale)
}

// drawDivider draws a horizontal line across the panel.
func (p *Panel) drawDivider(screen render.Image, y int) {
	line := image.Rect(p.X+p.padding/2, y, p.X+p.Width-p.padding/2, y+1)
	fillRect(p.renderer, screen, line, p.borderColor)
}

// drawBar draws a progress bar filled to pct.
func (p *Panel) drawBar(screen render.Image, r image.Rectangle, pct float64, clr color.Color) {
	fillRect(p.renderer, screen, r, p.disabledColor)
	if pct <= 0 {
		return
	}
	if pct > 1 {
		pct = 1
	}
	fill := r
	fill.Max.X = r.Min.X + int(float64(r.Dx())*pct)
	if fill.Dx() < 1 {
		fill.Max.X = r.Min.X + 1
	}
	fillRect(p.renderer, screen, fill, clr)
}

// wrapText splits text into lines no wider than maxWidth.
func (p *Panel) wrapText(text string, maxWidth int) []string {
	var lines []string
	var current string

	for _, word := range strings.Fields(text) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if w, _ := p.renderer.MeasureText(candidate, textScale); w > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
