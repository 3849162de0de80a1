package panels

import (
	"fmt"
	"image"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/ui"
)

// CityHeader is the always-visible bar across the top of the screen showing
// stocks and population. It is drawn by the world, not mounted on tiles.
type CityHeader struct {
	Panel
	data  ui.HeaderData
	title cases.Caser
	log   logrus.FieldLogger
}

// NewCityHeader creates a header spanning the screen width.
func NewCityHeader(renderer render.Renderer, screenWidth, screenHeight int, log logrus.FieldLogger) *CityHeader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &CityHeader{
		Panel: newPanel(renderer, screenWidth, screenHeight),
		title: cases.Title(language.English),
		log:   log.WithField("component", KeyCityHeader),
	}
	h.SetScreenSize(screenWidth, screenHeight)
	return h
}

// Key implements ui.Component.
func (h *CityHeader) Key() string { return KeyCityHeader }

// Init implements ui.Component. data must be ui.HeaderData.
func (h *CityHeader) Init(data any) { h.Update(data) }

// Update implements ui.Component.
func (h *CityHeader) Update(data any) {
	d, ok := data.(ui.HeaderData)
	if !ok {
		h.log.Warnf("Unexpected data type %T", data)
		return
	}
	h.data = d
}

// Data returns what the header currently shows.
func (h *CityHeader) Data() ui.HeaderData { return h.data }

// Click implements ui.Component. The header is not interactive.
func (h *CityHeader) Click(x, y int) {}

// SetScreenSize stretches the header across the top edge.
func (h *CityHeader) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
	h.X, h.Y = 0, 0
	h.Width = width
	h.Height = headerHeight
}

// Text returns the header line.
func (h *CityHeader) Text() string {
	parts := make([]string, 0, len(h.data.Resources)+1)
	for _, r := range h.data.Resources {
		parts = append(parts, fmt.Sprintf("%s %s", h.title.String(r.Name), r.Amount))
	}
	parts = append(parts, fmt.Sprintf("Population %d (%d working)", h.data.Population, h.data.Workers))
	return strings.Join(parts, "   ")
}

// Draw implements ui.Component.
func (h *CityHeader) Draw(screen render.Image) {
	fillRect(h.renderer, screen, h.Bounds(), h.bgColor)
	line := image.Rect(0, h.Height-1, h.Width, h.Height)
	fillRect(h.renderer, screen, line, h.borderColor)

	_, th := h.renderer.MeasureText("Hg", textScale)
	ty := (h.Height - th) / 2
	h.renderer.DrawText(screen, h.Text(), h.padding, ty, h.textColor, textScale)

	if h.data.Stats != "" {
		w, _ := h.renderer.MeasureText(h.data.Stats, textScale)
		h.renderer.DrawText(screen, h.data.Stats, h.Width-w-h.padding, ty, h.dimColor, textScale)
	}
}
