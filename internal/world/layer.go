package world

import (
	"image"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
)

const (
	selectionInset = 5
	selectionWidth = 10
)

// SelectionColor is the highlight drawn around the selected tile.
var SelectionColor = color.RGBA{255, 255, 255, 200}

// Layer is one plane of tile IDs drawn from a single tileset. It renders into
// an offscreen cache and only redraws when marked dirty.
type Layer struct {
	level   int
	grid    [][]int
	tileset *Tileset
	log     logrus.FieldLogger

	renderer  render.Renderer
	cache     render.Image
	dirty     bool
	selection *image.Point
	redraws   int
}

// NewLayer creates a layer over grid[row][col]. The grid is copied; its
// dimensions are fixed from here on.
func NewLayer(level int, grid [][]int, tileset *Tileset, log logrus.FieldLogger) *Layer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	cp := make([][]int, len(grid))
	for r, row := range grid {
		cp[r] = append([]int(nil), row...)
	}
	return &Layer{
		level:   level,
		grid:    cp,
		tileset: tileset,
		log:     log.WithFields(logrus.Fields{"component": "layer", "level": level}),
		dirty:   true,
	}
}

// Init allocates the cache and performs the initial draw.
func (l *Layer) Init(renderer render.Renderer) {
	l.renderer = renderer
	w, h := l.PixelSize()
	l.cache = renderer.NewImage(w, h)
	l.dirty = true
	l.Draw()
}

// Level returns the layer's draw order.
func (l *Layer) Level() int { return l.level }

// Tileset returns the tileset the layer draws from.
func (l *Layer) Tileset() *Tileset { return l.tileset }

// Size returns the grid dimensions.
func (l *Layer) Size() (cols, rows int) {
	if len(l.grid) == 0 {
		return 0, 0
	}
	return len(l.grid[0]), len(l.grid)
}

// PixelSize returns the size of the layer in pixels.
func (l *Layer) PixelSize() (width, height int) {
	cols, rows := l.Size()
	ts := l.tileset.TileSize()
	return cols * ts, rows * ts
}

// Contains reports whether (col, row) lies inside the grid.
func (l *Layer) Contains(col, row int) bool {
	cols, rows := l.Size()
	return col >= 0 && row >= 0 && col < cols && row < rows
}

// TileID returns the tile at (col, row). Bounds are not checked.
func (l *Layer) TileID(col, row int) int {
	return l.grid[row][col]
}

// SetTileID replaces the tile at (col, row) and schedules a redraw.
func (l *Layer) SetTileID(col, row, id int) {
	l.grid[row][col] = id
	l.dirty = true
}

// SetSelection highlights the tile at (col, row).
func (l *Layer) SetSelection(col, row int) {
	l.selection = &image.Point{X: col, Y: row}
	l.dirty = true
}

// ClearSelection removes the highlight.
func (l *Layer) ClearSelection() {
	if l.selection == nil {
		return
	}
	l.selection = nil
	l.dirty = true
}

// Selection returns the highlighted tile, if any.
func (l *Layer) Selection() (col, row int, ok bool) {
	if l.selection == nil {
		return 0, 0, false
	}
	return l.selection.X, l.selection.Y, true
}

// Dirty reports whether the cache is stale.
func (l *Layer) Dirty() bool { return l.dirty }

// Redraws returns how many times the cache has been rebuilt.
func (l *Layer) Redraws() int { return l.redraws }

// Cache returns the rendered layer.
func (l *Layer) Cache() render.Image { return l.cache }

// Update is called once per simulation step.
func (l *Layer) Update(delta, timestamp time.Duration) {}

// Draw rebuilds the cache if the layer is dirty and reports whether it did.
func (l *Layer) Draw() bool {
	if !l.dirty || l.cache == nil {
		return false
	}

	l.cache.Clear()
	ts := l.tileset.TileSize()
	for row, ids := range l.grid {
		for col, id := range ids {
			if id == 0 {
				continue
			}
			l.cache.DrawImage(l.tileset.Tile(id), render.TranslateOptions(float64(col*ts), float64(row*ts)))
		}
	}

	if l.selection != nil {
		x := float32(l.selection.X*ts + selectionInset)
		y := float32(l.selection.Y*ts + selectionInset)
		size := float32(ts - 2*selectionInset)
		l.renderer.StrokeRect(l.cache, x, y, size, size, selectionWidth, SelectionColor)
	}

	l.dirty = false
	l.redraws++
	l.log.Debugf("Redrew layer (%d redraws)", l.redraws)
	return true
}
