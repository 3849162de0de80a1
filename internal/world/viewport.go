package world

import (
	"image"

	"chosenoffset.com/tilecity/internal/render"
)

// ViewportConfig describes the visible window and the world it scrolls over.
type ViewportConfig struct {
	Width       int
	Height      int
	WorldWidth  int
	WorldHeight int
	StartX      int
	StartY      int
}

// TileRange is an inclusive range of tile columns and rows.
type TileRange struct {
	StartCol, EndCol int
	StartRow, EndRow int
}

// Viewport is a scrolling window onto the world. Its offset is always kept
// inside [0, max(0, worldSize-viewportSize)] on each axis.
type Viewport struct {
	offsetX, offsetY int
	width, height    int
	worldWidth       int
	worldHeight      int
}

// NewViewport creates a viewport positioned at the (clamped) start offset.
func NewViewport(cfg ViewportConfig) *Viewport {
	v := &Viewport{
		width:       cfg.Width,
		height:      cfg.Height,
		worldWidth:  cfg.WorldWidth,
		worldHeight: cfg.WorldHeight,
	}
	v.offsetX = v.clampX(cfg.StartX)
	v.offsetY = v.clampY(cfg.StartY)
	return v
}

func clamp(value, limit int) int {
	if limit < 0 {
		limit = 0
	}
	if value > limit {
		value = limit
	}
	if value < 0 {
		value = 0
	}
	return value
}

func (v *Viewport) clampX(x int) int { return clamp(x, v.worldWidth-v.width) }

func (v *Viewport) clampY(y int) int { return clamp(y, v.worldHeight-v.height) }

// Move scrolls the viewport by (dx, dy), clamping each axis independently.
func (v *Viewport) Move(dx, dy int) {
	v.offsetX = v.clampX(v.offsetX + dx)
	v.offsetY = v.clampY(v.offsetY + dy)
}

// Resize changes the visible size and re-clamps the offset.
func (v *Viewport) Resize(width, height int) {
	v.width = width
	v.height = height
	v.offsetX = v.clampX(v.offsetX)
	v.offsetY = v.clampY(v.offsetY)
}

// Offset returns the top-left world pixel of the viewport.
func (v *Viewport) Offset() (x, y int) {
	return v.offsetX, v.offsetY
}

// Size returns the visible size in pixels.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// WorldSize returns the size of the world in pixels.
func (v *Viewport) WorldSize() (width, height int) {
	return v.worldWidth, v.worldHeight
}

// Rect returns the visible world rectangle in pixels.
func (v *Viewport) Rect() image.Rectangle {
	return image.Rect(v.offsetX, v.offsetY, v.offsetX+v.width, v.offsetY+v.height)
}

// TileRect returns the range of tiles that intersect the viewport.
func (v *Viewport) TileRect(tileSize int) TileRange {
	return TileRange{
		StartCol: v.offsetX / tileSize,
		EndCol:   (v.width + v.offsetX - 1) / tileSize,
		StartRow: v.offsetY / tileSize,
		EndRow:   (v.height + v.offsetY - 1) / tileSize,
	}
}

// CanvasToWorld converts a screen position to world pixels.
func (v *Viewport) CanvasToWorld(x, y int) (wx, wy int) {
	return x + v.offsetX, y + v.offsetY
}

// WorldToCanvas converts world pixels to a screen position.
func (v *Viewport) WorldToCanvas(wx, wy int) (x, y int) {
	return wx - v.offsetX, wy - v.offsetY
}

// CanvasToTile converts a screen position to the tile under it.
func (v *Viewport) CanvasToTile(x, y, tileSize int) (col, row int) {
	wx, wy := v.CanvasToWorld(x, y)
	return floorDiv(wx, tileSize), floorDiv(wy, tileSize)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Clear erases the destination surface.
func (v *Viewport) Clear(dst render.Image) {
	dst.Clear()
}

// Draw blits the visible portion of src onto dst at 1:1 scale.
func (v *Viewport) Draw(dst, src render.Image) {
	dst.DrawImage(src.SubImage(v.Rect()), nil)
}
