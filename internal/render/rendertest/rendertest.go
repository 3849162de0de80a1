// Package rendertest provides in-memory implementations of the render
// interfaces that record what was drawn, for use in tests.
package rendertest

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"chosenoffset.com/tilecity/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{} }
	}
}

// DrawCall records a single DrawImage invocation.
type DrawCall struct {
	Src    *Image
	Offset image.Point
}

// RectCall records a FillRect or StrokeRect invocation.
type RectCall struct {
	Dst         *Image
	Rect        image.Rectangle
	StrokeWidth float32
	Color       color.Color
}

// TextCall records a DrawText invocation.
type TextCall struct {
	Dst  *Image
	Text string
	At   image.Point
}

// Image is a render.Image that records operations instead of drawing.
type Image struct {
	Name   string
	bounds image.Rectangle
	parent *Image

	Draws    []DrawCall
	Clears   int
	Fills    []color.Color
	Disposed bool
}

// NewImage returns a recording image of the given size.
func NewImage(name string, width, height int) *Image {
	return &Image{Name: name, bounds: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.bounds }

func (i *Image) Size() (width, height int) { return i.bounds.Dx(), i.bounds.Dy() }

// SubImage returns a child image whose bounds are clipped to the parent.
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Name: fmt.Sprintf("%s%v", i.Name, r), bounds: r.Intersect(i.bounds), parent: i}
}

// Parent returns the image a sub-image was taken from.
func (i *Image) Parent() *Image { return i.parent }

func (i *Image) Fill(clr color.Color) { i.Fills = append(i.Fills, clr) }

func (i *Image) Clear() { i.Clears++ }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	call := DrawCall{Src: src.(*Image)}
	if opts != nil && opts.GeoM != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			call.Offset = image.Pt(int(g.TX), int(g.TY))
		}
	}
	i.Draws = append(i.Draws, call)
}

func (i *Image) Dispose() { i.Disposed = true }

// Reset forgets all recorded operations.
func (i *Image) Reset() {
	i.Draws = nil
	i.Clears = 0
	i.Fills = nil
}

// GeoM is a translate/scale-only matrix.
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *GeoM) Scale(sx, sy float64) { g.SX, g.SY = sx, sy }

func (g *GeoM) Reset() { *g = GeoM{} }

// Renderer records vector and text operations.
type Renderer struct {
	Images  []*Image
	Fills   []RectCall
	Strokes []RectCall
	Texts   []TextCall
}

// NewRenderer returns an empty recording renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) NewImage(width, height int) render.Image {
	img := NewImage(fmt.Sprintf("image%d", len(r.Images)), width, height)
	r.Images = append(r.Images, img)
	return img
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Fills = append(r.Fills, RectCall{
		Dst:   dst.(*Image),
		Rect:  image.Rect(int(x), int(y), int(x+width), int(y+height)),
		Color: clr,
	})
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	r.Strokes = append(r.Strokes, RectCall{
		Dst:         dst.(*Image),
		Rect:        image.Rect(int(x), int(y), int(x+width), int(y+height)),
		StrokeWidth: strokeWidth,
		Color:       clr,
	})
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, TextCall{Dst: dst.(*Image), Text: text, At: image.Pt(x, y)})
}

// MeasureText uses a fixed 7x14 cell per character.
func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	return int(float64(len(text)) * 7 * scale), int(14 * scale)
}

// Reset forgets all recorded vector and text operations.
func (r *Renderer) Reset() {
	r.Fills = nil
	r.Strokes = nil
	r.Texts = nil
}

// Input is a scriptable render.InputManager.
type Input struct {
	Pressed     map[render.Key]bool
	JustPressed map[render.Key]bool
	Cursor      image.Point
	Buttons     map[render.MouseButton]bool
	JustClicked map[render.MouseButton]bool
	Touch       *image.Point
}

// NewInput returns an input manager with nothing pressed.
func NewInput() *Input {
	return &Input{
		Pressed:     make(map[render.Key]bool),
		JustPressed: make(map[render.Key]bool),
		Buttons:     make(map[render.MouseButton]bool),
		JustClicked: make(map[render.MouseButton]bool),
	}
}

func (in *Input) IsKeyPressed(key render.Key) bool { return in.Pressed[key] }

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }

func (in *Input) GetCursorPosition() (x, y int) { return in.Cursor.X, in.Cursor.Y }

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool { return in.Buttons[button] }

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return in.JustClicked[button]
}

func (in *Input) TouchPosition() (x, y int, ok bool) {
	if in.Touch == nil {
		return 0, 0, false
	}
	return in.Touch.X, in.Touch.Y, true
}

// ResourceLoader serves images of fixed sizes by path.
type ResourceLoader struct {
	mu    sync.Mutex
	Sizes map[string]image.Point
	Err   map[string]error
	Calls []string
}

// NewResourceLoader returns a loader that knows no paths.
func NewResourceLoader() *ResourceLoader {
	return &ResourceLoader{Sizes: make(map[string]image.Point), Err: make(map[string]error)}
}

func (l *ResourceLoader) LoadImage(path string) (render.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Calls = append(l.Calls, path)
	if err := l.Err[path]; err != nil {
		return nil, err
	}
	size, ok := l.Sizes[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return NewImage(path, size.X, size.Y), nil
}
