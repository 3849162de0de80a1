package world

import (
	"image"
	"testing"

	"chosenoffset.com/tilecity/internal/render/rendertest"
)

func TestViewportMoveClamps(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 512, Height: 384, WorldWidth: 1024, WorldHeight: 1024})

	tests := []struct {
		name         string
		dx, dy       int
		wantX, wantY int
	}{
		{"within bounds", 100, 50, 100, 50},
		{"past right and bottom", 10000, 10000, 512, 640},
		{"past left and top", -10000, -10000, 0, 0},
		{"x only", 30, 0, 30, 0},
	}

	for _, tt := range tests {
		v.Move(tt.dx, tt.dy)
		x, y := v.Offset()
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s: expected offset (%d, %d), got (%d, %d)", tt.name, tt.wantX, tt.wantY, x, y)
		}
	}
}

func TestViewportLargerThanWorld(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 800, Height: 600, WorldWidth: 320, WorldHeight: 320, StartX: 50, StartY: 50})

	if x, y := v.Offset(); x != 0 || y != 0 {
		t.Errorf("Expected start clamped to (0, 0), got (%d, %d)", x, y)
	}

	v.Move(40, 40)
	if x, y := v.Offset(); x != 0 || y != 0 {
		t.Errorf("Expected offset to stay at (0, 0), got (%d, %d)", x, y)
	}
}

func TestViewportRect(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 512, Height: 384, WorldWidth: 2048, WorldHeight: 2048, StartX: 130, StartY: 70})

	want := image.Rect(130, 70, 642, 454)
	if got := v.Rect(); got != want {
		t.Errorf("Expected rect %v, got %v", want, got)
	}
}

func TestViewportTileRect(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 512, Height: 384, WorldWidth: 2048, WorldHeight: 2048, StartX: 130})

	r := v.TileRect(64)
	if r.StartCol != 2 || r.EndCol != 10 {
		t.Errorf("Expected columns 2..10, got %d..%d", r.StartCol, r.EndCol)
	}
	if r.StartRow != 0 || r.EndRow != 5 {
		t.Errorf("Expected rows 0..5, got %d..%d", r.StartRow, r.EndRow)
	}
}

func TestViewportConversions(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 512, Height: 384, WorldWidth: 2048, WorldHeight: 2048, StartX: 100, StartY: 40})

	wx, wy := v.CanvasToWorld(10, 20)
	if wx != 110 || wy != 60 {
		t.Errorf("Expected world (110, 60), got (%d, %d)", wx, wy)
	}

	x, y := v.WorldToCanvas(wx, wy)
	if x != 10 || y != 20 {
		t.Errorf("Expected canvas (10, 20), got (%d, %d)", x, y)
	}

	col, row := v.CanvasToTile(30, 30, 64)
	if col != 2 || row != 1 {
		t.Errorf("Expected tile (2, 1), got (%d, %d)", col, row)
	}
}

func TestViewportResizeReclamps(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 200, Height: 200, WorldWidth: 1000, WorldHeight: 1000})
	v.Move(800, 800)

	v.Resize(400, 300)
	x, y := v.Offset()
	if x != 600 || y != 700 {
		t.Errorf("Expected offset (600, 700) after resize, got (%d, %d)", x, y)
	}
	if w, h := v.Size(); w != 400 || h != 300 {
		t.Errorf("Expected size 400x300, got %dx%d", w, h)
	}
}

func TestViewportDraw(t *testing.T) {
	v := NewViewport(ViewportConfig{Width: 100, Height: 50, WorldWidth: 400, WorldHeight: 400, StartX: 64, StartY: 32})
	screen := rendertest.NewImage("screen", 100, 50)
	src := rendertest.NewImage("layer", 400, 400)

	v.Clear(screen)
	v.Draw(screen, src)

	if screen.Clears != 1 {
		t.Errorf("Expected 1 clear, got %d", screen.Clears)
	}
	if len(screen.Draws) != 1 {
		t.Fatalf("Expected 1 draw, got %d", len(screen.Draws))
	}
	call := screen.Draws[0]
	if call.Src.Parent() != src {
		t.Error("Expected draw from a sub-image of the layer")
	}
	if want := image.Rect(64, 32, 164, 82); call.Src.Bounds() != want {
		t.Errorf("Expected source rect %v, got %v", want, call.Src.Bounds())
	}
}
