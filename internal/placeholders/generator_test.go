package placeholders

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateTileset(t *testing.T) {
	atlas, err := GenerateTileset(64)
	if err != nil {
		t.Fatalf("GenerateTileset failed: %v", err)
	}

	b := atlas.Bounds()
	if b.Dx() != TilesetCols*64 || b.Dy() != TilesetRows*64 {
		t.Fatalf("Expected %dx%d atlas, got %v", TilesetCols*64, TilesetRows*64, b)
	}

	// Grass fills its whole cell; the unused last cell stays transparent.
	if _, _, _, a := atlas.At(1, 1).RGBA(); a == 0 {
		t.Error("Expected grass tile to be opaque")
	}
	if _, _, _, a := atlas.At(b.Max.X-1, b.Max.Y-1).RGBA(); a != 0 {
		t.Error("Expected unused cell to be transparent")
	}
}

func TestGenerateTilesetRejectsBadSize(t *testing.T) {
	if _, err := GenerateTileset(0); err == nil {
		t.Error("Expected an error for tile size 0")
	}
}

func TestScale(t *testing.T) {
	tile := CreateSolidTile(ColorPalette.Sand)
	scaled := Scale(tile, 16)
	if scaled.Bounds().Dx() != 16 {
		t.Fatalf("Expected 16px tile, got %v", scaled.Bounds())
	}
	if scaled.RGBAAt(8, 8) != ColorPalette.Sand {
		t.Errorf("Expected sand color to survive scaling, got %v", scaled.RGBAAt(8, 8))
	}
}

func TestGenerateAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tileset.png")
	if err := GenerateAndSave(path, 32); err != nil {
		t.Fatalf("GenerateAndSave failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open tileset: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Failed to decode tileset: %v", err)
	}
	if cfg.Width != TilesetCols*32 || cfg.Height != TilesetRows*32 {
		t.Errorf("Unexpected saved size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDarkenLighten(t *testing.T) {
	c := ColorPalette.Grass
	if d := Darken(c, 0.5); d.G >= c.G {
		t.Errorf("Expected darker green, got %v", d)
	}
	if l := Lighten(c, 0.5); l.G <= c.G {
		t.Errorf("Expected lighter green, got %v", l)
	}
}
