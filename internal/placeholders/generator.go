// Package placeholders draws a simple tileset so the city runs without
// hand-made art.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// BaseTileSize is the size tiles are drawn at before scaling.
const BaseTileSize = 32

// Layout of the generated tileset. IDs are 1-based, row-major.
const (
	TilesetCols = 8
	TilesetRows = 2
)

// Tile IDs in the generated tileset.
const (
	Grass      = 1
	Dirt       = 2
	Water      = 3
	Sand       = 4
	Rock       = 5
	Road       = 6
	Tree       = 7
	Bush       = 8
	Field      = 9
	LumberCamp = 10
	Quarry     = 11
)

// ColorPalette defines colors for the terrain and buildings.
var ColorPalette = struct {
	Grass color.RGBA
	Dirt  color.RGBA
	Water color.RGBA
	Sand  color.RGBA
	Rock  color.RGBA
	Road  color.RGBA
	Leaf  color.RGBA
	Trunk color.RGBA
	Crop  color.RGBA
	Roof  color.RGBA
	Stone color.RGBA
}{
	Grass: color.RGBA{90, 150, 70, 255},
	Dirt:  color.RGBA{130, 100, 70, 255},
	Water: color.RGBA{60, 110, 180, 255},
	Sand:  color.RGBA{210, 190, 130, 255},
	Rock:  color.RGBA{120, 120, 115, 255},
	Road:  color.RGBA{160, 150, 135, 255},
	Leaf:  color.RGBA{40, 110, 45, 255},
	Trunk: color.RGBA{100, 70, 40, 255},
	Crop:  color.RGBA{220, 200, 80, 255},
	Roof:  color.RGBA{170, 60, 50, 255},
	Stone: color.RGBA{180, 180, 175, 255},
}

var transparent = color.RGBA{}

// CreateSolidTile creates a simple solid-colored tile.
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BaseTileSize, BaseTileSize))
	xdraw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, xdraw.Src)
	return img
}

// CreateBorderedTile creates a tile with a border.
func CreateBorderedTile(fillColor, borderColor color.RGBA, borderWidth int) *image.RGBA {
	img := CreateSolidTile(fillColor)
	for i := 0; i < borderWidth; i++ {
		for p := 0; p < BaseTileSize; p++ {
			img.Set(p, i, borderColor)
			img.Set(p, BaseTileSize-1-i, borderColor)
			img.Set(i, p, borderColor)
			img.Set(BaseTileSize-1-i, p, borderColor)
		}
	}
	return img
}

// CreatePatternedTile creates a tile with a simple pattern: "grid", "dots",
// "rows" or "diagonal".
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "grid":
		for i := 0; i < BaseTileSize; i += 8 {
			for p := 0; p < BaseTileSize; p++ {
				img.Set(p, i, patternColor)
				img.Set(i, p, patternColor)
			}
		}
	case "dots":
		for y := 4; y < BaseTileSize; y += 8 {
			for x := 4; x < BaseTileSize; x += 8 {
				img.Set(x, y, patternColor)
				img.Set(x+1, y, patternColor)
				img.Set(x, y+1, patternColor)
				img.Set(x+1, y+1, patternColor)
			}
		}
	case "rows":
		for y := 3; y < BaseTileSize; y += 6 {
			for x := 2; x < BaseTileSize-2; x++ {
				img.Set(x, y, patternColor)
				img.Set(x, y+1, patternColor)
			}
		}
	case "diagonal":
		for i := 0; i < BaseTileSize; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, BaseTileSize-1-i, patternColor)
		}
	}

	return img
}

// CreateCircle draws a filled circle with an outline over a base tile. A nil
// base leaves the background transparent.
func CreateCircle(base *image.RGBA, fillColor, outlineColor color.RGBA, radius int) *image.RGBA {
	img := base
	if img == nil {
		img = CreateSolidTile(transparent)
	}

	center := BaseTileSize / 2
	for y := 0; y < BaseTileSize; y++ {
		for x := 0; x < BaseTileSize; x++ {
			dx, dy := x-center, y-center
			distSq := dx*dx + dy*dy
			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}
	return img
}

// CreateHut draws a small building with a roof over a base tile.
func CreateHut(base *image.RGBA, wall, roof color.RGBA) *image.RGBA {
	img := base
	for y := 14; y < 28; y++ {
		for x := 8; x < 24; x++ {
			img.Set(x, y, wall)
		}
	}
	for y := 6; y < 14; y++ {
		inset := 14 - y
		for x := 6 + inset; x < 26-inset; x++ {
			img.Set(x, y, roof)
		}
	}
	return img
}

// Scale resizes a tile to size pixels square.
func Scale(tile image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), tile, tile.Bounds(), xdraw.Src, nil)
	return dst
}

// CreateAtlas lays tiles out row-major, scaling each to tileSize. Nil tiles
// leave their cell transparent.
func CreateAtlas(tiles []*image.RGBA, columns, tileSize int) *image.RGBA {
	rows := (len(tiles) + columns - 1) / columns
	atlas := image.NewRGBA(image.Rect(0, 0, columns*tileSize, rows*tileSize))

	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * tileSize
		y := (i / columns) * tileSize
		cell := image.Rect(x, y, x+tileSize, y+tileSize)
		xdraw.NearestNeighbor.Scale(atlas, cell, tile, tile.Bounds(), xdraw.Src, nil)
	}
	return atlas
}

// Tiles returns the placeholder tiles indexed by ID - 1.
func Tiles() []*image.RGBA {
	p := ColorPalette
	tiles := make([]*image.RGBA, TilesetCols*TilesetRows)

	tiles[Grass-1] = CreatePatternedTile(p.Grass, Lighten(p.Grass, 0.15), "dots")
	tiles[Dirt-1] = CreatePatternedTile(p.Dirt, Darken(p.Dirt, 0.85), "dots")
	tiles[Water-1] = CreatePatternedTile(p.Water, Lighten(p.Water, 0.3), "diagonal")
	tiles[Sand-1] = CreateSolidTile(p.Sand)
	tiles[Rock-1] = CreateCircle(nil, p.Rock, Darken(p.Rock, 0.6), 11)
	tiles[Road-1] = CreateBorderedTile(p.Road, Darken(p.Road, 0.7), 2)
	tiles[Tree-1] = CreateCircle(nil, p.Leaf, p.Trunk, 12)
	tiles[Bush-1] = CreateCircle(nil, Lighten(p.Leaf, 0.2), p.Leaf, 7)

	tiles[Field-1] = CreatePatternedTile(p.Dirt, p.Crop, "rows")
	tiles[LumberCamp-1] = CreateHut(CreatePatternedTile(p.Grass, Lighten(p.Grass, 0.15), "dots"), p.Trunk, p.Roof)
	tiles[Quarry-1] = CreateHut(CreatePatternedTile(p.Rock, Darken(p.Rock, 0.8), "grid"), p.Stone, Darken(p.Rock, 0.7))

	return tiles
}

// GenerateTileset renders the placeholder tileset at tileSize.
func GenerateTileset(tileSize int) (*image.RGBA, error) {
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %d", tileSize)
	}
	return CreateAtlas(Tiles(), TilesetCols, tileSize), nil
}

// GenerateAndSave writes the placeholder tileset to path.
func GenerateAndSave(path string, tileSize int) error {
	atlas, err := GenerateTileset(tileSize)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := SavePNG(atlas, path); err != nil {
		return fmt.Errorf("failed to save tileset %s: %w", path, err)
	}
	return nil
}

// SavePNG saves an image to a PNG file.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color.
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color.
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
