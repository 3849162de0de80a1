package world

import (
	"context"
	"fmt"
	"image"

	"chosenoffset.com/tilecity/internal/render"
)

// ImageLoader decodes images and serves them by key.
type ImageLoader interface {
	LoadImage(ctx context.Context, key, path string) (string, error)
	GetImage(key string) (render.Image, bool)
}

// TilesetConfig describes a tile atlas image.
type TilesetConfig struct {
	Key      string `mapstructure:"key" json:"key"`
	Path     string `mapstructure:"path" json:"path"`
	Cols     int    `mapstructure:"cols" json:"cols"`
	Rows     int    `mapstructure:"rows" json:"rows"`
	TileSize int    `mapstructure:"tile_size" json:"tile_size"`
}

// Validate checks the tileset dimensions.
func (c TilesetConfig) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("tileset key is required")
	}
	if c.Path == "" {
		return fmt.Errorf("tileset %s: path is required", c.Key)
	}
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("tileset %s: invalid grid %dx%d", c.Key, c.Cols, c.Rows)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tileset %s: invalid tile size %d", c.Key, c.TileSize)
	}
	return nil
}

// Tileset is a grid of equally sized tiles in one image. Tile IDs start at 1
// and run row-major across the atlas.
type Tileset struct {
	config   TilesetConfig
	renderer render.Renderer
	cache    render.Image
}

// NewTileset creates an unloaded tileset.
func NewTileset(config TilesetConfig, renderer render.Renderer) *Tileset {
	return &Tileset{config: config, renderer: renderer}
}

// Load decodes the tileset image through the loader and pre-renders it into
// an offscreen cache sized to the configured grid.
func (t *Tileset) Load(ctx context.Context, loader ImageLoader) error {
	key, err := loader.LoadImage(ctx, t.config.Key, t.config.Path)
	if err != nil {
		return fmt.Errorf("failed to load tileset %s: %w", t.config.Key, err)
	}

	img, ok := loader.GetImage(key)
	if !ok {
		return fmt.Errorf("tileset image %s missing after load", key)
	}

	t.cache = t.renderer.NewImage(t.config.Cols*t.config.TileSize, t.config.Rows*t.config.TileSize)
	t.cache.DrawImage(img, nil)
	return nil
}

// Loaded reports whether Load has completed.
func (t *Tileset) Loaded() bool {
	return t.cache != nil
}

// Key returns the loader key of the tileset image.
func (t *Tileset) Key() string { return t.config.Key }

// TileSize returns the edge length of a tile in pixels.
func (t *Tileset) TileSize() int { return t.config.TileSize }

// Grid returns the number of tile columns and rows in the atlas.
func (t *Tileset) Grid() (cols, rows int) { return t.config.Cols, t.config.Rows }

// Contains reports whether id addresses a tile in the atlas. Zero is the
// empty tile and always valid.
func (t *Tileset) Contains(id int) bool {
	return id >= 0 && id <= t.config.Cols*t.config.Rows
}

// Image returns the pre-rendered atlas.
func (t *Tileset) Image() render.Image { return t.cache }

// SourceRect returns the atlas rectangle of tile id.
func (t *Tileset) SourceRect(id int) image.Rectangle {
	ts := t.config.TileSize
	x := ((id - 1) % t.config.Cols) * ts
	y := ((id - 1) / t.config.Cols) * ts
	return image.Rect(x, y, x+ts, y+ts)
}

// Tile returns the atlas sub-image for tile id.
func (t *Tileset) Tile(id int) render.Image {
	return t.cache.SubImage(t.SourceRect(id))
}
