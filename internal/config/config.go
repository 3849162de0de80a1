// Package config loads the settings of a city from a config file, the
// environment and command line flags, on top of built-in defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/engine"
	"chosenoffset.com/tilecity/internal/world"
)

// EnvPrefix prefixes environment overrides, e.g. TILECITY_WINDOW_WIDTH.
const EnvPrefix = "TILECITY"

// Config holds everything needed to start a city.
type Config struct {
	Debug bool `mapstructure:"debug"`

	Log      LogConfig             `mapstructure:"log"`
	Window   WindowConfig          `mapstructure:"window"`
	Engine   engine.Config         `mapstructure:"engine"`
	Viewport ViewportConfig        `mapstructure:"viewport"`
	Input    InputConfig           `mapstructure:"input"`
	Map      MapConfig             `mapstructure:"map"`
	Tilesets []world.TilesetConfig `mapstructure:"tilesets"`
	City     CityConfig            `mapstructure:"city"`

	// Buildings is the catalog offered on land tiles, in menu order.
	Buildings []BuildingConfig `mapstructure:"buildings"`

	// Land lists the tile IDs that can be built on.
	Land []LandConfig `mapstructure:"land"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`        // empty logs to stderr only
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after this size
	MaxBackups int    `mapstructure:"max_backups"`
}

// WindowConfig describes the desktop window.
type WindowConfig struct {
	Title     string `mapstructure:"title"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	Resizable bool   `mapstructure:"resizable"`
}

// ViewportConfig sets the initial scroll position in pixels.
type ViewportConfig struct {
	StartX int `mapstructure:"start_x"`
	StartY int `mapstructure:"start_y"`
}

// InputConfig tunes scrolling.
type InputConfig struct {
	Speed float64 `mapstructure:"speed"` // pixels per millisecond
}

// MapConfig points at the map file.
type MapConfig struct {
	Path string `mapstructure:"path"`
}

// CityConfig holds the starting conditions.
type CityConfig struct {
	Population int                `mapstructure:"population"`
	Resources  map[string]float64 `mapstructure:"resources"`
}

// BuildingConfig describes one blueprint.
type BuildingConfig struct {
	Name           string             `mapstructure:"name"`
	TileID         int                `mapstructure:"tile_id"`
	Component      string             `mapstructure:"component"`
	Description    string             `mapstructure:"description"`
	Cost           map[string]float64 `mapstructure:"cost"`
	Production     map[string]float64 `mapstructure:"production"`
	ProductionTime time.Duration      `mapstructure:"production_time"`
	MaxWorkers     int                `mapstructure:"max_workers"`
}

// LandConfig names a buildable tile.
type LandConfig struct {
	ID   int    `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// DefaultConfig returns the settings of the bundled sample city.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Window: WindowConfig{
			Title:     "Tile City",
			Width:     1280,
			Height:    800,
			Resizable: true,
		},
		Engine: engine.Config{
			UpdateTimeStep: engine.DefaultUpdateTimeStep,
			UpdateTimeMax:  engine.DefaultUpdateTimeMax,
		},
		Input: InputConfig{Speed: 0.5},
		Map:   MapConfig{Path: "data/tilecity/map.json"},
		Tilesets: []world.TilesetConfig{
			{Key: "terrain", Path: "data/tilecity/tileset.png", Cols: 8, Rows: 2, TileSize: 64},
		},
		City: CityConfig{
			Population: 5,
			Resources:  map[string]float64{"food": 100, "wood": 100, "rock": 100},
		},
		Buildings: []BuildingConfig{
			{
				Name:           "Field",
				TileID:         9,
				Description:    "Farmland that feeds the city.",
				Cost:           map[string]float64{"food": 10, "wood": 20},
				Production:     map[string]float64{"food": 50},
				ProductionTime: 10 * time.Second,
				MaxWorkers:     1,
			},
			{
				Name:           "Lumber Camp",
				TileID:         10,
				Description:    "Woodcutters fell trees for timber.",
				Cost:           map[string]float64{"food": 20, "wood": 10},
				Production:     map[string]float64{"wood": 30},
				ProductionTime: 12 * time.Second,
				MaxWorkers:     2,
			},
			{
				Name:           "Quarry",
				TileID:         11,
				Description:    "Masons cut stone from the ground.",
				Cost:           map[string]float64{"food": 30, "wood": 40},
				Production:     map[string]float64{"rock": 20},
				ProductionTime: 15 * time.Second,
				MaxWorkers:     2,
			},
		},
		Land: []LandConfig{
			{ID: 1, Name: "Grass"},
			{ID: 2, Name: "Dirt"},
		},
	}
}

// scalarDefaults registers every scalar setting so that environment
// variables can override it.
func scalarDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.resizable", cfg.Window.Resizable)
	v.SetDefault("engine.update_time_step", cfg.Engine.UpdateTimeStep)
	v.SetDefault("engine.update_time_max", cfg.Engine.UpdateTimeMax)
	v.SetDefault("viewport.start_x", cfg.Viewport.StartX)
	v.SetDefault("viewport.start_y", cfg.Viewport.StartY)
	v.SetDefault("input.speed", cfg.Input.Speed)
	v.SetDefault("map.path", cfg.Map.Path)
	v.SetDefault("city.population", cfg.City.Population)
}

// Flags registers the command line flags LoadConfig understands.
func Flags(flags *pflag.FlagSet) {
	flags.String("config", "data/tilecity/config.yaml", "path to the config file")
	flags.Bool("debug", false, "enable debug logging and stats")
	flags.String("map", "", "path to the map file")
}

// LoadConfig reads the config file at path over the defaults, then applies
// TILECITY_* environment variables and any flags set in flags. A missing
// file is not an error.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	scalarDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{"debug": "debug", "map.path": "map"} {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Lists and maps given in the file replace the defaults instead of
	// merging into them.
	if v.IsSet("tilesets") {
		cfg.Tilesets = nil
	}
	if v.IsSet("buildings") {
		cfg.Buildings = nil
	}
	if v.IsSet("land") {
		cfg.Land = nil
	}
	if v.IsSet("city.resources") {
		cfg.City.Resources = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the city cannot start without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Engine.UpdateTimeStep <= 0 || c.Engine.UpdateTimeMax < c.Engine.UpdateTimeStep {
		return fmt.Errorf("engine.update_time_max (%s) must be >= engine.update_time_step (%s)",
			c.Engine.UpdateTimeMax, c.Engine.UpdateTimeStep)
	}
	if c.Input.Speed < 0 {
		return fmt.Errorf("input speed must not be negative")
	}
	if c.Map.Path == "" {
		return fmt.Errorf("map path is required")
	}
	if len(c.Tilesets) == 0 {
		return fmt.Errorf("at least one tileset is required")
	}
	for _, ts := range c.Tilesets {
		if err := ts.Validate(); err != nil {
			return err
		}
	}
	if c.City.Population < 0 {
		return fmt.Errorf("invalid population %d", c.City.Population)
	}
	for _, bp := range c.Blueprints() {
		if err := bp.Validate(); err != nil {
			return err
		}
	}
	for _, land := range c.Land {
		if land.ID <= 0 {
			return fmt.Errorf("land %s: invalid tile id %d", land.Name, land.ID)
		}
	}
	return nil
}

// Blueprints converts the building catalog.
func (c *Config) Blueprints() []city.Blueprint {
	out := make([]city.Blueprint, 0, len(c.Buildings))
	for _, b := range c.Buildings {
		out = append(out, city.Blueprint{
			Name:           b.Name,
			TileID:         b.TileID,
			Component:      b.Component,
			Description:    b.Description,
			Cost:           city.ResourcesFromFloats(b.Cost),
			Production:     city.ResourcesFromFloats(b.Production),
			ProductionTime: b.ProductionTime,
			MaxWorkers:     b.MaxWorkers,
		})
	}
	return out
}

// StartingCity returns the starting conditions with the catalog attached.
func (c *Config) StartingCity() city.Config {
	return city.Config{
		Resources:  c.City.Resources,
		Population: c.City.Population,
		Blueprints: c.Blueprints(),
	}
}

// Buildable returns the land tiles keyed by ID.
func (c *Config) Buildable() map[int]string {
	out := make(map[int]string, len(c.Land))
	for _, land := range c.Land {
		out[land.ID] = land.Name
	}
	return out
}

// EngineConfig returns the engine settings with the debug flag applied.
func (c *Config) EngineConfig() engine.Config {
	cfg := c.Engine
	cfg.Debug = c.Debug
	return cfg
}
