package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

const sampleConfig = `
window:
  title: Test City
  width: 800
engine:
  update_time_step: 16ms
tilesets:
  - key: ground
    path: ground.png
    cols: 4
    rows: 4
    tile_size: 32
city:
  population: 2
  resources:
    food: 5
buildings:
  - name: Hut
    tile_id: 12
    cost:
      wood: 5
    production:
      food: 1
    production_time: 3s
    max_workers: 1
land:
  - id: 3
    name: Sand
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if len(cfg.Blueprints()) != 3 {
		t.Errorf("Expected 3 default blueprints, got %d", len(cfg.Blueprints()))
	}
	if cfg.Buildable()[1] != "Grass" {
		t.Error("Expected grass to be buildable")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.City.Population != 5 {
		t.Errorf("Expected default values, got %+v", cfg.Window)
	}
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig), nil)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Window.Title != "Test City" || cfg.Window.Width != 800 {
		t.Errorf("Unexpected window %+v", cfg.Window)
	}
	if cfg.Window.Height != 800 {
		t.Errorf("Expected default height to survive, got %d", cfg.Window.Height)
	}
	if cfg.Engine.UpdateTimeStep != 16*time.Millisecond {
		t.Errorf("Expected 16ms step, got %s", cfg.Engine.UpdateTimeStep)
	}
	if cfg.Engine.UpdateTimeMax != 50*time.Millisecond {
		t.Errorf("Expected default max, got %s", cfg.Engine.UpdateTimeMax)
	}

	if len(cfg.Tilesets) != 1 || cfg.Tilesets[0].Key != "ground" || cfg.Tilesets[0].TileSize != 32 {
		t.Errorf("Expected the file's tilesets to replace the defaults, got %+v", cfg.Tilesets)
	}
	if len(cfg.City.Resources) != 1 || cfg.City.Resources["food"] != 5 {
		t.Errorf("Expected only food 5, got %v", cfg.City.Resources)
	}

	bps := cfg.Blueprints()
	if len(bps) != 1 || bps[0].Name != "Hut" || bps[0].ProductionTime != 3*time.Second {
		t.Fatalf("Unexpected blueprints %+v", bps)
	}
	if bps[0].Cost.Get("wood").String() != "5" {
		t.Errorf("Expected hut to cost 5 wood, got %s", bps[0].Cost)
	}

	land := cfg.Buildable()
	if len(land) != 1 || land[3] != "Sand" {
		t.Errorf("Unexpected land %v", land)
	}
}

func TestLoadConfigEnvAndFlags(t *testing.T) {
	t.Setenv("TILECITY_WINDOW_HEIGHT", "600")
	t.Setenv("TILECITY_INPUT_SPEED", "1.5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(flags)
	if err := flags.Parse([]string{"--debug", "--map", "other.json"}); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg, err := LoadConfig(writeConfig(t, sampleConfig), flags)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Window.Height != 600 {
		t.Errorf("Expected env height 600, got %d", cfg.Window.Height)
	}
	if cfg.Input.Speed != 1.5 {
		t.Errorf("Expected env speed 1.5, got %v", cfg.Input.Speed)
	}
	if !cfg.Debug || !cfg.EngineConfig().Debug {
		t.Error("Expected --debug to enable debug")
	}
	if cfg.Map.Path != "other.json" {
		t.Errorf("Expected --map to override the path, got %s", cfg.Map.Path)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad window", "window:\n  width: 0\n"},
		{"bad tileset", "tilesets:\n  - key: x\n    path: x.png\n    cols: 0\n    rows: 1\n    tile_size: 8\n"},
		{"bad building", "buildings:\n  - name: Broken\n    tile_id: 5\n    production_time: 0s\n    max_workers: 1\n"},
		{"bad land", "land:\n  - id: 0\n    name: Void\n"},
		{"max below step", "engine:\n  update_time_step: 10ms\n  update_time_max: 5ms\n"},
		{"malformed", "window: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content), nil); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
