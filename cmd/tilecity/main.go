package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/config"
	"chosenoffset.com/tilecity/internal/engine"
	"chosenoffset.com/tilecity/internal/game"
	"chosenoffset.com/tilecity/internal/input"
	"chosenoffset.com/tilecity/internal/loader"
	"chosenoffset.com/tilecity/internal/logging"
	"chosenoffset.com/tilecity/internal/placeholders"
	ebitenrender "chosenoffset.com/tilecity/internal/render/ebiten"
	"chosenoffset.com/tilecity/internal/tiles"
	"chosenoffset.com/tilecity/internal/ui"
	"chosenoffset.com/tilecity/internal/ui/panels"
	"chosenoffset.com/tilecity/internal/world"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Failed to read .env: %v", err)
	}

	config.Flags(pflag.CommandLine)
	pflag.Parse()
	configPath, _ := pflag.CommandLine.GetString("config")

	cfg, err := config.LoadConfig(configPath, pflag.CommandLine)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	// Generate placeholder art for any tileset that has none yet.
	for _, ts := range cfg.Tilesets {
		if _, err := os.Stat(ts.Path); errors.Is(err, fs.ErrNotExist) {
			logger.Infof("Tileset %s missing, generating placeholders", ts.Path)
			if err := placeholders.GenerateAndSave(ts.Path, ts.TileSize); err != nil {
				logger.Fatalf("Failed to generate tileset: %v", err)
			}
		}
	}

	mapData, err := world.LoadMap(cfg.Map.Path)
	if err != nil {
		logger.Fatalf("Failed to load map: %v", err)
	}

	c, err := city.New(cfg.StartingCity(), logger)
	if err != nil {
		logger.Fatalf("Failed to create city: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	resources := ebitenrender.NewResourceLoader()
	driver := ebitenrender.NewEngine()

	w, h := cfg.Window.Width, cfg.Window.Height
	registry := tiles.NewRegistry()
	simulation, err := game.NewWorld(game.Options{
		Renderer: renderer,
		Loader:   loader.New(resources, logger),
		Input:    inputMgr,
		Device: input.Multi{
			input.NewKeyboard(inputMgr, cfg.Input.Speed),
			input.NewPointer(inputMgr),
		},
		Map:      mapData,
		Tilesets: cfg.Tilesets,
		City:     c,
		Tiles:    registry,
		Components: []ui.Component{
			panels.NewBuildingsMenu(renderer, w, h, logger),
			panels.NewBuildingPanel(renderer, w, h, logger),
		},
		Header:       panels.NewCityHeader(renderer, w, h, logger),
		ScreenWidth:  w,
		ScreenHeight: h,
		StartX:       cfg.Viewport.StartX,
		StartY:       cfg.Viewport.StartY,
		Log:          logger,
	})
	if err != nil {
		logger.Fatalf("Failed to create world: %v", err)
	}

	if err := tiles.RegisterDefaults(registry, c, simulation.Now, cfg.Buildable()); err != nil {
		logger.Fatalf("Failed to register tiles: %v", err)
	}

	eng := engine.New(cfg.EngineConfig(), simulation, logger)
	if cfg.Debug {
		simulation.SetStats(eng.Stats)
	}

	// Set up the window
	driver.SetWindowSize(w, h)
	driver.SetWindowTitle(cfg.Window.Title)
	driver.SetWindowResizable(cfg.Window.Resizable)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.WithField("map", mapData.Name).Info("Starting city...")
	if err := eng.Run(ctx, driver); err != nil {
		logger.Fatal(err)
	}
}
