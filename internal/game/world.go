// Package game ties the map, the city and the UI together into the world the
// engine drives.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/tilecity/internal/city"
	"chosenoffset.com/tilecity/internal/input"
	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/tiles"
	"chosenoffset.com/tilecity/internal/ui"
	"chosenoffset.com/tilecity/internal/world"
)

// Options holds everything a World is built from.
type Options struct {
	Renderer render.Renderer
	Loader   world.ImageLoader
	Input    render.InputManager
	Device   input.Device

	Map      *world.MapData
	Tilesets []world.TilesetConfig

	City  *city.City
	Tiles *tiles.Registry

	// Components are the tile-bound panels. Header is drawn on top of
	// everything and is never mounted.
	Components []ui.Component
	Header     ui.Component

	ScreenWidth  int
	ScreenHeight int
	StartX       int
	StartY       int

	// Clipboard receives the city report. Defaults to the system clipboard.
	Clipboard func(string) error

	Log logrus.FieldLogger
}

// screenSizer is implemented by panels that anchor to the screen edges.
type screenSizer interface {
	SetScreenSize(width, height int)
}

// World owns the viewport, the tile layers and their per-tile state, and
// routes clicks between the map, the UI manager and the city.
type World struct {
	renderer render.Renderer
	loader   world.ImageLoader
	input    render.InputManager
	device   input.Device
	tap      *input.Tap

	tilesets map[string]*world.Tileset
	layers   []*world.Layer
	state    *world.State
	tileSize int
	viewport *world.Viewport

	city       *city.City
	tiles      *tiles.Registry
	ui         *ui.Manager
	components []ui.Component
	header     ui.Component

	clipboard func(string) error
	stats     func() string
	now       time.Duration

	log logrus.FieldLogger
}

// NewWorld builds the layers from the map. Every layer must reference a
// configured tileset and all tilesets must share one tile size.
func NewWorld(opts Options) (*World, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "world")

	if opts.Map == nil {
		return nil, fmt.Errorf("world requires a map")
	}
	if err := opts.Map.Validate(); err != nil {
		return nil, fmt.Errorf("invalid map %s: %w", opts.Map.Name, err)
	}

	w := &World{
		renderer:   opts.Renderer,
		loader:     opts.Loader,
		input:      opts.Input,
		device:     opts.Device,
		tilesets:   make(map[string]*world.Tileset),
		city:       opts.City,
		tiles:      opts.Tiles,
		ui:         ui.NewManager(ui.Handlers{}, log),
		components: opts.Components,
		header:     opts.Header,
		clipboard:  opts.Clipboard,
		log:        log,
	}
	if w.clipboard == nil {
		w.clipboard = clipboard.WriteAll
	}
	if w.device == nil {
		w.device = input.Multi{}
	}
	if w.input != nil {
		w.tap = input.NewTap(w.input)
	}

	for _, cfg := range opts.Tilesets {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if _, exists := w.tilesets[cfg.Key]; exists {
			return nil, fmt.Errorf("duplicate tileset %s", cfg.Key)
		}
		if w.tileSize == 0 {
			w.tileSize = cfg.TileSize
		} else if cfg.TileSize != w.tileSize {
			return nil, fmt.Errorf("tileset %s: tile size %d differs from %d", cfg.Key, cfg.TileSize, w.tileSize)
		}
		w.tilesets[cfg.Key] = world.NewTileset(cfg, opts.Renderer)
	}

	for level, ml := range opts.Map.Layers {
		ts, ok := w.tilesets[ml.Tileset]
		if !ok {
			return nil, fmt.Errorf("layer %d: unknown tileset %q", level, ml.Tileset)
		}
		if err := ml.CheckTiles(ts); err != nil {
			return nil, fmt.Errorf("layer %d: %w", level, err)
		}
		w.layers = append(w.layers, world.NewLayer(level, ml.Tiles, ts, log))
	}

	w.state = world.NewState(len(w.layers), opts.Map.Width, opts.Map.Height)
	w.viewport = world.NewViewport(world.ViewportConfig{
		Width:       opts.ScreenWidth,
		Height:      opts.ScreenHeight,
		WorldWidth:  opts.Map.Width * w.tileSize,
		WorldHeight: opts.Map.Height * w.tileSize,
		StartX:      opts.StartX,
		StartY:      opts.StartY,
	})

	return w, nil
}

// Load decodes every tileset concurrently and fails on the first error.
func (w *World) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ts := range w.tilesets {
		ts := ts
		g.Go(func() error {
			return ts.Load(ctx, w.loader)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	w.log.Infof("Loaded %d tilesets", len(w.tilesets))
	return nil
}

// Init renders the layers, wires the UI manager and primes the header.
// Load must have completed.
func (w *World) Init() error {
	for key, ts := range w.tilesets {
		if !ts.Loaded() {
			return fmt.Errorf("tileset %s not loaded", key)
		}
	}

	for _, l := range w.layers {
		l.Init(w.renderer)
	}

	for _, c := range w.components {
		w.ui.Register(c)
	}
	w.ui.SetHandlers(ui.Handlers{
		OnClick:        w.HandleClick,
		OnClose:        w.persist,
		OnBuild:        w.build,
		OnAddWorker:    w.addWorker,
		OnRemoveWorker: w.removeWorker,
	})

	w.city.OnChange = w.refreshHeader
	if w.header != nil {
		w.header.Init(w.headerData())
	}

	cols, rows := w.layers[0].Size()
	w.log.WithFields(logrus.Fields{"cols": cols, "rows": rows, "layers": len(w.layers)}).Info("World initialized")
	return nil
}

// SetStats installs a provider for the debug line shown in the header.
func (w *World) SetStats(stats func() string) {
	w.stats = stats
}

// Now returns the simulation time of the last update.
func (w *World) Now() time.Duration { return w.now }

// UI returns the UI manager.
func (w *World) UI() *ui.Manager { return w.ui }

// Viewport returns the viewport.
func (w *World) Viewport() *world.Viewport { return w.viewport }

// Layers returns the layers in draw order.
func (w *World) Layers() []*world.Layer { return w.layers }

// State returns the per-tile state.
func (w *World) State() *world.State { return w.state }

// Poll handles per-frame input: clicks and hotkeys.
func (w *World) Poll() {
	if w.input == nil {
		return
	}

	if w.input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		w.click(w.input.GetCursorPosition())
	}
	if x, y, ok := w.tap.Poll(); ok {
		w.click(x, y)
	}

	if w.input.IsKeyJustPressed(render.KeyEscape) {
		w.ui.Close()
	}

	if w.input.IsKeyJustPressed(render.KeyC) {
		if err := w.clipboard(w.Report()); err != nil {
			w.log.Warnf("Failed to copy city report: %v", err)
		} else {
			w.log.Info("Copied city report to clipboard")
		}
	}
}

// click routes a left click or tap to the UI unless it lands on the header.
func (w *World) click(x, y int) {
	if w.header == nil || !w.header.Contains(x, y) {
		w.ui.HandleClick(x, y)
	}
}

// Update advances the world by one fixed step ending at timestamp.
func (w *World) Update(delta, timestamp time.Duration) {
	w.now = timestamp

	w.device.Poll()
	if w.device.IsMoving() {
		dx, dy := w.device.Distance(delta)
		w.viewport.Move(dx, dy)
	}

	for _, l := range w.layers {
		l.Update(delta, timestamp)
	}

	if gained := w.city.Production(timestamp); !gained.IsZero() {
		w.ui.Refresh()
	}
}

// Draw composites the layers through the viewport, then the mounted panel
// and the header.
func (w *World) Draw(screen render.Image) {
	w.viewport.Clear(screen)
	for _, l := range w.layers {
		l.Draw()
		w.viewport.Draw(screen, l.Cache())
	}

	w.ui.Draw(screen)

	if w.header != nil {
		if w.stats != nil {
			w.refreshHeader()
		}
		w.header.Draw(screen)
	}
}

// Resize follows the window size.
func (w *World) Resize(width, height int) {
	w.viewport.Resize(width, height)
	for _, c := range w.components {
		if s, ok := c.(screenSizer); ok {
			s.SetScreenSize(width, height)
		}
	}
	if s, ok := w.header.(screenSizer); ok {
		s.SetScreenSize(width, height)
	}
	w.log.Debugf("Resized to %dx%d", width, height)
}

// HandleClick opens the UI of the topmost nonzero tile under the click.
// Clicks outside the map are ignored.
func (w *World) HandleClick(ev ui.ClickEvent) {
	col, row := w.viewport.CanvasToTile(ev.X, ev.Y, w.tileSize)
	if len(w.layers) == 0 || !w.layers[0].Contains(col, row) {
		return
	}

	for level := len(w.layers) - 1; level >= 0; level-- {
		id := w.layers[level].TileID(col, row)
		if id == 0 {
			continue
		}
		w.openTile(level, col, row, id)
		return
	}
}

func (w *World) openTile(level, col, row, id int) {
	fields := logrus.Fields{"layer": level, "col": col, "row": row, "tile": id}

	tile, ok := w.tiles.Lookup(id)
	if !ok {
		w.log.WithFields(fields).Warn("No tile registered for id")
		return
	}

	binding, ok := tile.(tiles.StatefulUI)
	if !ok {
		w.log.WithFields(fields).Debugf("Tile %s has no UI", tile.Name())
		return
	}

	if w.ui.Open(binding, w.state.Get(level, col, row)) {
		w.layers[level].SetSelection(col, row)
	}
}

// persist writes the final state of a closed binding back to the grid.
func (w *World) persist(state world.TileState) {
	w.state.Set(state, state.Layer, state.Col, state.Row)
	w.layers[state.Layer].ClearSelection()
}

func (w *World) build(state world.TileState, req ui.BuildRequest) {
	bp, ok := w.city.Blueprint(req.Blueprint)
	if !ok {
		w.log.WithField("blueprint", req.Blueprint).Warn("Unknown blueprint")
		return
	}

	b, ok := w.city.Build(bp, w.now)
	if !ok {
		w.ui.Refresh()
		return
	}

	w.ui.Close()

	state.BuildingID = b.ID
	w.state.Set(state, state.Layer, state.Col, state.Row)
	w.layers[state.Layer].SetTileID(state.Col, state.Row, bp.TileID)
}

func (w *World) addWorker(state world.TileState) {
	if !w.city.AssignWorker(state.BuildingID, w.now) {
		w.log.WithField("building", state.BuildingID).Debug("Could not assign worker")
	}
	w.ui.Refresh()
}

func (w *World) removeWorker(state world.TileState) {
	if !w.city.RemoveWorker(state.BuildingID, w.now) {
		w.log.WithField("building", state.BuildingID).Debug("Could not remove worker")
	}
	w.ui.Refresh()
}

// Report renders the city summary at the current simulation time.
func (w *World) Report() string {
	return w.city.Report(w.now)
}

func (w *World) headerData() ui.HeaderData {
	stocks := w.city.Resources()
	values := make([]ui.ResourceValue, 0, len(stocks))
	for _, name := range stocks.Names() {
		values = append(values, ui.ResourceValue{Name: name, Amount: stocks[name].StringFixed(0)})
	}

	data := ui.HeaderData{
		Resources:  values,
		Population: w.city.Population(),
		Workers:    w.city.Workers(),
	}
	if w.stats != nil {
		data.Stats = w.stats()
	}
	return data
}

func (w *World) refreshHeader() {
	if w.header != nil {
		w.header.Update(w.headerData())
	}
}
