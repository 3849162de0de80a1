package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"chosenoffset.com/tilecity/internal/render"
	"chosenoffset.com/tilecity/internal/render/rendertest"
)

type fakeSim struct {
	calls      []string
	updates    []time.Duration
	timestamps []time.Duration
	resizes    [][2]int
	loadErr    error
	initErr    error
	draws      int
}

func (s *fakeSim) Load(ctx context.Context) error {
	s.calls = append(s.calls, "load")
	return s.loadErr
}

func (s *fakeSim) Init() error {
	s.calls = append(s.calls, "init")
	return s.initErr
}

func (s *fakeSim) Poll() { s.calls = append(s.calls, "poll") }

func (s *fakeSim) Update(delta, timestamp time.Duration) {
	s.calls = append(s.calls, "update")
	s.updates = append(s.updates, delta)
	s.timestamps = append(s.timestamps, timestamp)
}

func (s *fakeSim) Draw(screen render.Image) { s.draws++ }

func (s *fakeSim) Resize(width, height int) {
	s.resizes = append(s.resizes, [2]int{width, height})
}

type fakeDriver struct {
	game   render.Game
	frames []time.Duration
	err    error
}

func (d *fakeDriver) SetWindowSize(width, height int) {}

func (d *fakeDriver) SetWindowTitle(title string) {}

func (d *fakeDriver) SetWindowResizable(resizable bool) {}

func (d *fakeDriver) RunGame(game render.Game) error {
	d.game = game
	for range d.frames {
		if err := game.Update(); err != nil {
			return err
		}
		game.Draw(rendertest.NewImage("screen", 10, 10))
	}
	return d.err
}

func TestTickRunsFixedSteps(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{}, sim, nil)

	if steps := e.Tick(37 * time.Millisecond); steps != 3 {
		t.Errorf("Expected 3 steps, got %d", steps)
	}
	if e.Accumulated() != 7*time.Millisecond {
		t.Errorf("Expected 7ms carried over, got %s", e.Accumulated())
	}
	for _, d := range sim.updates {
		if d != DefaultUpdateTimeStep {
			t.Errorf("Expected step %s, got %s", DefaultUpdateTimeStep, d)
		}
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	for i, ts := range sim.timestamps {
		if ts != want[i] {
			t.Errorf("Step %d: expected timestamp %s, got %s", i, want[i], ts)
		}
	}

	if steps := e.Tick(40 * time.Millisecond); steps != 1 {
		t.Errorf("Expected carried time to complete one step, got %d", steps)
	}
	if e.SimTime() != 40*time.Millisecond {
		t.Errorf("Expected 40ms simulated, got %s", e.SimTime())
	}
}

func TestTickClampsLongFrames(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{Debug: true}, sim, nil)

	if steps := e.Tick(time.Second); steps != 5 {
		t.Errorf("Expected clamp to 5 steps, got %d", steps)
	}
	if e.Accumulated() != 0 {
		t.Errorf("Expected nothing carried over, got %s", e.Accumulated())
	}
	if e.Steps() != 5 {
		t.Errorf("Expected Steps 5, got %d", e.Steps())
	}
}

func TestTickPollsOncePerFrame(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{}, sim, nil)

	e.Tick(25 * time.Millisecond)
	want := []string{"poll", "update", "update"}
	if len(sim.calls) != len(want) {
		t.Fatalf("Expected calls %v, got %v", want, sim.calls)
	}
	for i := range want {
		if sim.calls[i] != want[i] {
			t.Errorf("Expected calls %v, got %v", want, sim.calls)
			break
		}
	}

	sim.calls = nil
	if steps := e.Tick(29 * time.Millisecond); steps != 0 {
		t.Errorf("Expected no step for a short frame, got %d", steps)
	}
	if len(sim.calls) != 1 || sim.calls[0] != "poll" {
		t.Errorf("Expected a lone poll, got %v", sim.calls)
	}
}

func TestCustomStep(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{UpdateTimeStep: 16 * time.Millisecond, UpdateTimeMax: 100 * time.Millisecond}, sim, nil)

	if steps := e.Tick(50 * time.Millisecond); steps != 3 {
		t.Errorf("Expected 3 steps of 16ms, got %d", steps)
	}
	if e.Accumulated() != 2*time.Millisecond {
		t.Errorf("Expected 2ms carried over, got %s", e.Accumulated())
	}
}

func TestMaxBelowStepStillUpdates(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{UpdateTimeStep: 10 * time.Millisecond, UpdateTimeMax: 5 * time.Millisecond}, sim, nil)

	for i := 1; i <= 100; i++ {
		e.Tick(time.Duration(i) * 16 * time.Millisecond)
	}
	if len(sim.updates) != 100 {
		t.Errorf("Expected one clamped step per 16ms frame, got %d", len(sim.updates))
	}
}

func TestFPS(t *testing.T) {
	e := New(Config{}, &fakeSim{}, nil)
	for i := 1; i <= 60; i++ {
		e.Tick(time.Duration(i) * time.Second / 60)
	}
	if e.FPS() != 60 {
		t.Errorf("Expected 60 FPS, got %v", e.FPS())
	}
}

func TestRun(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{}, sim, nil)
	now := time.Duration(0)
	e.Clock = func() time.Duration {
		now += 20 * time.Millisecond
		return now
	}

	driver := &fakeDriver{frames: make([]time.Duration, 3)}
	if err := e.Run(context.Background(), driver); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sim.calls[0] != "load" || sim.calls[1] != "init" {
		t.Errorf("Expected load then init, got %v", sim.calls[:2])
	}
	if len(sim.updates) != 6 {
		t.Errorf("Expected 6 updates over 3 frames of 20ms, got %d", len(sim.updates))
	}
	if sim.draws != 3 {
		t.Errorf("Expected 3 draws, got %d", sim.draws)
	}
}

func TestRunStopsOnLoadError(t *testing.T) {
	sim := &fakeSim{loadErr: errors.New("missing tileset")}
	e := New(Config{}, sim, nil)
	driver := &fakeDriver{}

	err := e.Run(context.Background(), driver)
	if !errors.Is(err, sim.loadErr) {
		t.Errorf("Expected wrapped load error, got %v", err)
	}
	if driver.game != nil {
		t.Error("Expected the frame loop not to start")
	}
	for _, c := range sim.calls {
		if c == "init" {
			t.Error("Expected init to be skipped")
		}
	}
}

func TestRunStopsOnInitError(t *testing.T) {
	sim := &fakeSim{initErr: errors.New("bad map")}
	driver := &fakeDriver{}

	if err := New(Config{}, sim, nil).Run(context.Background(), driver); !errors.Is(err, sim.initErr) {
		t.Errorf("Expected wrapped init error, got %v", err)
	}
	if driver.game != nil {
		t.Error("Expected the frame loop not to start")
	}
}

func TestLayoutForwardsResize(t *testing.T) {
	sim := &fakeSim{}
	e := New(Config{}, sim, nil)

	e.Layout(800, 600)
	e.Layout(800, 600)
	w, h := e.Layout(1024, 768)

	if w != 1024 || h != 768 {
		t.Errorf("Expected logical size to follow the window, got %dx%d", w, h)
	}
	if len(sim.resizes) != 2 {
		t.Errorf("Expected 2 resizes, got %v", sim.resizes)
	}
}
