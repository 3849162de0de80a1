// Package engine drives a simulation with a fixed update step, decoupled
// from the frame rate of the render backend.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/tilecity/internal/render"
)

const (
	DefaultUpdateTimeStep = 10 * time.Millisecond
	DefaultUpdateTimeMax  = 50 * time.Millisecond
)

// Config controls the update cadence.
type Config struct {
	UpdateTimeStep time.Duration `mapstructure:"update_time_step"`
	UpdateTimeMax  time.Duration `mapstructure:"update_time_max"`
	Debug          bool          `mapstructure:"-"`
}

// Simulation is what the engine drives.
type Simulation interface {
	// Load preloads assets. It is fully awaited before Init.
	Load(ctx context.Context) error
	Init() error
	// Poll handles per-frame input, before any update step of the frame.
	Poll()
	// Update advances one fixed step ending at timestamp.
	Update(delta, timestamp time.Duration)
	Draw(screen render.Image)
	Resize(width, height int)
}

// Engine accumulates frame time and runs the simulation in fixed steps. It
// implements render.Game.
type Engine struct {
	cfg Config
	sim Simulation
	log logrus.FieldLogger

	// Clock returns the frame timestamp. Defaults to time since Run.
	Clock func() time.Duration

	previous    time.Duration
	accumulator time.Duration
	simTime     time.Duration

	width, height int

	frames   int
	fpsSince time.Duration
	fps      float64
	steps    int
}

// New creates an engine. Zero durations fall back to the defaults.
func New(cfg Config, sim Simulation, log logrus.FieldLogger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.UpdateTimeStep <= 0 {
		cfg.UpdateTimeStep = DefaultUpdateTimeStep
	}
	if cfg.UpdateTimeMax <= 0 {
		cfg.UpdateTimeMax = DefaultUpdateTimeMax
	}
	// A cap below one step would never let an update run.
	if cfg.UpdateTimeMax < cfg.UpdateTimeStep {
		log.Warnf("update_time_max %s is below the step, raising it to %s", cfg.UpdateTimeMax, cfg.UpdateTimeStep)
		cfg.UpdateTimeMax = cfg.UpdateTimeStep
	}
	return &Engine{
		cfg: cfg,
		sim: sim,
		log: log.WithField("component", "engine"),
	}
}

// Run loads and initializes the simulation, then hands the engine to the
// driver's frame loop. It blocks until the loop ends.
func (e *Engine) Run(ctx context.Context, driver render.Engine) error {
	if err := e.sim.Load(ctx); err != nil {
		return fmt.Errorf("failed to load simulation: %w", err)
	}
	if err := e.sim.Init(); err != nil {
		return fmt.Errorf("failed to initialize simulation: %w", err)
	}

	if e.Clock == nil {
		start := time.Now()
		e.Clock = func() time.Duration { return time.Since(start) }
	}

	e.log.WithFields(logrus.Fields{
		"step": e.cfg.UpdateTimeStep,
		"max":  e.cfg.UpdateTimeMax,
	}).Info("Starting frame loop")

	if err := driver.RunGame(e); err != nil {
		return fmt.Errorf("frame loop stopped: %w", err)
	}
	return nil
}

// Tick consumes the time elapsed since the previous frame and returns how
// many update steps it ran. Elapsed time is capped at UpdateTimeMax; the
// remainder below one step carries over to the next frame.
func (e *Engine) Tick(timestamp time.Duration) int {
	delta := timestamp - e.previous
	e.previous = timestamp
	if delta < 0 {
		delta = 0
	}

	e.accumulator += delta
	if e.accumulator > e.cfg.UpdateTimeMax {
		if e.cfg.Debug {
			e.log.Debugf("Frame took %s, clamping to %s", e.accumulator, e.cfg.UpdateTimeMax)
		}
		e.accumulator = e.cfg.UpdateTimeMax
	}

	e.sim.Poll()

	steps := 0
	for e.accumulator >= e.cfg.UpdateTimeStep {
		e.simTime += e.cfg.UpdateTimeStep
		e.sim.Update(e.cfg.UpdateTimeStep, e.simTime)
		e.accumulator -= e.cfg.UpdateTimeStep
		steps++
	}

	e.countFrame(timestamp, steps)
	return steps
}

func (e *Engine) countFrame(timestamp time.Duration, steps int) {
	e.frames++
	e.steps = steps
	if elapsed := timestamp - e.fpsSince; elapsed >= time.Second {
		e.fps = float64(e.frames) / elapsed.Seconds()
		e.frames = 0
		e.fpsSince = timestamp
	}
}

// Accumulated returns the time carried over to the next frame.
func (e *Engine) Accumulated() time.Duration { return e.accumulator }

// SimTime returns the total simulated time.
func (e *Engine) SimTime() time.Duration { return e.simTime }

// FPS returns the frame rate measured over the last second.
func (e *Engine) FPS() float64 { return e.fps }

// Steps returns the number of update steps run in the last frame.
func (e *Engine) Steps() int { return e.steps }

// Stats formats FPS and steps for the debug header.
func (e *Engine) Stats() string {
	return fmt.Sprintf("%.0f FPS  %d steps  %s", e.fps, e.steps, e.simTime.Truncate(time.Second))
}

// Update implements render.Game.
func (e *Engine) Update() error {
	e.Tick(e.Clock())
	return nil
}

// Draw implements render.Game.
func (e *Engine) Draw(screen render.Image) {
	e.sim.Draw(screen)
}

// Layout implements render.Game. The logical screen follows the window.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.width || outsideHeight != e.height {
		e.width, e.height = outsideWidth, outsideHeight
		e.sim.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
