package city

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Blueprint is the static description of a building type.
type Blueprint struct {
	Name           string
	TileID         int
	Component      string
	Description    string
	Cost           Resources
	Production     Resources
	ProductionTime time.Duration
	MaxWorkers     int
}

// Validate checks the blueprint for values the timer cannot work with.
func (bp Blueprint) Validate() error {
	if bp.Name == "" {
		return fmt.Errorf("blueprint name is required")
	}
	if bp.TileID <= 0 {
		return fmt.Errorf("blueprint %s: invalid tile id %d", bp.Name, bp.TileID)
	}
	if bp.ProductionTime <= 0 {
		return fmt.Errorf("blueprint %s: production time must be positive", bp.Name)
	}
	if bp.MaxWorkers <= 0 {
		return fmt.Errorf("blueprint %s: max workers must be positive", bp.Name)
	}
	return nil
}

// Timer is a snapshot of a building's production timer.
type Timer struct {
	Begin    time.Duration
	End      time.Duration
	Paused   bool
	PausedAt time.Duration
}

// Building is a placed instance of a Blueprint. It produces once per
// production cycle while it has workers and is not paused. A building with
// no workers is always paused.
type Building struct {
	ID        uuid.UUID
	Blueprint Blueprint

	workers int
	timer   Timer

	lastCheck time.Duration
	checked   bool
}

// NewBuilding creates an unstaffed, paused building whose first cycle starts
// at now.
func NewBuilding(bp Blueprint, now time.Duration) *Building {
	b := &Building{ID: uuid.New(), Blueprint: bp}
	b.Reset(now, true)
	return b
}

// Reset starts a new production cycle at now.
func (b *Building) Reset(now time.Duration, pause bool) {
	b.timer.Begin = now
	b.timer.End = now + b.Blueprint.ProductionTime
	b.timer.Paused = false
	if pause {
		b.Pause(now)
	}
}

// Pause freezes the current cycle. Pausing a paused building does nothing.
func (b *Building) Pause(now time.Duration) {
	if b.timer.Paused {
		return
	}
	b.timer.Paused = true
	b.timer.PausedAt = now
}

// Resume continues the cycle, pushing its end back by the time spent paused.
func (b *Building) Resume(now time.Duration) {
	if !b.timer.Paused {
		return
	}
	b.timer.End += now - b.timer.PausedAt
	b.timer.Paused = false
}

// Produce returns the blueprint's production when the current cycle has
// completed, and starts the next cycle. Elapsed time is measured from the
// cycle start, adjusted for the gap since the previous check.
func (b *Building) Produce(now time.Duration) (Resources, bool) {
	if !b.checked {
		b.lastCheck = now
		b.checked = true
	}

	if b.timer.Paused || b.workers == 0 {
		return nil, false
	}

	if b.timer.Begin+(now-b.lastCheck) <= b.timer.End {
		return nil, false
	}

	b.Reset(now, false)
	b.lastCheck = now
	return b.Blueprint.Production.Clone(), true
}

// AssignWorker adds a worker, resuming production if the building was
// unstaffed. It reports false when the building is full.
func (b *Building) AssignWorker(now time.Duration) bool {
	if b.workers >= b.Blueprint.MaxWorkers {
		return false
	}
	if b.workers == 0 {
		b.Resume(now)
	}
	b.workers++
	return true
}

// RemoveWorker removes a worker, pausing production when none remain. It
// reports false when the building has no workers.
func (b *Building) RemoveWorker(now time.Duration) bool {
	if b.workers == 0 {
		return false
	}
	b.workers--
	if b.workers == 0 {
		b.Pause(now)
	}
	return true
}

// Workers returns the number of assigned workers.
func (b *Building) Workers() int { return b.workers }

// Paused reports whether production is frozen.
func (b *Building) Paused() bool { return b.timer.Paused }

// Timer returns a snapshot of the production timer.
func (b *Building) Timer() Timer { return b.timer }

// Progress returns how far through the current cycle the building is, in
// [0, 1].
func (b *Building) Progress(now time.Duration) float64 {
	total := b.Blueprint.ProductionTime
	if total <= 0 {
		return 0
	}
	at := now
	if b.timer.Paused {
		at = b.timer.PausedAt
	}
	p := 1 - float64(b.timer.End-at)/float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
