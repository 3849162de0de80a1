package city

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func fieldBlueprint() Blueprint {
	return Blueprint{
		Name:           "Field",
		TileID:         9,
		Component:      "building-panel",
		Cost:           ResourcesFromFloats(map[string]float64{"food": 10, "wood": 20}),
		Production:     ResourcesFromFloats(map[string]float64{"food": 50}),
		ProductionTime: 10 * time.Second,
		MaxWorkers:     1,
	}
}

func TestNewBuildingStartsPaused(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)

	if !b.Paused() {
		t.Error("Expected new building to be paused")
	}
	if b.Workers() != 0 {
		t.Errorf("Expected 0 workers, got %d", b.Workers())
	}
	if _, ok := b.Produce(time.Hour); ok {
		t.Error("Expected no production without workers")
	}
}

func TestWorkerPauseCoupling(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)

	if !b.AssignWorker(time.Second) {
		t.Fatal("Expected worker assignment to succeed")
	}
	if b.Paused() {
		t.Error("Expected assigning the first worker to resume")
	}
	if got := b.Timer().End; got != 11*time.Second {
		t.Errorf("Expected end shifted by 1s pause to 11s, got %v", got)
	}

	if b.AssignWorker(2 * time.Second) {
		t.Error("Expected assignment beyond max workers to fail")
	}

	if !b.RemoveWorker(3 * time.Second) {
		t.Fatal("Expected worker removal to succeed")
	}
	if !b.Paused() {
		t.Error("Expected removing the last worker to pause")
	}
	if got := b.Timer().PausedAt; got != 3*time.Second {
		t.Errorf("Expected pause at 3s, got %v", got)
	}

	if b.RemoveWorker(4 * time.Second) {
		t.Error("Expected removal from empty building to fail")
	}

	b.AssignWorker(5 * time.Second)
	if got := b.Timer().End; got != 13*time.Second {
		t.Errorf("Expected end shifted by exactly the 2s pause to 13s, got %v", got)
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)
	b.Pause(5 * time.Second)

	if got := b.Timer().PausedAt; got != 0 {
		t.Errorf("Expected original pause time to be kept, got %v", got)
	}
}

func TestProduceCycle(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)
	b.Produce(0)
	b.AssignWorker(0)

	if _, ok := b.Produce(5 * time.Second); ok {
		t.Error("Expected no production mid-cycle")
	}
	if _, ok := b.Produce(10 * time.Second); ok {
		t.Error("Expected no production exactly at cycle end")
	}

	yield, ok := b.Produce(10*time.Second + time.Millisecond)
	if !ok {
		t.Fatal("Expected production after cycle end")
	}
	if !yield.Get("food").Equal(decimal.NewFromInt(50)) {
		t.Errorf("Expected 50 food, got %s", yield.Get("food"))
	}

	timer := b.Timer()
	if timer.Begin != 10*time.Second+time.Millisecond {
		t.Errorf("Expected new cycle to begin at production time, got %v", timer.Begin)
	}
	if _, ok := b.Produce(12 * time.Second); ok {
		t.Error("Expected no production right after a cycle restart")
	}
}

func TestProduceWhilePaused(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)
	b.Produce(0)
	b.AssignWorker(0)
	b.Pause(time.Second)

	if _, ok := b.Produce(time.Minute); ok {
		t.Error("Expected no production while paused")
	}
}

func TestProgress(t *testing.T) {
	b := NewBuilding(fieldBlueprint(), 0)
	b.AssignWorker(0)

	if got := b.Progress(5 * time.Second); got != 0.5 {
		t.Errorf("Expected progress 0.5, got %v", got)
	}

	b.RemoveWorker(5 * time.Second)
	if got := b.Progress(8 * time.Second); got != 0.5 {
		t.Errorf("Expected progress frozen at 0.5 while paused, got %v", got)
	}

	b.AssignWorker(9 * time.Second)
	if got := b.Progress(10 * time.Second); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("Expected progress 0.6 after pause, got %v", got)
	}
}

func TestBlueprintValidate(t *testing.T) {
	if err := fieldBlueprint().Validate(); err != nil {
		t.Errorf("Expected valid blueprint, got %v", err)
	}

	bp := fieldBlueprint()
	bp.ProductionTime = 0
	if err := bp.Validate(); err == nil {
		t.Error("Expected error for zero production time")
	}

	bp = fieldBlueprint()
	bp.MaxWorkers = 0
	if err := bp.Validate(); err == nil {
		t.Error("Expected error for zero max workers")
	}
}
