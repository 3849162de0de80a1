package world

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewStateTagsRecords(t *testing.T) {
	s := NewState(2, 3, 4)

	if s.Layers() != 2 {
		t.Errorf("Expected 2 layers, got %d", s.Layers())
	}

	got := s.Get(1, 2, 3)
	want := TileState{Layer: 1, Col: 2, Row: 3}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
	if got.HasBuilding() {
		t.Error("Expected new record to have no building")
	}
}

func TestStateSetReplacesRecord(t *testing.T) {
	s := NewState(1, 2, 2)

	rec := s.Get(0, 1, 0)
	rec.BuildingID = uuid.New()
	s.Set(rec, 0, 1, 0)

	got := s.Get(0, 1, 0)
	if got != rec {
		t.Errorf("Expected %+v, got %+v", rec, got)
	}
	if !got.HasBuilding() {
		t.Error("Expected record to have a building")
	}
	if s.Get(0, 0, 0).HasBuilding() {
		t.Error("Expected neighbouring record to be untouched")
	}
}
