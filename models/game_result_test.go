package models

import (
	"testing"

	"gorm.io/datatypes"
)

func TestDetailTime(t *testing.T) {
	if got := DetailTime(map[string]any{"time_taken": 20.5}); got != 20.5 {
		t.Fatalf("DetailTime = %v, want 20.5", got)
	}
	if got := DetailTime(map[string]any{"time_taken": 15}); got != 15 {
		t.Fatalf("DetailTime with int = %v, want 15", got)
	}
	// A missing or malformed time reads as 0.
	if got := DetailTime(map[string]any{"moves": 40}); got != 0 {
		t.Fatalf("DetailTime without time_taken = %v, want 0", got)
	}
	if got := DetailTime(map[string]any{"time_taken": "fast"}); got != 0 {
		t.Fatalf("DetailTime with non-numeric value = %v, want 0", got)
	}
}

func TestResultTimeTakenDecodesPayload(t *testing.T) {
	r := GameResult{Details: datatypes.JSON(`{"time_taken": 18, "moves": 92, "solved": true}`)}
	if got := r.TimeTaken(); got != 18 {
		t.Fatalf("TimeTaken = %v, want 18", got)
	}

	empty := GameResult{}
	if got := empty.TimeTaken(); got != 0 {
		t.Fatalf("TimeTaken on empty details = %v, want 0", got)
	}

	bad := GameResult{Details: datatypes.JSON(`not json`)}
	if got := bad.TimeTaken(); got != 0 {
		t.Fatalf("TimeTaken on invalid details = %v, want 0", got)
	}
}

func TestDetailsMapOnEmptyPayload(t *testing.T) {
	r := GameResult{}
	m := r.DetailsMap()
	if m == nil || len(m) != 0 {
		t.Fatalf("empty details should decode to an empty map, got %v", m)
	}
}
