package trace

import (
	"encoding/json"
	"testing"
)

func TestRecorder_Append(t *testing.T) {
	rec := New()
	rec.Add(Step{Type: "start", TargetID: "a"})
	rec.Addf("visit_node", "b", "Visiting %s", "b")
	rec.Edge("explore_edge", "a", "b", "Relaxing %s -> %s", "a", "b")

	steps := rec.Steps()
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if steps[1].Description != "Visiting b" {
		t.Errorf("unexpected description %q", steps[1].Description)
	}
	if steps[2].Source != "a" || steps[2].Target != "b" {
		t.Errorf("unexpected edge endpoints %q -> %q", steps[2].Source, steps[2].Target)
	}
}

func TestRecorder_NilSafe(t *testing.T) {
	var rec *Recorder
	rec.Add(Step{Type: "start"})
	rec.Addf("visit_node", "a", "Visiting %s", "a")
	rec.Edge("explore_edge", "a", "b", "edge")

	if rec.Len() != 0 {
		t.Errorf("nil recorder should record nothing, got %d", rec.Len())
	}
	if steps := rec.Steps(); len(steps) != 0 {
		t.Errorf("nil recorder should return empty steps, got %v", steps)
	}
}

func TestRecorder_EmptySerializesAsArray(t *testing.T) {
	data, err := json.Marshal(New().Steps())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %s", data)
	}
}
