package pert

import (
	"errors"
	"math"
	"testing"
)

func mustAdd(t *testing.T, p *Project, id string, duration float64, preds ...string) {
	t.Helper()
	if err := p.AddTask(id, "Task "+id, duration, preds); err != nil {
		t.Fatalf("add task %s: %v", id, err)
	}
}

func TestAddTask_DuplicateID(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1)

	err := p.AddTask("a", "Task A again", 2, nil)
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestAddTask_NegativeDuration(t *testing.T) {
	p := NewProject()
	err := p.AddTask("a", "Task A", -1, nil)
	if !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if p.TaskCount() != 0 {
		t.Errorf("rejected task should not be stored, have %d tasks", p.TaskCount())
	}
}

func TestAddTask_NonFiniteDuration(t *testing.T) {
	for _, d := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		p := NewProject()
		err := p.AddTask("a", "Task A", d, nil)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %v: expected ErrInvalidDuration, got %v", d, err)
		}
	}
}

func TestAddTask_RepeatedPredecessorsCollapsed(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1)
	mustAdd(t, p, "b", 2, "a", "a")

	task, ok := p.Task("b")
	if !ok {
		t.Fatal("task b not stored")
	}
	if len(task.Predecessors) != 1 || task.Predecessors[0] != "a" {
		t.Errorf("expected predecessors [a], got %v", task.Predecessors)
	}
	if succ := p.Successors(); len(succ["a"]) != 1 {
		t.Errorf("expected 1 successor of a, got %v", succ["a"])
	}
}

func TestValidateReferences_ForwardReference(t *testing.T) {
	// b declared before its predecessor a — legal, validation is global.
	p := NewProject()
	mustAdd(t, p, "b", 2, "a")
	mustAdd(t, p, "a", 1)

	if err := p.ValidateReferences(); err != nil {
		t.Fatalf("forward reference should validate, got %v", err)
	}
}

func TestValidateReferences_UnknownPredecessor(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1)
	mustAdd(t, p, "b", 2, "ghost")

	err := p.ValidateReferences()
	if !errors.Is(err, ErrUnknownPredecessor) {
		t.Fatalf("expected ErrUnknownPredecessor, got %v", err)
	}

	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatal("expected *InputError")
	}
	if ie.TaskID != "b" || ie.Ref != "ghost" {
		t.Errorf("expected task b / ref ghost, got %s / %s", ie.TaskID, ie.Ref)
	}
}

func TestTopoOrder_Chain(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1)
	mustAdd(t, p, "b", 1, "a")
	mustAdd(t, p, "c", 1, "b")

	order, err := p.TopoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}
}

func TestTopoOrder_InsertionOrderTieBreak(t *testing.T) {
	// z inserted before a; both are ready at the same time, so z wins.
	p := NewProject()
	mustAdd(t, p, "z", 1)
	mustAdd(t, p, "a", 1)
	mustAdd(t, p, "m", 1, "z", "a")

	order, err := p.TopoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order[0] != "z" || order[1] != "a" || order[2] != "m" {
		t.Errorf("expected [z a m], got %v", order)
	}
}

func TestTopoOrder_Cycle(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1, "b")
	mustAdd(t, p, "b", 1, "a")

	_, err := p.TopoOrder()
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
}

func TestSuccessors_Derived(t *testing.T) {
	p := NewProject()
	mustAdd(t, p, "a", 1)
	mustAdd(t, p, "b", 1, "a")
	mustAdd(t, p, "c", 1, "a")

	succ := p.Successors()
	if len(succ["a"]) != 2 {
		t.Errorf("expected 2 successors of a, got %v", succ["a"])
	}
	if len(succ["b"]) != 0 || len(succ["c"]) != 0 {
		t.Errorf("expected b and c to have no successors, got %v / %v", succ["b"], succ["c"])
	}
}
