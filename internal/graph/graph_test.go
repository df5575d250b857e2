package graph

import (
	"reflect"
	"testing"
)

func TestAddEdge_Undirected(t *testing.T) {
	g := New(false)
	g.AddEdge("a", "b", 3)

	if w, ok := g.Weight("a", "b"); !ok || w != 3 {
		t.Errorf("expected weight a->b = 3, got %v (%v)", w, ok)
	}
	if w, ok := g.Weight("b", "a"); !ok || w != 3 {
		t.Errorf("expected mirrored weight b->a = 3, got %v (%v)", w, ok)
	}
	if len(g.Edges()) != 1 {
		t.Errorf("undirected edge should appear once, got %v", g.Edges())
	}
}

func TestAddEdge_Directed(t *testing.T) {
	g := New(true)
	g.AddEdge("a", "b", 3)

	if _, ok := g.Weight("b", "a"); ok {
		t.Error("directed graph must not mirror edges")
	}
}

func TestNeighbors_MissingNode(t *testing.T) {
	g := New(false)
	if _, err := g.Neighbors("ghost"); err == nil {
		t.Error("expected error for missing node")
	}
}

func TestNeighbors_Sorted(t *testing.T) {
	g := New(false)
	g.AddEdge("m", "z", 1)
	g.AddEdge("m", "a", 1)
	g.AddEdge("m", "k", 1)

	got, err := g.Neighbors("m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "k", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoadSample(t *testing.T) {
	g := LoadSample()
	if g.NodeCount() != 10 {
		t.Errorf("expected 10 cities, got %d", g.NodeCount())
	}
	if w, ok := g.Weight("Rennes", "Paris"); !ok || w != 110 {
		t.Errorf("expected Rennes-Paris = 110, got %v (%v)", w, ok)
	}
}

func TestBFS_VisitsAllReachable(t *testing.T) {
	g := LoadSample()
	order, err := BFS(g, "Paris", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != g.NodeCount() {
		t.Errorf("expected %d nodes visited, got %d", g.NodeCount(), len(order))
	}
	if order[0] != "Paris" {
		t.Errorf("expected traversal to start at Paris, got %s", order[0])
	}
}

func TestDFS_VisitsAllReachable(t *testing.T) {
	g := LoadSample()
	order, err := DFS(g, "Paris", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != g.NodeCount() {
		t.Errorf("expected %d nodes visited, got %d", g.NodeCount(), len(order))
	}
	seen := make(map[string]bool)
	for _, n := range order {
		if seen[n] {
			t.Errorf("node %s visited twice", n)
		}
		seen[n] = true
	}
}

func TestBFS_MissingStart(t *testing.T) {
	if _, err := BFS(LoadSample(), "Atlantis", nil); err == nil {
		t.Error("expected error for missing start node")
	}
}
