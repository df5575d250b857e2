package graph

import "testing"

func mstWeight(edges []Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += e.Weight
	}
	return total
}

func TestPrim_SampleNetwork(t *testing.T) {
	g := LoadSample()
	mst, err := Prim(g, "Paris", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mst) != g.NodeCount()-1 {
		t.Errorf("expected %d edges, got %d", g.NodeCount()-1, len(mst))
	}
	if w := mstWeight(mst); w != 570 {
		t.Errorf("expected MST weight 570, got %v", w)
	}
}

func TestKruskal_SampleNetwork(t *testing.T) {
	g := LoadSample()
	mst, err := Kruskal(g, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mst) != g.NodeCount()-1 {
		t.Errorf("expected %d edges, got %d", g.NodeCount()-1, len(mst))
	}
	if w := mstWeight(mst); w != 570 {
		t.Errorf("expected MST weight 570, got %v", w)
	}
}

func TestPrimKruskal_AgreeOnWeight(t *testing.T) {
	g := LoadSample()
	p, err := Prim(g, "Rennes", nil)
	if err != nil {
		t.Fatalf("prim: %v", err)
	}
	k, err := Kruskal(g, nil)
	if err != nil {
		t.Fatalf("kruskal: %v", err)
	}
	if mstWeight(p) != mstWeight(k) {
		t.Errorf("prim weight %v != kruskal weight %v", mstWeight(p), mstWeight(k))
	}
}

func TestKruskal_Disconnected(t *testing.T) {
	g := New(false)
	g.AddEdge("a", "b", 1)
	g.AddNode("island")

	if _, err := Kruskal(g, nil); err == nil {
		t.Error("expected error for disconnected graph")
	}
}

func TestPrim_Disconnected(t *testing.T) {
	g := New(false)
	g.AddEdge("a", "b", 1)
	g.AddNode("island")

	if _, err := Prim(g, "a", nil); err == nil {
		t.Error("expected error for disconnected graph")
	}
}

func TestUnionFind_PathCompression(t *testing.T) {
	uf := newUnionFind(6)
	// Build a chain 0-1-2-3-4-5 via unions.
	for i := 0; i < 5; i++ {
		if !uf.union(i, i+1) {
			t.Fatalf("union %d,%d should merge distinct sets", i, i+1)
		}
	}
	if uf.union(0, 5) {
		t.Error("0 and 5 should already share a root")
	}
	root := uf.find(5)
	for i := 0; i < 6; i++ {
		if uf.find(i) != root {
			t.Errorf("element %d not compressed to root %d", i, root)
		}
	}
}
