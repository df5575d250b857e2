// Package graph provides a weighted graph over string node ids and
// the classic traversal, shortest-path and spanning-tree algorithms
// used by the visualization endpoints.
package graph

import (
	"fmt"
	"sort"
)

// Edge is a weighted connection between two nodes. For an undirected
// graph each edge appears once, with U < V.
type Edge struct {
	U      string  `json:"source"`
	V      string  `json:"target"`
	Weight float64 `json:"weight"`
}

// Graph is a weighted graph stored as an adjacency map keyed by node
// id. Zero value is not usable; construct with New.
type Graph struct {
	adj      map[string]map[string]float64
	directed bool
}

// New returns an empty graph. Undirected graphs mirror every edge.
func New(directed bool) *Graph {
	return &Graph{
		adj:      make(map[string]map[string]float64),
		directed: directed,
	}
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }

// AddNode declares a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(node string) {
	if _, ok := g.adj[node]; !ok {
		g.adj[node] = make(map[string]float64)
	}
}

// AddEdge connects u and v with the given weight, declaring both
// nodes as needed. For undirected graphs the reverse edge is added
// too. A repeated edge overwrites the previous weight.
func (g *Graph) AddEdge(u, v string, weight float64) {
	g.AddNode(u)
	g.AddNode(v)
	g.adj[u][v] = weight
	if !g.directed {
		g.adj[v][u] = weight
	}
}

// HasNode reports whether node is declared.
func (g *Graph) HasNode(node string) bool {
	_, ok := g.adj[node]
	return ok
}

// Neighbors returns the nodes adjacent to node, sorted for
// deterministic iteration.
func (g *Graph) Neighbors(node string) ([]string, error) {
	edges, ok := g.adj[node]
	if !ok {
		return nil, fmt.Errorf("node %q does not exist", node)
	}
	out := make([]string, 0, len(edges))
	for n := range edges {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

// Weight returns the weight of the edge u->v, and whether it exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	edges, ok := g.adj[u]
	if !ok {
		return 0, false
	}
	w, ok := edges[v]
	return w, ok
}

// Nodes returns all node ids, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Edges returns all edges. For undirected graphs each edge appears
// once with U < V. Sorted by (U, V) for determinism.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, u := range g.Nodes() {
		for v, w := range g.adj[u] {
			if !g.directed && u > v {
				continue
			}
			out = append(out, Edge{U: u, V: v, Weight: w})
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].U != out[b].U {
			return out[a].U < out[b].U
		}
		return out[a].V < out[b].V
	})
	return out
}

// NodeCount returns the number of declared nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// LoadSample returns the undirected road network used by the demo
// endpoints (distances in km).
func LoadSample() *Graph {
	g := New(false)
	connections := []Edge{
		{"Rennes", "Caen", 75},
		{"Rennes", "Nantes", 45},
		{"Rennes", "Paris", 110},
		{"Caen", "Paris", 50},
		{"Caen", "Lille", 65},
		{"Paris", "Lille", 70},
		{"Paris", "Dijon", 60},
		{"Lille", "Nancy", 100},
		{"Nantes", "Paris", 80},
		{"Nantes", "Bordeaux", 130},
		{"Bordeaux", "Nantes", 90},
		{"Bordeaux", "Lyon", 100},
		{"Lyon", "Dijon", 70},
		{"Lyon", "Grenoble", 40},
		{"Dijon", "Nancy", 75},
		{"Dijon", "Grenoble", 75},
		{"Grenoble", "Nancy", 80},
		{"Nancy", "Lille", 120},
	}
	for _, c := range connections {
		g.AddEdge(c.U, c.V, c.Weight)
	}
	return g
}

// LoadNegativeSample returns a directed graph with negative weights
// for exercising Bellman-Ford.
func LoadNegativeSample() *Graph {
	g := New(true)
	connections := []Edge{
		{"Paris", "Lyon", 4},
		{"Paris", "Bordeaux", 5},
		{"Lyon", "Marseille", 3},
		{"Bordeaux", "Toulouse", 2},
		{"Toulouse", "Marseille", 1},
		{"Marseille", "Nice", -2},
		{"Nice", "Toulouse", -5},
		{"Lyon", "Nice", 10},
	}
	for _, c := range connections {
		g.AddEdge(c.U, c.V, c.Weight)
	}
	return g
}
