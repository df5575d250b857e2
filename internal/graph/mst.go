package graph

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/joshharrison/pertloom/internal/trace"
)

type mstItem struct {
	u, v   string
	weight float64
}

type mstQueue []mstItem

func (q mstQueue) Len() int           { return len(q) }
func (q mstQueue) Less(i, j int) bool { return q[i].weight < q[j].weight }
func (q mstQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *mstQueue) Push(x any)        { *q = append(*q, x.(mstItem)) }
func (q *mstQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Prim grows a minimum spanning tree outward from start. Returns an
// error when the graph is not connected. rec may be nil.
func Prim(g *Graph, start string, rec *trace.Recorder) ([]Edge, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("start node %q does not exist", start)
	}

	rec.Addf("start", start, "Starting Prim from %s", start)

	inTree := map[string]bool{start: true}
	pq := &mstQueue{}
	heap.Init(pq)
	pushEdges := func(u string) {
		neighbors, _ := g.Neighbors(u)
		for _, v := range neighbors {
			if !inTree[v] {
				w, _ := g.Weight(u, v)
				heap.Push(pq, mstItem{u: u, v: v, weight: w})
			}
		}
	}
	pushEdges(start)

	var mst []Edge
	for pq.Len() > 0 && len(mst) < g.NodeCount()-1 {
		item := heap.Pop(pq).(mstItem)
		if inTree[item.v] {
			rec.Edge("skip", item.u, item.v, "Both endpoints already in tree")
			continue
		}
		inTree[item.v] = true
		mst = append(mst, Edge{U: item.u, V: item.v, Weight: item.weight})
		rec.Edge("add_edge", item.u, item.v, "Added %s -- %s (weight %v)", item.u, item.v, item.weight)
		pushEdges(item.v)
	}

	if len(mst) != g.NodeCount()-1 {
		return nil, fmt.Errorf("graph is not connected: spanned %d of %d nodes", len(mst)+1, g.NodeCount())
	}
	rec.Addf("complete", "", "Prim complete")
	return mst, nil
}

// unionFind is an array-backed disjoint set with union by rank.
// find is iterative with path compression, so large inputs cannot
// exhaust the stack.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	// Path compression: point everything on the walk at the root.
	for uf.parent[x] != root {
		uf.parent[x], x = root, uf.parent[x]
	}
	return root
}

func (uf *unionFind) union(x, y int) bool {
	rx, ry := uf.find(x), uf.find(y)
	if rx == ry {
		return false
	}
	switch {
	case uf.rank[rx] < uf.rank[ry]:
		uf.parent[rx] = ry
	case uf.rank[rx] > uf.rank[ry]:
		uf.parent[ry] = rx
	default:
		uf.parent[ry] = rx
		uf.rank[rx]++
	}
	return true
}

// Kruskal builds a minimum spanning tree by taking edges in weight
// order and rejecting those that would close a cycle. Returns an
// error when the graph is not connected. rec may be nil.
func Kruskal(g *Graph, rec *trace.Recorder) ([]Edge, error) {
	nodes := g.Nodes()
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	rec.Addf("start", "", "Starting Kruskal over %d edges", len(edges))

	uf := newUnionFind(len(nodes))
	var mst []Edge
	for _, e := range edges {
		if uf.union(index[e.U], index[e.V]) {
			mst = append(mst, e)
			rec.Edge("add_edge", e.U, e.V, "Added %s -- %s (weight %v)", e.U, e.V, e.Weight)
			if len(mst) == len(nodes)-1 {
				break
			}
		} else {
			rec.Edge("skip", e.U, e.V, "Edge %s -- %s would close a cycle", e.U, e.V)
		}
	}

	if len(mst) != len(nodes)-1 {
		return nil, fmt.Errorf("graph is not connected: %d edges for %d nodes", len(mst), len(nodes))
	}
	rec.Addf("complete", "", "Kruskal complete")
	return mst, nil
}
