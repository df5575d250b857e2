package graph

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/joshharrison/pertloom/internal/trace"
)

type pqItem struct {
	node string
	dist float64
}

type priorityQueue []pqItem

func (q priorityQueue) Len() int            { return len(q) }
func (q priorityQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q priorityQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x any)         { *q = append(*q, x.(pqItem)) }
func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Dijkstra computes shortest distances from start to every reachable
// node. If end is non-empty the search stops once end is settled.
// Returns distances and predecessors for path reconstruction.
// Negative weights are rejected. rec may be nil.
func Dijkstra(g *Graph, start, end string, rec *trace.Recorder) (map[string]float64, map[string]string, error) {
	if !g.HasNode(start) {
		return nil, nil, fmt.Errorf("start node %q does not exist", start)
	}
	if end != "" && !g.HasNode(end) {
		return nil, nil, fmt.Errorf("end node %q does not exist", end)
	}

	dist := make(map[string]float64, g.NodeCount())
	prev := make(map[string]string, g.NodeCount())
	for _, n := range g.Nodes() {
		dist[n] = math.Inf(1)
	}
	dist[start] = 0

	rec.Addf("start", start, "Starting Dijkstra from %s", start)

	pq := &priorityQueue{{node: start, dist: 0}}
	heap.Init(pq)
	settled := make(map[string]bool)

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		if settled[item.node] {
			continue
		}
		settled[item.node] = true
		rec.Addf("settle", item.node, "Settled %s at distance %v", item.node, item.dist)

		if end != "" && item.node == end {
			break
		}

		neighbors, _ := g.Neighbors(item.node)
		for _, n := range neighbors {
			w, _ := g.Weight(item.node, n)
			if w < 0 {
				return nil, nil, fmt.Errorf("negative weight on edge %s->%s", item.node, n)
			}
			rec.Edge("explore_edge", item.node, n, "Relaxing %s -> %s (weight %v)", item.node, n, w)
			if d := item.dist + w; d < dist[n] {
				dist[n] = d
				prev[n] = item.node
				heap.Push(pq, pqItem{node: n, dist: d})
				rec.Addf("update_distance", n, "Distance of %s improved to %v", n, d)
			}
		}
	}

	rec.Addf("complete", "", "Dijkstra complete")
	return dist, prev, nil
}

// Path reconstructs the start-to-end node sequence from a
// predecessor map. Returns nil when end is unreachable.
func Path(prev map[string]string, start, end string, dist map[string]float64) []string {
	if d, ok := dist[end]; !ok || math.IsInf(d, 1) {
		return nil
	}
	var path []string
	for node := end; ; {
		path = append(path, node)
		if node == start {
			break
		}
		p, ok := prev[node]
		if !ok {
			return nil
		}
		node = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// BellmanFord computes shortest distances from start, tolerating
// negative weights. The boolean result reports whether a negative
// cycle is reachable from start. rec may be nil.
func BellmanFord(g *Graph, start string, rec *trace.Recorder) (map[string]float64, map[string]string, bool, error) {
	if !g.HasNode(start) {
		return nil, nil, false, fmt.Errorf("start node %q does not exist", start)
	}

	dist := make(map[string]float64, g.NodeCount())
	prev := make(map[string]string, g.NodeCount())
	for _, n := range g.Nodes() {
		dist[n] = math.Inf(1)
	}
	dist[start] = 0

	rec.Addf("start", start, "Starting Bellman-Ford from %s", start)

	edges := g.directedEdges()
	for i := 0; i < g.NodeCount()-1; i++ {
		changed := false
		for _, e := range edges {
			if math.IsInf(dist[e.U], 1) {
				continue
			}
			if d := dist[e.U] + e.Weight; d < dist[e.V] {
				dist[e.V] = d
				prev[e.V] = e.U
				changed = true
				rec.Edge("relax", e.U, e.V, "Relaxed %s -> %s to %v", e.U, e.V, d)
			}
		}
		if !changed {
			break
		}
	}

	// One more pass: any further improvement proves a negative cycle.
	for _, e := range edges {
		if math.IsInf(dist[e.U], 1) {
			continue
		}
		if dist[e.U]+e.Weight < dist[e.V] {
			rec.Edge("negative_cycle", e.U, e.V, "Negative cycle via %s -> %s", e.U, e.V)
			return dist, prev, true, nil
		}
	}

	rec.Addf("complete", "", "Bellman-Ford complete")
	return dist, prev, false, nil
}

// FloydWarshall computes all-pairs shortest distances and a next-hop
// matrix for path reconstruction.
func FloydWarshall(g *Graph) (map[string]map[string]float64, map[string]map[string]string) {
	nodes := g.Nodes()

	dist := make(map[string]map[string]float64, len(nodes))
	next := make(map[string]map[string]string, len(nodes))
	for _, u := range nodes {
		dist[u] = make(map[string]float64, len(nodes))
		next[u] = make(map[string]string, len(nodes))
		for _, v := range nodes {
			switch {
			case u == v:
				dist[u][v] = 0
			default:
				if w, ok := g.Weight(u, v); ok {
					dist[u][v] = w
					next[u][v] = v
				} else {
					dist[u][v] = math.Inf(1)
				}
			}
		}
	}

	for _, k := range nodes {
		for _, u := range nodes {
			for _, v := range nodes {
				if d := dist[u][k] + dist[k][v]; d < dist[u][v] {
					dist[u][v] = d
					next[u][v] = next[u][k]
				}
			}
		}
	}

	return dist, next
}

// directedEdges returns every directed edge, mirroring undirected
// edges in both directions.
func (g *Graph) directedEdges() []Edge {
	var out []Edge
	for _, u := range g.Nodes() {
		neighbors, _ := g.Neighbors(u)
		for _, v := range neighbors {
			w, _ := g.Weight(u, v)
			out = append(out, Edge{U: u, V: v, Weight: w})
		}
	}
	return out
}
