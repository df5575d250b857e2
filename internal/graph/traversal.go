package graph

import (
	"fmt"

	"github.com/joshharrison/pertloom/internal/trace"
)

// BFS visits the graph level by level from start and returns the
// visit order. rec may be nil.
func BFS(g *Graph, start string, rec *trace.Recorder) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("start node %q does not exist", start)
	}

	rec.Addf("start", start, "Starting BFS from %s", start)

	visited := map[string]bool{start: true}
	queue := []string{start}
	var order []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		rec.Addf("visit_node", current, "Visiting %s", current)

		neighbors, _ := g.Neighbors(current)
		for _, n := range neighbors {
			rec.Edge("check_neighbor", current, n, "Checking neighbor %s of %s", n, current)
			if visited[n] {
				rec.Addf("skip", n, "%s already visited", n)
				continue
			}
			visited[n] = true
			queue = append(queue, n)
			rec.Addf("add_to_queue", n, "Adding %s to queue", n)
		}
	}

	rec.Addf("complete", "", "BFS traversal complete")
	return order, nil
}

// DFS visits the graph depth first from start and returns the visit
// order. Iterative, so deep graphs cannot blow the stack. rec may be
// nil.
func DFS(g *Graph, start string, rec *trace.Recorder) ([]string, error) {
	if !g.HasNode(start) {
		return nil, fmt.Errorf("start node %q does not exist", start)
	}

	rec.Addf("start", start, "Starting DFS from %s", start)

	visited := make(map[string]bool)
	stack := []string{start}
	var order []string

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, current)
		rec.Addf("visit_node", current, "Visiting %s", current)

		// Push in reverse sorted order so neighbors are explored in
		// ascending order.
		neighbors, _ := g.Neighbors(current)
		for i := len(neighbors) - 1; i >= 0; i-- {
			n := neighbors[i]
			if !visited[n] {
				stack = append(stack, n)
				rec.Addf("add_to_stack", n, "Pushing %s", n)
			}
		}
	}

	rec.Addf("complete", "", "DFS traversal complete")
	return order, nil
}
