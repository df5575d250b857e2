package pert

import (
	"container/heap"
	"math"
)

// Project holds the declared tasks and their precedence relation. It
// is the single source of truth for precedence; the CPM engine and
// the AoA synthesizer both derive their own structures from it.
//
// A Project is not safe for concurrent mutation. Build one per
// scheduling run and treat it as immutable once validation has run.
type Project struct {
	tasks map[string]*Task
	order []string // insertion order, used as the topological tie-break
}

// NewProject returns an empty project.
func NewProject() *Project {
	return &Project{tasks: make(map[string]*Task)}
}

// AddTask declares a task. Predecessors may reference ids that have
// not been added yet; reference checking is deferred to
// ValidateReferences so insertion order does not matter.
func (p *Project) AddTask(id, name string, duration float64, predecessors []string) error {
	if _, ok := p.tasks[id]; ok {
		return duplicateErr(id)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return invalidDurationErr(id, duration)
	}

	// Predecessors form a set; collapse repeated entries so every
	// downstream derivation sees each precedence edge exactly once.
	preds := make([]string, 0, len(predecessors))
	seen := make(map[string]bool, len(predecessors))
	for _, pred := range predecessors {
		if seen[pred] {
			continue
		}
		seen[pred] = true
		preds = append(preds, pred)
	}

	p.tasks[id] = &Task{
		ID:           id,
		Name:         name,
		Duration:     duration,
		Predecessors: preds,
	}
	p.order = append(p.order, id)
	return nil
}

// Task returns the declared task for id, if present.
func (p *Project) Task(id string) (*Task, bool) {
	t, ok := p.tasks[id]
	return t, ok
}

// TaskCount returns the number of declared tasks.
func (p *Project) TaskCount() int {
	return len(p.tasks)
}

// IDs returns the task ids in insertion order.
func (p *Project) IDs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// ValidateReferences confirms every predecessor id names a declared
// task. Run this before any scheduling pass.
func (p *Project) ValidateReferences() error {
	for _, id := range p.order {
		for _, pred := range p.tasks[id].Predecessors {
			if _, ok := p.tasks[pred]; !ok {
				return unknownPredErr(id, pred)
			}
		}
	}
	return nil
}

// Successors derives the successor lists: successors(t) = every task
// that names t as a predecessor. Lists follow insertion order of the
// consuming tasks.
func (p *Project) Successors() map[string][]string {
	succ := make(map[string][]string, len(p.tasks))
	for _, id := range p.order {
		succ[id] = nil
	}
	for _, id := range p.order {
		for _, pred := range p.tasks[id].Predecessors {
			if _, ok := p.tasks[pred]; ok {
				succ[pred] = append(succ[pred], id)
			}
		}
	}
	return succ
}

type intMinHeap []int

func (h intMinHeap) Len() int           { return len(h) }
func (h intMinHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h intMinHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *intMinHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *intMinHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// TopoOrder returns a total order consistent with precedence using
// Kahn's algorithm. Among simultaneously ready tasks the earliest
// inserted wins; that keeps runs deterministic without promising any
// semantic order among independent tasks.
//
// Returns ErrCycle when the precedence relation is not a DAG.
func (p *Project) TopoOrder() ([]string, error) {
	index := make(map[string]int, len(p.order))
	for i, id := range p.order {
		index[id] = i
	}

	indeg := make([]int, len(p.order))
	for i, id := range p.order {
		for _, pred := range p.tasks[id].Predecessors {
			if _, ok := p.tasks[pred]; ok {
				indeg[i]++
			}
		}
	}

	succ := p.Successors()

	ready := &intMinHeap{}
	heap.Init(ready)
	for i := range indeg {
		if indeg[i] == 0 {
			heap.Push(ready, i)
		}
	}

	out := make([]string, 0, len(p.order))
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		id := p.order[i]
		out = append(out, id)
		for _, s := range succ[id] {
			j := index[s]
			indeg[j]--
			if indeg[j] == 0 {
				heap.Push(ready, j)
			}
		}
	}

	// A non-empty residual means the precedence relation has a cycle.
	if len(out) != len(p.order) {
		return nil, cycleErr(len(out), len(p.order))
	}
	return out, nil
}
