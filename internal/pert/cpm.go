package pert

import (
	"math"
	"sort"

	"github.com/joshharrison/pertloom/internal/trace"
)

// Tolerance below which a float is treated as zero. Durations are
// real numbers, so float comparisons go through this everywhere.
const Tolerance = 1e-6

// Analyze performs critical path method analysis on the project:
// a forward pass for earliest dates, a backward pass for latest
// dates, then floats and critical-path extraction.
//
// The project must already be reference-validated; rec may be nil.
func Analyze(p *Project, rec *trace.Recorder) (*Schedule, error) {
	if err := p.ValidateReferences(); err != nil {
		return nil, err
	}
	order, err := p.TopoOrder()
	if err != nil {
		return nil, err
	}

	succ := p.Successors()

	result := &Schedule{
		ByID:      make(map[string]*TaskSchedule, len(order)),
		TopoOrder: order,
	}
	for _, id := range order {
		result.ByID[id] = &TaskSchedule{TaskID: id}
	}

	// Forward pass: ES = max(EF of predecessors), tasks with no
	// predecessors start at 0.
	for _, id := range order {
		t, _ := p.Task(id)
		ts := result.ByID[id]

		es := 0.0
		for _, pred := range t.Predecessors {
			if predTS := result.ByID[pred]; predTS.EarliestFinish > es {
				es = predTS.EarliestFinish
			}
		}
		ts.EarliestStart = es
		ts.EarliestFinish = es + t.Duration
		rec.Addf("forward", id, "Task %s: ES=%v EF=%v", id, ts.EarliestStart, ts.EarliestFinish)
	}

	for _, ts := range result.ByID {
		if ts.EarliestFinish > result.ProjectDuration {
			result.ProjectDuration = ts.EarliestFinish
		}
	}

	// Backward pass in reverse topological order: LF = min(LS of
	// successors), sinks finish at the project end.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		t, _ := p.Task(id)
		ts := result.ByID[id]

		if len(succ[id]) == 0 {
			ts.LatestFinish = result.ProjectDuration
		} else {
			minLS := math.Inf(1)
			for _, s := range succ[id] {
				if ls := result.ByID[s].LatestStart; ls < minLS {
					minLS = ls
				}
			}
			ts.LatestFinish = minLS
		}
		ts.LatestStart = ts.LatestFinish - t.Duration
		rec.Addf("backward", id, "Task %s: LS=%v LF=%v", id, ts.LatestStart, ts.LatestFinish)
	}

	// Floats. Both are rounded to suppress floating-point noise.
	for _, id := range order {
		ts := result.ByID[id]
		ts.TotalFloat = round6(ts.LatestStart - ts.EarliestStart)

		if len(succ[id]) == 0 {
			// Free float of a sink is relative to the project finish.
			ts.FreeFloat = round6(result.ProjectDuration - ts.EarliestFinish)
		} else {
			minES := math.Inf(1)
			for _, s := range succ[id] {
				if es := result.ByID[s].EarliestStart; es < minES {
					minES = es
				}
			}
			ts.FreeFloat = round6(minES - ts.EarliestFinish)
		}

		ts.IsCritical = math.Abs(ts.TotalFloat) < Tolerance
		if ts.IsCritical {
			rec.Addf("critical", id, "Task %s is on the critical path", id)
		}
	}

	// Critical path: the set of zero-float tasks, presented in
	// earliest-start order. A single sequence is a presentation
	// convenience; multiple critical paths may exist.
	for _, id := range order {
		if result.ByID[id].IsCritical {
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}
	sort.SliceStable(result.CriticalPath, func(a, b int) bool {
		return result.ByID[result.CriticalPath[a]].EarliestStart <
			result.ByID[result.CriticalPath[b]].EarliestStart
	})

	result.Tasks = make([]*TaskSchedule, 0, len(order))
	for _, id := range order {
		result.Tasks = append(result.Tasks, result.ByID[id])
	}
	sort.SliceStable(result.Tasks, func(a, b int) bool {
		return result.Tasks[a].EarliestStart < result.Tasks[b].EarliestStart
	})

	rec.Addf("complete", "", "Schedule computed: project duration %v", result.ProjectDuration)
	return result, nil
}

// round6 rounds to 6 decimal places.
func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
