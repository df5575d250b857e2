// Package aoa synthesizes an activity-on-arrow event network from an
// activity-on-node task set. Tasks become arcs between instantaneous
// events; tasks with identical predecessor sets share a start event,
// and zero-duration dummy arcs preserve merge semantics where a
// predecessor already terminates at a different junction.
package aoa

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/joshharrison/pertloom/internal/pert"
	"github.com/joshharrison/pertloom/internal/trace"
)

// ErrInvariant marks a construction defect inside the synthesizer,
// as opposed to an input validation failure. It should never surface
// on valid code paths.
var ErrInvariant = errors.New("aoa: internal invariant violation")

const (
	startID = "start"
	endID   = "end"
)

// event is the build-time representation, renumbered for display at
// the end of synthesis.
type event struct {
	seq   int // creation order, the tie-break for display renumbering
	id    string
	label string
	eet   float64
	let   float64
}

// Synthesize builds the event network for a validated project. rec
// may be nil.
func Synthesize(p *pert.Project, rec *trace.Recorder) (*Network, error) {
	if err := p.ValidateReferences(); err != nil {
		return nil, err
	}
	order, err := p.TopoOrder()
	if err != nil {
		return nil, err
	}

	events := make(map[string]*event)
	seq := 0
	newEvent := func(id, label string) *event {
		ev := &event{seq: seq, id: id, label: label}
		seq++
		events[id] = ev
		return ev
	}

	start := newEvent(startID, "Start")

	// Group tasks by predecessor signature. Each distinct signature
	// becomes one junction event; the empty signature is the start
	// event. First-appearance order along the topological order keeps
	// junction numbering deterministic.
	type group struct {
		sig   []string // sorted predecessor ids
		tasks []string
	}
	var groups []*group
	bySig := make(map[string]*group)
	for _, id := range order {
		t, _ := p.Task(id)
		sig := append([]string(nil), t.Predecessors...)
		sort.Strings(sig)
		key := strings.Join(sig, "\x00")
		grp, ok := bySig[key]
		if !ok {
			grp = &group{sig: sig}
			bySig[key] = grp
			groups = append(groups, grp)
		}
		grp.tasks = append(grp.tasks, id)
	}

	var arcs []*Arc
	dummySeen := make(map[[2]string]bool)
	dummyCount := 0

	// endNode[t] is the event where task t's real arc terminates.
	// The first junction that consumes t claims it; any later
	// junction gets a dummy arc from that claimed event instead, so
	// every task is drawn with exactly one outgoing real arc.
	endNode := make(map[string]string)
	startNode := make(map[string]string)

	junction := 0
	for _, grp := range groups {
		var junctionID string
		if len(grp.sig) == 0 {
			junctionID = start.id
		} else {
			junction++
			junctionID = fmt.Sprintf("j%d", junction)
			newEvent(junctionID, strconv.Itoa(junction))

			for _, pred := range grp.sig {
				claimed, ok := endNode[pred]
				if !ok {
					endNode[pred] = junctionID
					continue
				}
				if claimed == junctionID {
					return nil, fmt.Errorf("%w: duplicate merge of %s into %s", ErrInvariant, pred, junctionID)
				}
				// One dummy per event pair; a second predecessor
				// arriving from the same claimed event rides along.
				if dummySeen[[2]string{claimed, junctionID}] {
					continue
				}
				dummySeen[[2]string{claimed, junctionID}] = true
				arcs = append(arcs, &Arc{
					Source:  claimed,
					Target:  junctionID,
					IsDummy: true,
				})
				dummyCount++
				rec.Edge("dummy_arc", claimed, junctionID, "Dummy arc carries %s into junction %s", pred, junctionID)
			}
		}
		for _, id := range grp.tasks {
			startNode[id] = junctionID
		}
	}

	// Tasks never used as a predecessor terminate at the shared end
	// event.
	end := newEvent(endID, "End")
	for _, id := range order {
		if _, ok := endNode[id]; !ok {
			endNode[id] = end.id
		}
	}

	// One real arc per task. A self-loop here means the construction
	// above is broken, not that the input is bad.
	for _, id := range order {
		t, _ := p.Task(id)
		src, dst := startNode[id], endNode[id]
		if src == dst {
			return nil, fmt.Errorf("%w: task %s maps to self-loop at %s", ErrInvariant, id, src)
		}
		arcs = append(arcs, &Arc{
			Source:   src,
			Target:   dst,
			Label:    fmt.Sprintf("%s(%s)", t.Name, formatDuration(t.Duration)),
			TaskID:   id,
			Duration: t.Duration,
		})
		rec.Edge("task_arc", src, dst, "Task %s drawn from %s to %s", id, src, dst)
	}

	relax(events, arcs, rec)

	// Mark critical events and arcs: an event is critical when its
	// time window is closed, an arc when it carries zero slack
	// between two critical events.
	critical := make(map[string]bool, len(events))
	for id, ev := range events {
		critical[id] = math.Abs(ev.eet-ev.let) < pert.Tolerance
	}
	for _, a := range arcs {
		if critical[a.Source] && critical[a.Target] &&
			math.Abs(events[a.Target].let-events[a.Source].let-a.Duration) < pert.Tolerance {
			a.IsCritical = true
		}
	}

	net := renumber(events, arcs, critical)
	rec.Addf("complete", "", "Network synthesized: %d events, %d arcs (%d dummy)",
		len(net.Nodes), len(net.Arcs), dummyCount)
	return net, nil
}

// relax computes event times by repeated relaxation over the arcs.
// The pass count is bounded by the event count, which is sufficient
// for a DAG with non-negative durations.
func relax(events map[string]*event, arcs []*Arc, rec *trace.Recorder) {
	// Forward: EET[target] = max over incoming arcs of EET[source] + duration.
	for ev := range events {
		events[ev].eet = 0
	}
	for pass := 0; pass < len(events)+2; pass++ {
		changed := false
		for _, a := range arcs {
			if t := events[a.Source].eet + a.Duration; t > events[a.Target].eet {
				events[a.Target].eet = t
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	maxEET := 0.0
	for _, ev := range events {
		if ev.eet > maxEET {
			maxEET = ev.eet
		}
	}

	// Backward: sink events close at the project end, everything else
	// starts unreachable and tightens toward its latest time. With
	// multiple true sinks each one is pinned to the global max EET,
	// which can overstate slack for a genuinely separate island; that
	// approximation is accepted here.
	hasOutgoing := make(map[string]bool, len(events))
	for _, a := range arcs {
		hasOutgoing[a.Source] = true
	}
	for id, ev := range events {
		if hasOutgoing[id] {
			ev.let = math.Inf(1)
		} else {
			ev.let = maxEET
		}
	}
	for pass := 0; pass < len(events)+2; pass++ {
		changed := false
		for _, a := range arcs {
			if t := events[a.Target].let - a.Duration; t < events[a.Source].let {
				events[a.Source].let = t
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	rec.Addf("relaxed", "", "Event times stabilized: project duration %v", maxEET)
}

// renumber sorts events by EET for display (creation order breaks
// ties), keeps the fixed start/end identities, and assigns sequential
// labels to interior junctions.
func renumber(events map[string]*event, arcs []*Arc, critical map[string]bool) *Network {
	sorted := make([]*event, 0, len(events))
	for _, ev := range events {
		sorted = append(sorted, ev)
	}
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].eet != sorted[b].eet {
			return sorted[a].eet < sorted[b].eet
		}
		return sorted[a].seq < sorted[b].seq
	})

	idMap := make(map[string]string, len(sorted))
	nodes := make([]*Event, 0, len(sorted))
	counter := 0
	maxEET := 0.0
	for _, ev := range sorted {
		if ev.eet > maxEET {
			maxEET = ev.eet
		}
		id, label := ev.id, ev.label
		switch ev.id {
		case startID, endID:
			// fixed identity
		default:
			counter++
			id = fmt.Sprintf("n%d", counter)
			label = strconv.Itoa(counter)
		}
		idMap[ev.id] = id
		nodes = append(nodes, &Event{
			ID:         id,
			Label:      label,
			EET:        ev.eet,
			LET:        ev.let,
			IsCritical: critical[ev.id],
		})
	}

	for i, a := range arcs {
		a.ID = fmt.Sprintf("a%d", i)
		a.Source = idMap[a.Source]
		a.Target = idMap[a.Target]
	}

	return &Network{Nodes: nodes, Arcs: arcs, ProjectDuration: maxEET}
}

// formatDuration renders a duration without trailing zeros, so whole
// numbers print as integers in arc labels.
func formatDuration(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
