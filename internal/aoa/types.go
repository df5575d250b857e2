package aoa

import (
	"encoding/json"
	"math"
)

// Event is an instant at which a set of activities finishes and
// another set may start. EET/LET are the earliest and latest times
// the event can occur without delaying the project.
type Event struct {
	ID         string
	Label      string
	EET        float64
	LET        float64 // +Inf when unreachable from any sink
	IsCritical bool
}

// unreachable is the interchange sentinel for an infinite event time;
// raw infinities are not representable in JSON.
const unreachable = "unreachable"

func (e *Event) MarshalJSON() ([]byte, error) {
	out := struct {
		ID         string  `json:"id"`
		Label      string  `json:"label"`
		EET        float64 `json:"eet"`
		LET        any     `json:"let"`
		IsCritical bool    `json:"isCritical"`
	}{
		ID:         e.ID,
		Label:      e.Label,
		EET:        e.EET,
		LET:        e.LET,
		IsCritical: e.IsCritical,
	}
	if math.IsInf(e.LET, 1) {
		out.LET = unreachable
	}
	return json.Marshal(out)
}

// Arc connects two events. A real arc carries exactly one task and
// its duration; a dummy arc carries zero duration and exists only to
// express a precedence edge.
type Arc struct {
	ID         string
	Source     string
	Target     string
	Label      string
	TaskID     string // empty for dummy arcs
	Duration   float64
	IsDummy    bool
	IsCritical bool
}

func (a *Arc) MarshalJSON() ([]byte, error) {
	out := struct {
		ID         string  `json:"id"`
		Source     string  `json:"source"`
		Target     string  `json:"target"`
		Label      string  `json:"label"`
		TaskID     any     `json:"taskId"`
		Duration   float64 `json:"duration"`
		IsDummy    bool    `json:"isDummy"`
		IsCritical bool    `json:"isCritical"`
	}{
		ID:         a.ID,
		Source:     a.Source,
		Target:     a.Target,
		Label:      a.Label,
		Duration:   a.Duration,
		IsDummy:    a.IsDummy,
		IsCritical: a.IsCritical,
	}
	if a.TaskID != "" {
		out.TaskID = a.TaskID
	}
	return json.Marshal(out)
}

// Network is the synthesized activity-on-arrow graph: one designated
// start event, one designated end event, and one real arc per task.
type Network struct {
	Nodes           []*Event `json:"nodes"`
	Arcs            []*Arc   `json:"arcs"`
	ProjectDuration float64  `json:"projectDuration"`
}

// Node returns the event with the given id, if present.
func (n *Network) Node(id string) (*Event, bool) {
	for _, e := range n.Nodes {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// TaskArc returns the real arc carrying the given task, if present.
func (n *Network) TaskArc(taskID string) (*Arc, bool) {
	for _, a := range n.Arcs {
		if !a.IsDummy && a.TaskID == taskID {
			return a, true
		}
	}
	return nil, false
}
