// Package trace collects step-by-step events from algorithm runs so a
// UI can replay them. Recording is observational only: algorithms must
// produce identical results whether or not a recorder is attached.
package trace

import "fmt"

// Step is a single named event in an algorithm run.
type Step struct {
	Type        string         `json:"type"`
	TargetID    string         `json:"targetId,omitempty"`
	Source      string         `json:"source,omitempty"`
	Target      string         `json:"target,omitempty"`
	Description string         `json:"description,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
}

// Recorder is an append-only sink of steps. A nil *Recorder discards
// everything, so algorithms can record unconditionally and callers
// that don't need a trace just pass nil.
type Recorder struct {
	steps []Step
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{}
}

// Add appends a step. No-op on a nil recorder.
func (r *Recorder) Add(s Step) {
	if r == nil {
		return
	}
	r.steps = append(r.steps, s)
}

// Addf appends a step with a formatted description.
func (r *Recorder) Addf(typ, targetID, format string, args ...any) {
	if r == nil {
		return
	}
	r.steps = append(r.steps, Step{
		Type:        typ,
		TargetID:    targetID,
		Description: fmt.Sprintf(format, args...),
	})
}

// Edge appends a step describing an edge visit.
func (r *Recorder) Edge(typ, source, target, format string, args ...any) {
	if r == nil {
		return
	}
	r.steps = append(r.steps, Step{
		Type:        typ,
		Source:      source,
		Target:      target,
		Description: fmt.Sprintf(format, args...),
	})
}

// Steps returns the recorded steps in emission order. Never nil, so
// the result serializes as a JSON array even when empty.
func (r *Recorder) Steps() []Step {
	if r == nil || r.steps == nil {
		return []Step{}
	}
	return r.steps
}

// Len reports how many steps have been recorded.
func (r *Recorder) Len() int {
	if r == nil {
		return 0
	}
	return len(r.steps)
}
