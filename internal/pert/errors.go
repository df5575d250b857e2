package pert

import (
	"errors"
	"fmt"
)

// Sentinel kinds for input validation failures. All of them are fatal
// for the run that triggers them; the caller must fix the input and
// resubmit.
var (
	ErrDuplicateTask      = errors.New("duplicate task id")
	ErrUnknownPredecessor = errors.New("unknown predecessor")
	ErrCycle              = errors.New("dependency cycle")
	ErrInvalidDuration    = errors.New("invalid duration")
)

// InputError wraps a validation failure with the offending task id(s).
type InputError struct {
	Kind   error
	TaskID string
	Ref    string // predecessor id for ErrUnknownPredecessor
	Detail string
}

func (e *InputError) Error() string {
	switch {
	case e.Ref != "":
		return fmt.Sprintf("%s: task %s references %s", e.Kind.Error(), e.TaskID, e.Ref)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
	case e.TaskID != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.TaskID)
	default:
		return e.Kind.Error()
	}
}

func (e *InputError) Unwrap() error { return e.Kind }

func duplicateErr(taskID string) error {
	return &InputError{Kind: ErrDuplicateTask, TaskID: taskID}
}

func unknownPredErr(taskID, predID string) error {
	return &InputError{Kind: ErrUnknownPredecessor, TaskID: taskID, Ref: predID}
}

func invalidDurationErr(taskID string, d float64) error {
	return &InputError{Kind: ErrInvalidDuration, TaskID: taskID, Detail: fmt.Sprintf("task %s has duration %v", taskID, d)}
}

func cycleErr(sorted, total int) error {
	return &InputError{Kind: ErrCycle, Detail: fmt.Sprintf("%d of %d tasks sorted", sorted, total)}
}
