package pert

// Task is a single activity in the project. Once the project has been
// validated the engine never mutates a task's declared fields.
type Task struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Duration     float64  `json:"duration"`
	Predecessors []string `json:"predecessors"`
}

// TaskSchedule holds the computed dates and floats for a single task.
type TaskSchedule struct {
	TaskID         string  `json:"taskId"`
	EarliestStart  float64 `json:"earliestStart"`
	EarliestFinish float64 `json:"earliestFinish"`
	LatestStart    float64 `json:"latestStart"`
	LatestFinish   float64 `json:"latestFinish"`
	TotalFloat     float64 `json:"totalFloat"`
	FreeFloat      float64 `json:"freeFloat"`
	IsCritical     bool    `json:"isCritical"`
}

// Schedule is the complete critical path analysis of a project.
type Schedule struct {
	Tasks           []*TaskSchedule          // sorted by earliest start
	ByID            map[string]*TaskSchedule // same entries keyed by task id
	CriticalPath    []string                 // critical task ids ordered by earliest start
	ProjectDuration float64
	TopoOrder       []string
}
