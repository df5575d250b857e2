// Package report renders a terminal-friendly summary of a project
// analysis: the schedule, the floats, and the event network shape.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshharrison/pertloom/internal/aoa"
	"github.com/joshharrison/pertloom/internal/pert"
	"github.com/joshharrison/pertloom/internal/ui"
)

// Reporter holds everything a summary needs.
type Reporter struct {
	Project  *pert.Project
	Schedule *pert.Schedule
	Network  *aoa.Network
}

// New creates a Reporter. Network may be nil when only the schedule
// is wanted.
func New(p *pert.Project, s *pert.Schedule, n *aoa.Network) *Reporter {
	return &Reporter{Project: p, Schedule: s, Network: n}
}

// PrintSummary writes the full analysis summary.
func (r *Reporter) PrintSummary(w io.Writer) {
	critical := 0
	for _, ts := range r.Schedule.Tasks {
		if ts.IsCritical {
			critical++
		}
	}

	fmt.Fprintf(w, "\n📋 %s\n", ui.BoldCyan("Project Analysis"))
	fmt.Fprintf(w, "%s\n", ui.Cyan("══════════════════════════"))
	fmt.Fprintf(w, "Tasks:     %d total, %s\n", len(r.Schedule.Tasks),
		ui.BoldRed(fmt.Sprintf("%d critical", critical)))
	fmt.Fprintf(w, "Duration:  %s\n\n", ui.Bold(fnum(r.Schedule.ProjectDuration)))

	for _, ts := range r.Schedule.Tasks {
		r.printTask(w, ts)
	}

	fmt.Fprintf(w, "\n%s\n", ui.Cyan("──────────────────────────"))
	fmt.Fprintf(w, "Critical:  %s\n",
		ui.BoldYellow("⚡ "+strings.Join(r.Schedule.CriticalPath, " → ")))

	if r.Network != nil {
		r.printNetwork(w)
	}
}

func (r *Reporter) printTask(w io.Writer, ts *pert.TaskSchedule) {
	name := ts.TaskID
	if t, ok := r.Project.Task(ts.TaskID); ok {
		name = t.Name
	}

	mark := ui.Dim("  ")
	if ts.IsCritical {
		mark = ui.BoldYellow("⚡")
	}

	window := fmt.Sprintf("[%s, %s]", fnum(ts.EarliestStart), fnum(ts.LatestFinish))
	slack := ui.Green(fmt.Sprintf("float %s", fnum(ts.TotalFloat)))
	if ts.IsCritical {
		slack = ui.BoldRed("float 0")
	}

	fmt.Fprintf(w, "  %s %s  %s  %s  %s\n",
		mark, ui.Bold(ts.TaskID), name, ui.Dim(window), slack)
}

func (r *Reporter) printNetwork(w io.Writer) {
	dummies := 0
	for _, arc := range r.Network.Arcs {
		if arc.IsDummy {
			dummies++
		}
	}

	fmt.Fprintf(w, "\n🕸  %s\n", ui.BoldCyan("Event Network"))
	fmt.Fprintf(w, "Events:    %d\n", len(r.Network.Nodes))
	fmt.Fprintf(w, "Arcs:      %d (%s)\n", len(r.Network.Arcs),
		ui.Dim(fmt.Sprintf("%d dummy", dummies)))

	criticalEvents := make([]string, 0, len(r.Network.Nodes))
	for _, ev := range r.Network.Nodes {
		if ev.IsCritical {
			criticalEvents = append(criticalEvents, ev.Label)
		}
	}
	fmt.Fprintf(w, "Critical:  %s\n",
		ui.BoldYellow(strings.Join(criticalEvents, " → ")))
}

func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
