package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold       = color.New(color.Bold).SprintFunc()
	Dim        = color.New(color.Faint).SprintFunc()
	Cyan       = color.New(color.FgCyan).SprintFunc()
	Green      = color.New(color.FgGreen).SprintFunc()
	Red        = color.New(color.FgRed).SprintFunc()
	Yellow     = color.New(color.FgYellow).SprintFunc()
	BoldCyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldRed    = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldWhite  = color.New(color.Bold, color.FgWhite).SprintFunc()
	BoldYellow = color.New(color.Bold, color.FgYellow).SprintFunc()
)

// PrintLogo renders the colored pertloom logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	arcs := color.New(color.FgYellow)
	sep := color.New(color.FgCyan)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +--------------------------+")
	arcs.Fprintln(w, "   |  o-->o-->o-->o-->o-->o   |")
	sep.Fprintln(w, "   |==========================|")
	brand.Fprintln(w, "   |  P  E  R  T  L  O  O  M  |")
	sep.Fprintln(w, "   |==========================|")
	arcs.Fprintln(w, "   |   o-->o-->o-->o-->o-->o  |")
	frame.Fprintln(w, "   +--------------------------+")
	tag.Fprintln(w, "   Critical path scheduling")
	fmt.Fprintln(w)
}

// CriticalMark returns a colored marker for the critical column of
// the schedule table.
func CriticalMark(critical bool) string {
	if critical {
		return BoldRed("yes")
	}
	return Dim("no")
}

// FloatValue colors a formatted float figure. Zero slack is what puts
// a task on the critical path, so it gets the warning treatment.
func FloatValue(f float64, s string) string {
	if f == 0 {
		return BoldRed(s)
	}
	return Green(s)
}
