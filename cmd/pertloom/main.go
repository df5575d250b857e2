package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/joshharrison/pertloom/internal/aoa"
	"github.com/joshharrison/pertloom/internal/api"
	"github.com/joshharrison/pertloom/internal/pert"
	"github.com/joshharrison/pertloom/internal/report"
	"github.com/joshharrison/pertloom/internal/trace"
	"github.com/joshharrison/pertloom/internal/ui"
)

var (
	flagFile   string
	flagJSON   bool
	flagFormat string
	flagPort   int
	flagTrace  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pertloom",
		Short: "Critical path scheduling and activity-on-arrow networks",
		Long: `Pertloom reads a task list with durations and predecessors, computes
earliest/latest dates, floats and the critical path, and synthesizes the
activity-on-arrow event network for the project.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagFile, "file", "", "Task file (JSON); omit to use the built-in sample project")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(networkCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(sampleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("error:"), err)
		os.Exit(1)
	}
}

// loadProject builds the project from --file, or from the built-in
// sample when no file is given.
func loadProject() (*pert.Project, error) {
	if flagFile == "" {
		return sampleProject()
	}

	data, err := os.ReadFile(flagFile)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("task file %s is not valid JSON", flagFile)
	}

	// Accept either a bare array of tasks or a {"tasks": [...]} wrapper.
	tasks := gjson.ParseBytes(data)
	if !tasks.IsArray() {
		tasks = tasks.Get("tasks")
	}
	if !tasks.Exists() || !tasks.IsArray() {
		return nil, fmt.Errorf("task file %s has no task array", flagFile)
	}

	p := pert.NewProject()
	var addErr error
	tasks.ForEach(func(_, t gjson.Result) bool {
		id := t.Get("id").String()
		name := t.Get("name").String()
		if name == "" {
			name = id
		}
		var preds []string
		t.Get("predecessors").ForEach(func(_, pr gjson.Result) bool {
			preds = append(preds, pr.String())
			return true
		})
		if err := p.AddTask(id, name, t.Get("duration").Float(), preds); err != nil {
			addErr = err
			return false
		}
		return true
	})
	if addErr != nil {
		return nil, addErr
	}
	if err := p.ValidateReferences(); err != nil {
		return nil, err
	}
	return p, nil
}

// sampleProject is a small construction project: studies, foundations,
// walls, then roofing and electrical in parallel before finishing.
func sampleProject() (*pert.Project, error) {
	p := pert.NewProject()
	sample := []struct {
		id, name string
		duration float64
		preds    []string
	}{
		{"A", "Preliminary studies", 3, nil},
		{"B", "Foundations", 5, []string{"A"}},
		{"C", "Walls", 4, []string{"B"}},
		{"D", "Roofing", 3, []string{"C"}},
		{"E", "Electrical", 2, []string{"B"}},
		{"F", "Finishing", 2, []string{"D", "E"}},
	}
	for _, t := range sample {
		if err := p.AddTask(t.id, t.name, t.duration, t.preds); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func analyze(p *pert.Project) (*pert.Schedule, []trace.Step, error) {
	var rec *trace.Recorder
	if flagTrace {
		rec = trace.New()
	}
	schedule, err := pert.Analyze(p, rec)
	if err != nil {
		return nil, nil, err
	}
	return schedule, rec.Steps(), nil
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute the CPM schedule and critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			schedule, steps, err := analyze(p)
			if err != nil {
				return err
			}

			if flagJSON {
				out := map[string]any{
					"schedule":        schedule.Tasks,
					"criticalPath":    schedule.CriticalPath,
					"projectDuration": schedule.ProjectDuration,
				}
				if flagTrace {
					out["steps"] = steps
				}
				return outputJSON(out)
			}

			printScheduleTable(p, schedule)
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "Include computation steps in JSON output")
	return cmd
}

func printScheduleTable(p *pert.Project, schedule *pert.Schedule) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Task", "Name", "Dur", "ES", "EF", "LS", "LF", "Total float", "Free float", "Critical")

	for _, ts := range schedule.Tasks {
		task, _ := p.Task(ts.TaskID)
		name := ""
		if task != nil {
			name = task.Name
		}
		_ = table.Append(
			ui.Bold(ts.TaskID),
			name,
			fnum(taskDuration(task)),
			fnum(ts.EarliestStart),
			fnum(ts.EarliestFinish),
			fnum(ts.LatestStart),
			fnum(ts.LatestFinish),
			ui.FloatValue(ts.TotalFloat, fnum(ts.TotalFloat)),
			fnum(ts.FreeFloat),
			ui.CriticalMark(ts.IsCritical),
		)
	}
	_ = table.Render()

	fmt.Println()
	fmt.Printf("%s %s\n", ui.BoldCyan("Project duration:"), ui.Bold(fnum(schedule.ProjectDuration)))
	fmt.Printf("%s ", ui.BoldCyan("Critical path:"))
	for i, id := range schedule.CriticalPath {
		if i > 0 {
			fmt.Print(ui.Dim(" → "))
		}
		fmt.Print(ui.BoldRed(id))
	}
	fmt.Println()
}

func taskDuration(t *pert.Task) float64 {
	if t == nil {
		return 0
	}
	return t.Duration
}

func fnum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func networkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Synthesize the activity-on-arrow event network",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject()
			if err != nil {
				return err
			}

			var rec *trace.Recorder
			if flagTrace {
				rec = trace.New()
			}
			network, err := aoa.Synthesize(p, rec)
			if err != nil {
				return err
			}

			if flagTrace {
				return outputJSON(map[string]any{
					"nodes":           network.Nodes,
					"arcs":            network.Arcs,
					"projectDuration": network.ProjectDuration,
					"steps":           rec.Steps(),
				})
			}
			return outputJSON(network)
		},
	}
	cmd.Flags().BoolVar(&flagTrace, "trace", false, "Include synthesis steps in output")
	return cmd
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print a combined schedule and network summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			schedule, err := pert.Analyze(p, nil)
			if err != nil {
				return err
			}
			network, err := aoa.Synthesize(p, nil)
			if err != nil {
				return err
			}
			report.New(p, schedule, network).PrintSummary(os.Stdout)
			return nil
		},
	}
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the project as a Graphviz DOT graph",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			schedule, _, err := analyze(p)
			if err != nil {
				return err
			}

			switch flagFormat {
			case "dot":
				return printTaskDOT(p, schedule)
			case "aoa":
				network, err := aoa.Synthesize(p, nil)
				if err != nil {
					return err
				}
				return printAoADOT(network)
			default:
				return fmt.Errorf("unsupported format: %s (use dot or aoa)", flagFormat)
			}
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "dot", "Output format (dot = task graph, aoa = event network)")
	return cmd
}

func printTaskDOT(p *pert.Project, schedule *pert.Schedule) error {
	fmt.Println("digraph pertloom {")
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=box, style=rounded];")
	fmt.Println()

	for _, id := range p.IDs() {
		task, _ := p.Task(id)
		ts := schedule.ByID[id]
		label := fmt.Sprintf("%s\\n%s\\nES %s  LF %s", id, task.Name,
			fnum(ts.EarliestStart), fnum(ts.LatestFinish))
		attrs := fmt.Sprintf(`label="%s"`, label)
		if ts.IsCritical {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Printf("  %q [%s];\n", id, attrs)
	}

	fmt.Println()

	for _, id := range p.IDs() {
		task, _ := p.Task(id)
		for _, pred := range task.Predecessors {
			style := ""
			if schedule.ByID[pred].IsCritical && schedule.ByID[id].IsCritical {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Printf("  %q -> %q%s;\n", pred, id, style)
		}
	}

	fmt.Println("}")
	return nil
}

func printAoADOT(n *aoa.Network) error {
	fmt.Println("digraph pertloom_aoa {")
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=circle];")
	fmt.Println()

	for _, ev := range n.Nodes {
		attrs := fmt.Sprintf(`label="%s\n%s|%s"`, ev.Label,
			fnum(ev.EET), letLabel(ev.LET))
		if ev.IsCritical {
			attrs += `, color=red, penwidth=2`
		}
		fmt.Printf("  %q [%s];\n", ev.ID, attrs)
	}

	fmt.Println()

	for _, arc := range n.Arcs {
		attrs := fmt.Sprintf(`label="%s"`, arc.Label)
		if arc.IsDummy {
			attrs += `, style=dashed`
		}
		if arc.IsCritical {
			attrs += `, color=red, penwidth=2`
		}
		fmt.Printf("  %q -> %q [%s];\n", arc.Source, arc.Target, attrs)
	}

	fmt.Println("}")
	return nil
}

func letLabel(let float64) string {
	if math.IsInf(let, 1) {
		return "∞"
	}
	return fnum(let)
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for the browser visualiser",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:    fmt.Sprintf(":%d", flagPort),
				Handler: api.New(),
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			ui.PrintLogo()
			fmt.Printf("🚀 %s listening on %s\n", ui.BoldCyan("Pertloom API:"), ui.Bold(srv.Addr))

			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				fmt.Fprintf(os.Stderr, "\n🛑 %s\n", ui.Yellow("Received interrupt, shutting down..."))
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().IntVar(&flagPort, "port", 8000, "Listen port")
	return cmd
}

func sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample project as a task file",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sampleProject()
			if err != nil {
				return err
			}
			tasks := make([]*pert.Task, 0, p.TaskCount())
			for _, id := range p.IDs() {
				t, _ := p.Task(id)
				tasks = append(tasks, t)
			}
			return outputJSON(map[string]any{"tasks": tasks})
		},
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
