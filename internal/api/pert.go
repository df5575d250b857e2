package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/joshharrison/pertloom/internal/aoa"
	"github.com/joshharrison/pertloom/internal/pert"
	"github.com/joshharrison/pertloom/internal/trace"
)

type pertRequest struct {
	Tasks []pert.Task `json:"tasks"`
}

type pertResult struct {
	Schedule        []*pert.TaskSchedule `json:"schedule"`
	CriticalPath    []string             `json:"criticalPath"`
	ProjectDuration float64              `json:"projectDuration"`
	AoA             *aoa.Network         `json:"aoa"`
}

type pertResponse struct {
	Result pertResult   `json:"result"`
	Steps  []trace.Step `json:"steps"`
}

// handlePert builds a project from the posted tasks and returns the
// CPM schedule together with the synthesized AoA network. Each
// request gets its own project instance; the two passes share nothing
// mutable, so they run concurrently.
func (s *Server) handlePert(w http.ResponseWriter, r *http.Request) {
	var req pertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "no tasks provided")
		return
	}

	p := pert.NewProject()
	for _, t := range req.Tasks {
		if err := p.AddTask(t.ID, t.Name, t.Duration, t.Predecessors); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := p.ValidateReferences(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		schedule *pert.Schedule
		network  *aoa.Network
		rec      = trace.New()
		aoaRec   = trace.New()
	)

	g, _ := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		schedule, err = pert.Analyze(p, rec)
		return err
	})
	g.Go(func() error {
		var err error
		network, err = aoa.Synthesize(p, aoaRec)
		return err
	})
	if err := g.Wait(); err != nil {
		// A construction defect in the synthesizer is our bug, not a
		// bad request.
		if errors.Is(err, aoa.ErrInvariant) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	steps := append(rec.Steps(), aoaRec.Steps()...)
	writeJSON(w, http.StatusOK, pertResponse{
		Result: pertResult{
			Schedule:        schedule.Tasks,
			CriticalPath:    schedule.CriticalPath,
			ProjectDuration: schedule.ProjectDuration,
			AoA:             network,
		},
		Steps: steps,
	})
}
