package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	New().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPert_LinearChain(t *testing.T) {
	body := `{"tasks":[
		{"id":"A","name":"Task A","duration":3,"predecessors":[]},
		{"id":"B","name":"Task B","duration":5,"predecessors":["A"]},
		{"id":"C","name":"Task C","duration":4,"predecessors":["B"]},
		{"id":"D","name":"Task D","duration":3,"predecessors":["C"]}
	]}`
	w := doRequest(t, http.MethodPost, "/api/pert", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp struct {
		Result struct {
			ProjectDuration float64 `json:"projectDuration"`
			CriticalPath    []string `json:"criticalPath"`
			AoA             struct {
				Nodes []json.RawMessage `json:"nodes"`
				Arcs  []json.RawMessage `json:"arcs"`
			} `json:"aoa"`
		} `json:"result"`
		Steps []json.RawMessage `json:"steps"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Result.ProjectDuration != 15 {
		t.Errorf("expected project duration 15, got %v", resp.Result.ProjectDuration)
	}
	if len(resp.Result.CriticalPath) != 4 {
		t.Errorf("expected 4 critical tasks, got %v", resp.Result.CriticalPath)
	}
	// Linear chain: start, end, and one junction per inner precedence.
	if len(resp.Result.AoA.Arcs) != 4 {
		t.Errorf("expected 4 arcs, got %d", len(resp.Result.AoA.Arcs))
	}
	if len(resp.Steps) == 0 {
		t.Error("expected trace steps in response")
	}
}

func TestPert_CycleRejected(t *testing.T) {
	body := `{"tasks":[
		{"id":"A","name":"A","duration":1,"predecessors":["B"]},
		{"id":"B","name":"B","duration":1,"predecessors":["A"]}
	]}`
	w := doRequest(t, http.MethodPost, "/api/pert", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "cycle") {
		t.Errorf("expected cycle error, got %s", w.Body)
	}
}

func TestPert_DuplicateRejected(t *testing.T) {
	body := `{"tasks":[
		{"id":"A","name":"A","duration":1,"predecessors":[]},
		{"id":"A","name":"A again","duration":2,"predecessors":[]}
	]}`
	w := doRequest(t, http.MethodPost, "/api/pert", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body)
	}
}

func TestPert_EmptyBodyRejected(t *testing.T) {
	w := doRequest(t, http.MethodPost, "/api/pert", `{"tasks":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGraphData_Layout(t *testing.T) {
	w := doRequest(t, http.MethodGet, "/api/graph", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Nodes []renderNode `json:"nodes"`
		Edges []renderEdge `json:"edges"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Nodes) != 10 {
		t.Errorf("expected 10 nodes, got %d", len(resp.Nodes))
	}
	for _, n := range resp.Nodes {
		if n.Position.X == 0 && n.Position.Y == 0 {
			t.Errorf("node %s has no layout position", n.ID)
		}
	}
}

func TestDijkstraEndpoint(t *testing.T) {
	w := doRequest(t, http.MethodPost, "/api/algorithm/dijkstra",
		`{"startNode":"Paris","endNode":"Lyon"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp struct {
		Result struct {
			Path         []string `json:"path"`
			PathDistance float64  `json:"pathDistance"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result.PathDistance != 130 {
		t.Errorf("expected distance 130, got %v", resp.Result.PathDistance)
	}
	if len(resp.Result.Path) == 0 || resp.Result.Path[0] != "Paris" {
		t.Errorf("unexpected path %v", resp.Result.Path)
	}
}

func TestBFSEndpoint_UnknownStart(t *testing.T) {
	w := doRequest(t, http.MethodPost, "/api/algorithm/bfs", `{"startNode":"Atlantis"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAlgorithm_CallerSuppliedGraph(t *testing.T) {
	body := `{"startNode":"a","graph":{"directed":true,"edges":[
		{"source":"a","target":"b","weight":1},
		{"source":"b","target":"c","weight":2}
	]}}`
	w := doRequest(t, http.MethodPost, "/api/algorithm/bfs", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	var resp struct {
		Result struct {
			VisitOrder []string `json:"visitOrder"`
		} `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, n := range want {
		if resp.Result.VisitOrder[i] != n {
			t.Fatalf("expected visit order %v, got %v", want, resp.Result.VisitOrder)
		}
	}
}
