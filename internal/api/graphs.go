package api

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/joshharrison/pertloom/internal/graph"
	"github.com/joshharrison/pertloom/internal/trace"
)

type renderNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Position Position `json:"position"`
}

type renderEdge struct {
	ID     string  `json:"id"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

type algorithmRequest struct {
	StartNode string `json:"startNode"`
	EndNode   string `json:"endNode,omitempty"`

	// Optional caller-supplied graph; when absent the sample road
	// network is used.
	Graph *graphPayload `json:"graph,omitempty"`
}

type graphPayload struct {
	Directed bool         `json:"directed"`
	Edges    []graph.Edge `json:"edges"`
}

type algorithmResponse struct {
	Result any          `json:"result"`
	Steps  []trace.Step `json:"steps"`
}

func (s *Server) handleGraphData(w http.ResponseWriter, r *http.Request) {
	nodes := s.sample.Nodes()
	positions := circularPositions(nodes)

	out := struct {
		Nodes []renderNode `json:"nodes"`
		Edges []renderEdge `json:"edges"`
	}{}
	for _, n := range nodes {
		out.Nodes = append(out.Nodes, renderNode{ID: n, Label: n, Position: positions[n]})
	}
	for _, e := range s.sample.Edges() {
		out.Edges = append(out.Edges, renderEdge{
			ID:     e.U + "-" + e.V,
			Source: e.U,
			Target: e.V,
			Label:  strconv.FormatFloat(e.Weight, 'f', -1, 64),
			Weight: e.Weight,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGraphNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"nodes": s.sample.Nodes()})
}

// requestGraph resolves which graph a request runs against: the
// caller-supplied edge list when present, the shared sample
// otherwise. The sample is never mutated, so sharing it is safe.
func (s *Server) requestGraph(req *algorithmRequest) *graph.Graph {
	if req.Graph == nil {
		return s.sample
	}
	g := graph.New(req.Graph.Directed)
	for _, e := range req.Graph.Edges {
		g.AddEdge(e.U, e.V, e.Weight)
	}
	return g
}

func decodeAlgorithmRequest(w http.ResponseWriter, r *http.Request) (*algorithmRequest, bool) {
	var req algorithmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	return &req, true
}

func (s *Server) handleBFS(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	order, err := graph.BFS(s.requestGraph(req), req.StartNode, rec)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, algorithmResponse{
		Result: map[string]any{"visitOrder": order},
		Steps:  rec.Steps(),
	})
}

func (s *Server) handleDFS(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	order, err := graph.DFS(s.requestGraph(req), req.StartNode, rec)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, algorithmResponse{
		Result: map[string]any{"visitOrder": order},
		Steps:  rec.Steps(),
	})
}

func (s *Server) handleDijkstra(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	g := s.requestGraph(req)
	dist, prev, err := graph.Dijkstra(g, req.StartNode, req.EndNode, rec)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	result := map[string]any{"distances": finiteDistances(dist)}
	if req.EndNode != "" {
		result["path"] = graph.Path(prev, req.StartNode, req.EndNode, dist)
		if d := dist[req.EndNode]; !math.IsInf(d, 1) {
			result["pathDistance"] = d
		}
	}
	writeJSON(w, http.StatusOK, algorithmResponse{Result: result, Steps: rec.Steps()})
}

func (s *Server) handleBellmanFord(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	dist, _, neg, err := graph.BellmanFord(s.requestGraph(req), req.StartNode, rec)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, algorithmResponse{
		Result: map[string]any{
			"distances":        finiteDistances(dist),
			"hasNegativeCycle": neg,
		},
		Steps: rec.Steps(),
	})
}

func (s *Server) handlePrim(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	mst, err := graph.Prim(s.requestGraph(req), req.StartNode, rec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, algorithmResponse{Result: mstResult(mst), Steps: rec.Steps()})
}

func (s *Server) handleKruskal(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAlgorithmRequest(w, r)
	if !ok {
		return
	}
	rec := trace.New()
	mst, err := graph.Kruskal(s.requestGraph(req), rec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, algorithmResponse{Result: mstResult(mst), Steps: rec.Steps()})
}

func mstResult(mst []graph.Edge) map[string]any {
	total := 0.0
	for _, e := range mst {
		total += e.Weight
	}
	return map[string]any{"mstEdges": mst, "totalWeight": total}
}

// finiteDistances drops unreachable entries so the payload never
// carries a raw infinity.
func finiteDistances(dist map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(dist))
	for n, d := range dist {
		if !math.IsInf(d, 1) {
			out[n] = d
		}
	}
	return out
}
