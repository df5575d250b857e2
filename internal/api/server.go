// Package api exposes the scheduling engine and the graph algorithms
// over HTTP for the browser visualiser. Handlers build their own
// engine state per request; the only thing shared between requests is
// the immutable sample road network.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/joshharrison/pertloom/internal/graph"
)

// Server is the HTTP API server.
type Server struct {
	sample *graph.Graph // read-only after New
	mux    *http.ServeMux
}

// New creates a new Server with the sample road network preloaded.
func New() *Server {
	s := &Server{
		sample: graph.LoadSample(),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withCORS(s.mux).ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Scheduling
	s.mux.HandleFunc("POST /api/pert", s.handlePert)

	// Graph data and algorithms
	s.mux.HandleFunc("GET /api/graph", s.handleGraphData)
	s.mux.HandleFunc("GET /api/graph/nodes", s.handleGraphNodes)
	s.mux.HandleFunc("POST /api/algorithm/bfs", s.handleBFS)
	s.mux.HandleFunc("POST /api/algorithm/dfs", s.handleDFS)
	s.mux.HandleFunc("POST /api/algorithm/dijkstra", s.handleDijkstra)
	s.mux.HandleFunc("POST /api/algorithm/bellman-ford", s.handleBellmanFord)
	s.mux.HandleFunc("POST /api/algorithm/prim", s.handlePrim)
	s.mux.HandleFunc("POST /api/algorithm/kruskal", s.handleKruskal)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withCORS allows the browser frontend to call the API from its dev
// server origin.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
