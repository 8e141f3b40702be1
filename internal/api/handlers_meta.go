package api

import (
	"encoding/json"
	"net/http"
	"sort"
)

// handleListPersonas lists the registered persona roles.
func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	roles := s.orchestrator.Pipeline().Registry().Roles()
	sort.Strings(roles)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"personas": roles})
}

// handleStats reports rolling per-document processing latency aggregates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"processing":  s.orchestrator.Stats().Snapshot(),
	})
}
