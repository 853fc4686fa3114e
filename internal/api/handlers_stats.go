package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	queueDepth := 0
	if s.orchestrator != nil {
		queueDepth = s.orchestrator.QueueDepth()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"operations":  s.svc.Stats().Snapshot(),
		"queue_depth": queueDepth,
	})
}
