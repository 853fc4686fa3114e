package api

import (
	"fmt"
	"net/http"

	"github.com/dgallion1/bluebook/internal/fetch"
	"github.com/dgallion1/bluebook/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleIndex queues a background job that builds the full outline of a
// document.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "indexing unavailable", http.StatusServiceUnavailable)
		return
	}
	file, path, ok := s.resolve(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(file, path, fetch.DisplayName(file))
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"file":     job.File,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/index/%s", job.ID),
	})
}

func (s *Server) handleIndexStatus(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "indexing unavailable", http.StatusServiceUnavailable)
		return
	}
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
