package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/bluebook/internal/bluebook"
	"github.com/dgallion1/bluebook/internal/config"
	"github.com/dgallion1/bluebook/internal/fetch"
	"github.com/dgallion1/bluebook/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/singleflight"
)

// Server is the HTTP API server for the Bluebook index.
type Server struct {
	router       chi.Router
	svc          *bluebook.Service
	lib          *fetch.Library
	orchestrator *pipeline.Orchestrator
	log          *slog.Logger
	cfg          config.Config

	// Identical concurrent queries share one document scan.
	group singleflight.Group
}

// NewServer creates and configures the HTTP server. orch may be nil, in
// which case indexing endpoints answer 503.
func NewServer(svc *bluebook.Service, lib *fetch.Library, orch *pipeline.Orchestrator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		svc:          svc,
		lib:          lib,
		orchestrator: orch,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleHome)

	// API endpoints; authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/documents", s.handleListDocuments)
		r.Route("/api/documents/{file}", func(r chi.Router) {
			r.Get("/parts", s.handleParts)
			r.Get("/sections", s.handleSections)
			r.Get("/sections/{section}/subtopics", s.handleSubtopics)
			r.Get("/sections/{section}/subtopics/{subtopic}/content", s.handleContent)
			r.Post("/index", s.handleIndex)
		})
		r.Get("/api/index/{jobID}", s.handleIndexStatus)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
