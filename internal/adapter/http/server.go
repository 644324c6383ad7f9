package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/aero-refdb/internal/domain"
	"github.com/couchcryptid/aero-refdb/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup resolves identifiers against the loaded databases.
type Lookup interface {
	Airport(id string) (domain.Airport, bool)
	Airway(id string) (domain.Airway, bool)
	Fix(id string) (domain.NamedFix, bool)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the lookup API plus health, readiness and metrics endpoints.
type Server struct {
	httpServer *http.Server
	lookup     Lookup
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /v1 lookup routes, /healthz, /readyz
// and /metrics.
func NewServer(addr string, lookup Lookup, metrics *observability.Metrics, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		lookup:  lookup,
		metrics: metrics,
		logger:  logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(lookup))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Gatherer(), promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/airports/{id}", s.handleAirport)
		r.Get("/airways/{id}", s.handleAirway)
		r.Get("/fixes/{id}", s.handleFix)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ap, ok := s.lookup.Airport(id)
	s.respond(w, "airports", id, ap, ok)
}

func (s *Server) handleAirway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	aw, ok := s.lookup.Airway(id)
	s.respond(w, "airways", id, aw, ok)
}

func (s *Server) handleFix(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fix, ok := s.lookup.Fix(id)
	s.respond(w, "fixes", id, fix, ok)
}

func (s *Server) respond(w http.ResponseWriter, database, id string, v any, found bool) {
	if !found {
		s.metrics.LookupRequests.WithLabelValues(database, "miss").Inc()
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "not found",
			"id":    id,
		})
		return
	}
	s.metrics.LookupRequests.WithLabelValues(database, "hit").Inc()
	writeJSON(w, http.StatusOK, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
