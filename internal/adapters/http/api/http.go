// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/internal/adapters/repository"
	"github.com/okian/xgflow/internal/domain/teams"
)

// Default limits applied when no option overrides them.
const (
	defaultMaxBodyBytes   = 4 << 20
	defaultRequestTimeout = 10 * time.Second
	corsMaxAgeSeconds     = 300
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Document assembles a scraped match and renders it for the chart.
	Document(ctx context.Context, f matchfile.File) (matchfile.Document, error)

	// Timeline returns a previously assembled document by match id.
	Timeline(ctx context.Context, matchID string) (matchfile.Document, error)

	// Timelines lists recently assembled documents, most recent first.
	Timelines(ctx context.Context, limit int) ([]repository.Summary, error)

	// Palette exposes the team colour lookup.
	Palette() *teams.Palette
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	timelinesHandler *TimelinesHandler
	teamsHandler     *TeamsHandler

	corsOrigins    []string
	maxBodyBytes   int64
	requestTimeout time.Duration
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed by the CORS middleware.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRequestTimeout bounds a single request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		corsOrigins:    []string{"*"},
		maxBodyBytes:   defaultMaxBodyBytes,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.timelinesHandler = NewTimelinesHandler(deps, s.maxBodyBytes)
	s.teamsHandler = NewTeamsHandler(deps)
	return s
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         corsMaxAgeSeconds,
	}))

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/timelines", MetricsMiddleware(s.timelinesHandler.HandlePostTimeline, "timelines"))
		r.Get("/timelines", MetricsMiddleware(s.timelinesHandler.HandleListTimelines, "timelines_list"))
		r.Get("/timelines/{matchID}", MetricsMiddleware(s.timelinesHandler.HandleGetTimeline, "timeline"))
		r.Get("/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
	})

	return r
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", s.Router())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
