// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/internal/adapters/repository"
	"github.com/okian/xgflow/internal/domain/assemble"
	"github.com/okian/xgflow/internal/domain/teams"
	"github.com/okian/xgflow/pkg/logger"
	"github.com/okian/xgflow/pkg/metrics"
)

// Service wraps the pure match assembler with logging, metrics and team
// presentation data. It holds no per-match state.
type Service struct {
	logger  logger.Logger
	palette *teams.Palette
	metrics *metrics.Manager
	store   repository.Store

	startedAt   time.Time
	assembled   atomic.Int64
	rejected    atomic.Int64
	diagnostics atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPalette sets the team colour lookup used for rendered documents.
func WithPalette(p *teams.Palette) Option {
	return func(s *Service) {
		if p != nil {
			s.palette = p
		}
	}
}

// WithMetrics records into m instead of the process-wide manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithStore keeps assembled documents in st for later retrieval.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		palette:   teams.NewPalette(),
		metrics:   metrics.Default(),
		store:     repository.NewMemoryStore(),
		startedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s.logger
}

// Assemble reconciles one match and records what it found.
func (s *Service) Assemble(ctx context.Context, m assemble.Match) (assemble.Result, error) {
	start := time.Now()

	res, err := assemble.Assemble(m)
	if err != nil {
		s.rejected.Add(1)
		s.metrics.ObserveAssemblyError()
		s.log().Warn(ctx, "match rejected",
			logger.String("home", m.Home),
			logger.String("away", m.Away),
			logger.Error(err),
		)
		return assemble.Result{}, err
	}

	latencyMs := float64(time.Since(start).Microseconds()) / 1000
	s.assembled.Add(1)
	s.metrics.ObserveAssembly(latencyMs, len(m.Shots))
	s.metrics.ObserveTeamXG(res.Home.Total())
	s.metrics.ObserveTeamXG(res.Away.Total())
	for _, ev := range res.Events {
		s.metrics.ObserveEvent(ev.Type.String(), ev.CumulativeXG != nil)
	}

	s.diagnostics.Add(int64(len(res.Diagnostics)))
	for _, d := range res.Diagnostics {
		s.metrics.ObserveDiagnostic(string(d.Kind), string(d.Source))
		s.log().Warn(ctx, "record diagnostic",
			logger.String("kind", string(d.Kind)),
			logger.String("source", string(d.Source)),
			logger.Int("index", d.Index),
			logger.String("team", d.Team),
			logger.String("minute", d.MinuteText),
			logger.String("detail", d.Detail),
		)
	}

	s.log().Debug(ctx, "match assembled",
		logger.String("home", res.HomeTeam),
		logger.String("away", res.AwayTeam),
		logger.Float64("homeXG", res.Home.Total()),
		logger.Float64("awayXG", res.Away.Total()),
		logger.Int("events", len(res.Events)),
		logger.Int("diagnostics", len(res.Diagnostics)),
		logger.Float64("latencyMs", latencyMs),
	)
	return res, nil
}

// Document assembles f and renders it for the chart.
func (s *Service) Document(ctx context.Context, f matchfile.File) (matchfile.Document, error) {
	res, err := s.Assemble(ctx, f.Match())
	if err != nil {
		return matchfile.Document{}, err
	}
	doc := matchfile.NewDocument(f, res, s.palette)
	if doc.MatchID != "" {
		if err := s.store.Put(ctx, doc); err != nil {
			s.log().Warn(ctx, "timeline not stored", logger.String("matchID", doc.MatchID), logger.Error(err))
		}
	}
	return doc, nil
}

// Timeline returns a previously assembled document.
func (s *Service) Timeline(ctx context.Context, matchID string) (matchfile.Document, error) {
	return s.store.Get(ctx, matchID)
}

// Timelines lists up to limit stored documents, most recent first.
func (s *Service) Timelines(ctx context.Context, limit int) ([]repository.Summary, error) {
	return s.store.List(ctx, limit)
}

// Palette returns the team colour lookup.
func (s *Service) Palette() *teams.Palette {
	return s.palette
}

// IsInvalidMatch reports whether err is a rejected team designation.
func IsInvalidMatch(err error) bool {
	return errors.Is(err, assemble.ErrInvalidMatch)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptimeSeconds":    int64(time.Since(s.startedAt).Seconds()),
		"matchesAssembled": s.assembled.Load(),
		"matchesRejected":  s.rejected.Load(),
		"diagnostics":      s.diagnostics.Load(),
		"knownTeams":       len(s.palette.Teams()),
		"storedTimelines":  s.store.Count(context.Background()),
	}
}
