// Package service provides the core business service that implements
// the dependencies required by the HTTP adapters.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/internal/domain/dashboard"
	"github.com/okian/recruit/pkg/logger"
	"github.com/okian/recruit/pkg/metrics"
)

// Chart kinds used as metric labels.
const (
	KindBar = "bar"
	KindPie = "pie"
)

// Default configuration constants.
const (
	defaultMaxPoints = 500
)

// Sentinel kinds for service errors.
var (
	ErrTooManyPoints = chart.ErrTooManyPoints
	ErrSource        = errors.New("dashboard source failed")
)

// Service assembles dashboard views and renders charts.
type Service struct {
	mu sync.RWMutex

	source    dashboard.Source
	maxPoints int
	logger    logger.Logger
	recorder  Recorder

	started   bool
	startedAt time.Time

	barRendered atomic.Int64
	pieRendered atomic.Int64
	rejected    atomic.Int64
	views       atomic.Int64
}

// Recorder receives render and view observations.
type Recorder interface {
	RecordChartRendered(kind string, points int, latencyMs float64)
	RecordChartError(kind, reason string)
	RecordPageView(tab, surface string)
}

type globalRecorder struct{}

func (globalRecorder) RecordChartRendered(kind string, points int, latencyMs float64) {
	metrics.RecordChartRendered(kind, points, latencyMs)
}

func (globalRecorder) RecordChartError(kind, reason string) { metrics.RecordChartError(kind, reason) }

func (globalRecorder) RecordPageView(tab, surface string) { metrics.RecordPageView(tab, surface) }

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where dashboard data comes from.
func WithSource(src dashboard.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithMaxPoints caps the number of points accepted per chart.
func WithMaxPoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPoints = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder replaces the global metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		source:    dashboard.SampleSource{},
		maxPoints: defaultMaxPoints,
		recorder:  globalRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("maxPoints", s.maxPoints),
		logger.String("source", fmt.Sprintf("%T", s.source)),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// MaxPoints returns the configured per-chart point limit.
func (s *Service) MaxPoints() int { return s.maxPoints }

// View prepares the dashboard for a tab. Charts are rendered only for the
// Overview tab; other tabs carry the snapshot without geometry.
func (s *Service) View(ctx context.Context, tab dashboard.Tab, surface string) (dashboard.View, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return dashboard.View{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	v := dashboard.View{Tab: tab, Snapshot: snap}

	switch tab {
	case dashboard.Overview:
		bar, err := s.RenderBar(ctx, snap.Applications)
		if err != nil {
			return dashboard.View{}, err
		}
		pie, err := s.RenderPie(ctx, snap.Pipeline)
		if err != nil {
			return dashboard.View{}, err
		}
		v.Applications, v.Pipeline = &bar, &pie
	case dashboard.Candidates, dashboard.Jobs, dashboard.Analytics:
	}

	s.views.Add(1)
	s.recorder.RecordPageView(tab.Slug(), surface)
	return v, nil
}

// Snapshot returns the current dashboard data.
func (s *Service) Snapshot(ctx context.Context) (dashboard.Snapshot, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return dashboard.Snapshot{}, fmt.Errorf("%w: %w", ErrSource, err)
	}
	return snap, nil
}

// RenderBar validates the series size and renders a bar chart.
func (s *Service) RenderBar(ctx context.Context, points []chart.BarPoint) (chart.BarChart, error) {
	if err := s.checkSize(ctx, KindBar, len(points)); err != nil {
		return chart.BarChart{}, err
	}
	start := time.Now()
	c, err := chart.RenderBar(points)
	if err != nil {
		s.reject(ctx, KindBar, "invalid_input", err)
		return chart.BarChart{}, err
	}
	s.barRendered.Add(1)
	s.recorder.RecordChartRendered(KindBar, len(points), elapsedMs(start))
	if c.Degenerate() {
		s.log().Debug(ctx, "bar series has a flat range", logger.Float64("value", c.Min))
	}
	return c, nil
}

// RenderPie validates the series size and renders a pie chart.
func (s *Service) RenderPie(ctx context.Context, points []chart.PiePoint) (chart.PieChart, error) {
	if err := s.checkSize(ctx, KindPie, len(points)); err != nil {
		return chart.PieChart{}, err
	}
	start := time.Now()
	c, err := chart.RenderPie(points)
	if err != nil {
		s.reject(ctx, KindPie, "invalid_input", err)
		return chart.PieChart{}, err
	}
	s.pieRendered.Add(1)
	s.recorder.RecordChartRendered(KindPie, len(points), elapsedMs(start))
	return c, nil
}

func (s *Service) checkSize(ctx context.Context, kind string, n int) error {
	if n <= s.maxPoints {
		return nil
	}
	err := fmt.Errorf("%w: %d > %d", ErrTooManyPoints, n, s.maxPoints)
	s.reject(ctx, kind, "too_many_points", err)
	return err
}

func (s *Service) reject(ctx context.Context, kind, reason string, err error) {
	s.rejected.Add(1)
	s.recorder.RecordChartError(kind, reason)
	s.log().Debug(ctx, "chart input rejected",
		logger.String("kind", kind),
		logger.String("reason", reason),
		logger.Error(err),
	)
}

// log tolerates use before Start, e.g. from the CLI.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return nopLogger{}
	}
	return s.logger
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"maxPoints":     s.maxPoints,
		"barRendered":   s.barRendered.Load(),
		"pieRendered":   s.pieRendered.Load(),
		"rejectedInput": s.rejected.Load(),
		"views":         s.views.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...logger.Field)  {}
func (nopLogger) Error(context.Context, string, ...logger.Field) {}
func (nopLogger) Debug(context.Context, string, ...logger.Field) {}
func (nopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (nopLogger) Fatal(context.Context, string, ...logger.Field) {}
func (n nopLogger) With(...logger.Field) logger.Logger          { return n }
func (n nopLogger) Named(string) logger.Logger                  { return n }
