// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/recruit/internal/domain/chart"
	"github.com/okian/recruit/internal/domain/dashboard"
	"github.com/okian/recruit/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StatsProvider

	RenderBar(ctx context.Context, points []chart.BarPoint) (chart.BarChart, error)
	RenderPie(ctx context.Context, points []chart.PiePoint) (chart.PieChart, error)

	// Snapshot exposes the current dashboard data for the sample charts.
	Snapshot(ctx context.Context) (dashboard.Snapshot, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	chartsHandler *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(deps),
		chartsHandler: NewChartsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/charts/bar", MetricsMiddleware(s.chartsHandler.HandleBar, "charts_bar"))
	mux.HandleFunc("/charts/pie", MetricsMiddleware(s.chartsHandler.HandlePie, "charts_pie"))
	mux.HandleFunc("/charts/applications.svg", MetricsMiddleware(s.chartsHandler.HandleApplications, "charts_applications"))
	mux.HandleFunc("/charts/pipeline.svg", MetricsMiddleware(s.chartsHandler.HandlePipeline, "charts_pipeline"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before committing the status line, so a value that
// cannot be encoded turns into a 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Get().Error(context.Background(), "response encoding failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an error to a status code and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, chart.ErrTooManyPoints):
		return http.StatusBadRequest, "too_many_points"
	case errors.Is(err, chart.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes err using its classification.
func fail(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
