package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/okian/recruit/internal/adapters/render/svg"
	"github.com/okian/recruit/internal/domain/chart"
)

// maxBodyBytes bounds chart request bodies.
const maxBodyBytes = 1 << 20

type barRequest struct {
	Points []chart.BarPoint `json:"points"`
}

type pieRequest struct {
	Points []chart.PiePoint `json:"points"`
}

// ChartsHandler renders posted series and the sample charts.
type ChartsHandler struct {
	deps Dependencies
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies) *ChartsHandler {
	return &ChartsHandler{deps: deps}
}

// HandleBar handles POST /charts/bar.
func (h *ChartsHandler) HandleBar(w http.ResponseWriter, r *http.Request) {
	const op = "api.charts_bar"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req barRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	c, err := h.deps.RenderBar(r.Context(), req.Points)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	respond(w, r, op, c, c.Drawing)
}

// HandlePie handles POST /charts/pie.
func (h *ChartsHandler) HandlePie(w http.ResponseWriter, r *http.Request) {
	const op = "api.charts_pie"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req pieRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	c, err := h.deps.RenderPie(r.Context(), req.Points)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	respond(w, r, op, c, c.Drawing)
}

// HandleApplications handles GET /charts/applications.svg.
func (h *ChartsHandler) HandleApplications(w http.ResponseWriter, r *http.Request) {
	const op = "api.charts_applications"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		fail(w, WrapKind(op, ErrUnavailable, err))
		return
	}
	c, err := h.deps.RenderBar(r.Context(), snap.Applications)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeSVG(w, op, c.Drawing)
}

// HandlePipeline handles GET /charts/pipeline.svg.
func (h *ChartsHandler) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.charts_pipeline"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context())
	if err != nil {
		fail(w, WrapKind(op, ErrUnavailable, err))
		return
	}
	c, err := h.deps.RenderPie(r.Context(), snap.Pipeline)
	if err != nil {
		fail(w, Wrap(op, err))
		return
	}
	writeSVG(w, op, c.Drawing)
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// respond writes the chart as JSON when ?format=json, otherwise as SVG.
func respond(w http.ResponseWriter, r *http.Request, op string, geometry any, d chart.Drawing) {
	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, geometry)
		return
	}
	writeSVG(w, op, d)
}

// writeSVG buffers the document before any header is written.
func writeSVG(w http.ResponseWriter, op string, d chart.Drawing) {
	var buf bytes.Buffer
	if err := svg.Render(&buf, d); err != nil {
		fail(w, WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", svg.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
