// Package site serves the dashboard page, its embeddable fragment and the
// embedded stylesheet.
package site

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/okian/recruit/internal/adapters/http/api"
	"github.com/okian/recruit/internal/domain/dashboard"
	"github.com/okian/recruit/pkg/logger"
	g "maragu.dev/gomponents"
)

// Error constants
var (
	ErrServe = errors.New("dashboard serve failed")
)

// Surfaces a view can be rendered on.
const (
	SurfacePage     = "page"
	SurfaceFragment = "fragment"
)

const (
	defaultTitle        = "Recruitment Dashboard"
	defaultDescription  = "Monitor your recruitment pipeline and candidate applications"
	defaultFragmentPath = "/fragments/recruitment-home"
	stylesheetPath      = "/static/dashboard.css"
)

// Viewer prepares the dashboard for a tab.
type Viewer interface {
	View(ctx context.Context, tab dashboard.Tab, surface string) (dashboard.View, error)
}

// Option configures the Handler.
type Option func(*Handler)

// WithTitle sets the page heading and document title.
func WithTitle(title string) Option {
	return func(h *Handler) {
		if title != "" {
			h.title = title
		}
	}
}

// WithFragmentPath sets where the embeddable component is served.
func WithFragmentPath(path string) Option {
	return func(h *Handler) {
		if path != "" {
			h.fragmentPath = path
		}
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Handler renders the dashboard as a full page or as a fragment.
type Handler struct {
	viewer       Viewer
	title        string
	description  string
	fragmentPath string
	logger       logger.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(viewer Viewer, opts ...Option) *Handler {
	h := &Handler{
		viewer:       viewer,
		title:        defaultTitle,
		description:  defaultDescription,
		fragmentPath: defaultFragmentPath,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FragmentPath returns the route of the embeddable component.
func (h *Handler) FragmentPath() string { return h.fragmentPath }

// Register attaches the page, fragment and static routes to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", api.MetricsMiddleware(h.HandlePage, "page"))
	mux.HandleFunc(h.fragmentPath, api.MetricsMiddleware(h.HandleFragment, "fragment"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
}

// HandlePage handles GET / requests.
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.serve(w, r, SurfacePage, func(v dashboard.View) g.Node {
		return Page(h.title, h.description, stylesheetPath, v)
	})
}

// HandleFragment handles GET requests for the embeddable component.
func (h *Handler) HandleFragment(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, SurfaceFragment, func(v dashboard.View) g.Node {
		return Fragment(h.title, h.description, v)
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, surface string, build func(dashboard.View) g.Node) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	tab, err := dashboard.ParseTab(r.URL.Query().Get("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	v, err := h.viewer.View(r.Context(), tab, surface)
	if err != nil {
		h.log().Error(r.Context(), "dashboard view failed",
			logger.String("tab", tab.Slug()),
			logger.String("surface", surface),
			logger.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := build(v).Render(&buf); err != nil {
		h.log().Error(r.Context(), "dashboard render failed", logger.Error(errors.Join(ErrServe, err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) log() logger.Logger {
	if h.logger != nil {
		return h.logger
	}
	return logger.Get()
}
