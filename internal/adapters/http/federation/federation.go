// Package federation announces the dashboard to host applications as a
// remote module.
package federation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/recruit/internal/adapters/http/api"
)

// ManifestPath is where the manifest is served.
const ManifestPath = "/federation/manifest.json"

// Error constants
var (
	ErrInvalidManifest = errors.New("invalid federation manifest")
)

// Manifest tells a host where the remote lives and what it exposes.
type Manifest struct {
	Name        string            `json:"name"`
	RemoteEntry string            `json:"remoteEntry"`
	Exposes     map[string]string `json:"exposes"`
	Shared      map[string]string `json:"shared"`
}

// NewManifest builds a manifest exposing module at entry.
func NewManifest(name, entry, module string) (Manifest, error) {
	switch {
	case strings.TrimSpace(name) == "":
		return Manifest{}, errors.Join(ErrInvalidManifest, errors.New("missing name"))
	case !strings.HasPrefix(entry, "/"):
		return Manifest{}, errors.Join(ErrInvalidManifest, errors.New("remote entry must be an absolute path"))
	case !strings.HasPrefix(module, "./"):
		return Manifest{}, errors.Join(ErrInvalidManifest, errors.New("exposed module must start with ./"))
	}
	return Manifest{
		Name:        name,
		RemoteEntry: entry,
		Exposes:     map[string]string{module: entry},
		Shared:      map[string]string{},
	}, nil
}

// Handler serves a fixed manifest.
type Handler struct {
	body []byte
}

// NewHandler pre-encodes m.
func NewHandler(m Manifest) (*Handler, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Join(ErrInvalidManifest, err)
	}
	return &Handler{body: body}, nil
}

// Register attaches the manifest route to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc(ManifestPath, api.MetricsMiddleware(h.HandleManifest, "federation_manifest"))
}

// HandleManifest handles GET /federation/manifest.json requests.
func (h *Handler) HandleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}
