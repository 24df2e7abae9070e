// Package swagger serves the OpenAPI document and a ReDoc page for it.
package swagger

import (
	"context"
	"net/http"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// redocScript is the pinned ReDoc bundle.
const redocScript = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

// Register attaches the ReDoc page and the OpenAPI document routes to mux.
//
//	GET /api-docs      -> ReDoc HTML
//	GET /openapi.yaml  -> embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = index("/openapi.yaml").Render(w)
	})

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

func index(specURL string) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:    "API Docs – ReDoc",
		Language: "en",
		Head: []g.Node{
			h.StyleEl(g.Raw("body{margin:0;padding:0}")),
		},
		Body: []g.Node{
			g.El("redoc", h.ID("redoc-container")),
			h.Script(h.Src(redocScript)),
			h.Script(g.Raw("Redoc.init('" + specURL + "', { suppressWarnings: true }, document.getElementById('redoc-container'));")),
		},
	})
}
