// Package site serves the dashboard's embedded browser assets.
package site

import (
	"context"
	"net/http"
)

// PathAssets is the URL prefix the assets are served under.
const PathAssets = "/assets/"

// Register attaches the embedded asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle(PathAssets, NewAssetsHandler())
}

// AssetsHandler serves the script and stylesheet the dashboard page loads.
type AssetsHandler struct {
	files http.Handler
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler() *AssetsHandler {
	return &AssetsHandler{files: http.StripPrefix(PathAssets, http.FileServer(FS()))}
}

// ServeHTTP handles GET /assets/* requests. Directory listings are not
// served.
func (h *AssetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == PathAssets {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.files.ServeHTTP(w, r)
}
