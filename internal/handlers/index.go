package handlers

import (
	"net/http"

	"simon-jot/internal/contextutil"
)

// IndexHandler serves the editor page.
type IndexHandler struct {
	html []byte
}

// NewIndexHandler creates a new IndexHandler for the given page.
func NewIndexHandler(html string) *IndexHandler {
	return &IndexHandler{html: []byte(html)}
}

// ServeHTTP writes the editor page.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.html); err != nil {
		ctx := r.Context()
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to write index page", "error", err)
	}
}
