package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"simon-jot/internal/chunk"
	"simon-jot/internal/contextutil"
	"simon-jot/internal/layout"
	"simon-jot/internal/service"
)

// keepAliveInterval is how often an idle event stream sends a comment line.
const keepAliveInterval = 15 * time.Second

// JotHandler handles HTTP requests for jots and their editors.
type JotHandler struct {
	jotService service.JotService
	keepAlive  time.Duration
}

// NewJotHandler creates a new JotHandler.
func NewJotHandler(jotService service.JotService) *JotHandler {
	return &JotHandler{
		jotService: jotService,
		keepAlive:  keepAliveInterval,
	}
}

// Routes returns the jot routes, to be mounted under /api/jots.
func (h *JotHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/content", h.UpdateContent)
		r.Put("/layout", h.MountLayout)
		r.Delete("/layout", h.UnmountLayout)
		r.Get("/chunks", h.Chunks)
		r.Get("/events", h.Events)
		r.Post("/query", h.Query)
		r.Delete("/editor", h.CloseEditor)
	})
	return r
}

// CreateJotRequest represents the HTTP request payload for creating a jot.
type CreateJotRequest struct {
	Title string `json:"title"`
}

// UpdateContentRequest represents the HTTP request payload for saving editor content.
// Text is derived from HTML when omitted.
type UpdateContentRequest struct {
	Title string  `json:"title"`
	HTML  string  `json:"html"`
	Text  *string `json:"text,omitempty"`
}

// LayoutRequest describes the mounted editor viewport. Omitted fields use the server default.
type LayoutRequest struct {
	Columns     *int     `json:"columns,omitempty"`
	LineHeight  *float64 `json:"line_height,omitempty"`
	CharWidth   *float64 `json:"char_width,omitempty"`
	PaddingTop  *float64 `json:"padding_top,omitempty"`
	PaddingLeft *float64 `json:"padding_left,omitempty"`
}

// QueryRequest is either a free-form query (Q) or a brainstorm question on a chunk.
type QueryRequest struct {
	Q        string `json:"q,omitempty"`
	ChunkID  string `json:"chunk_id,omitempty"`
	Question string `json:"question,omitempty"`
}

// JotResponse represents a jot in HTTP responses.
type JotResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// QueryResponse represents a rendered chat answer.
type QueryResponse struct {
	Query    string `json:"query"`
	Widget   string `json:"widget"`
	HTML     string `json:"html"`
	Fallback bool   `json:"fallback"`
}

func toJotResponse(j service.Jot) JotResponse {
	return JotResponse{
		ID:        j.ID,
		Title:     j.Title,
		HTML:      j.HTML,
		Text:      j.Text,
		CreatedAt: j.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: j.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /api/jots.
func (h *JotHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// an empty body creates an untitled jot
	var req CreateJotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	jot, err := h.jotService.CreateJot(ctx, req.Title)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to create jot")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toJotResponse(jot))
}

// List handles GET /api/jots?limit=n.
func (h *JotHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	jots, err := h.jotService.ListJots(ctx, limit)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list jots")
		return
	}

	resp := make([]JotResponse, len(jots))
	for i, j := range jots {
		resp[i] = toJotResponse(j)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Get handles GET /api/jots/{id}.
func (h *JotHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jot, err := h.jotService.GetJot(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get jot")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toJotResponse(jot))
}

// UpdateContent handles PUT /api/jots/{id}/content.
func (h *JotHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	jot, err := h.jotService.UpdateContent(ctx, chi.URLParam(r, "id"), service.ContentUpdate{
		Title: req.Title,
		HTML:  req.HTML,
		Text:  req.Text,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to save jot")
		return
	}

	writeJSON(ctx, w, http.StatusOK, toJotResponse(jot))
}

// MountLayout handles PUT /api/jots/{id}/layout.
func (h *JotHandler) MountLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.jotService.MountLayout(ctx, chi.URLParam(r, "id"), layout.Overrides{
		Columns:     req.Columns,
		LineHeight:  req.LineHeight,
		CharWidth:   req.CharWidth,
		PaddingTop:  req.PaddingTop,
		PaddingLeft: req.PaddingLeft,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to mount editor")
		return
	}

	writeJSON(ctx, w, http.StatusOK, snap)
}

// UnmountLayout handles DELETE /api/jots/{id}/layout.
func (h *JotHandler) UnmountLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.jotService.UnmountLayout(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(ctx, w, err, "Failed to unmount editor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Chunks handles GET /api/jots/{id}/chunks.
func (h *JotHandler) Chunks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snap, err := h.jotService.Chunks(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to get chunks")
		return
	}

	writeJSON(ctx, w, http.StatusOK, snap)
}

// Events handles GET /api/jots/{id}/events, a Server-Sent Events stream with one snapshot per
// change. The stream ends with a "closed" event when the editor is disposed.
func (h *JotHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.ErrorContext(ctx, "streaming not supported by response writer")
		writeError(w, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	updates, unsubscribe, err := h.jotService.Subscribe(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to subscribe")
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() bool {
		snap, err := h.jotService.Chunks(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "failed to read snapshot for stream", "error", err)
			return false
		}
		data, err := json.Marshal(snap)
		if err != nil {
			logger.ErrorContext(ctx, "failed to encode snapshot", "error", err)
			return false
		}
		if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !send() {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-updates:
			if !open {
				_, _ = fmt.Fprint(w, "event: closed\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			if !send() {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Query handles POST /api/jots/{id}/query.
func (h *JotHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		resp service.QueryResponse
		err  error
	)
	if req.ChunkID != "" {
		chunkID, perr := chunk.ParseID(req.ChunkID)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "Invalid chunk_id")
			return
		}
		resp, err = h.jotService.QueryBrainstorm(ctx, id, chunkID, req.Question)
	} else {
		resp, err = h.jotService.Query(ctx, id, req.Q)
	}
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to process query")
		return
	}

	writeJSON(ctx, w, http.StatusOK, QueryResponse{
		Query:    resp.Query,
		Widget:   resp.Widget,
		HTML:     resp.HTML,
		Fallback: resp.Fallback,
	})
}

// CloseEditor handles DELETE /api/jots/{id}/editor.
func (h *JotHandler) CloseEditor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.jotService.CloseJot(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(ctx, w, err, "Failed to close editor")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
