package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"simon-jot/internal/contextutil"
)

// DBPinger is the database as seen by the health check.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// BackendPinger is the assistant backend as seen by the health check.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 DBPinger
	backend            BackendPinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DBPinger, backend BackendPinger) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		backend:            backend,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// The database is required: without it the service is unhealthy. Without the backend jots can
// still be edited and saved but get no brainstorms, so the service is degraded.
// Returns 200 OK if healthy, 503 Service Unavailable if degraded or unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	dbOK := h.check(checkCtx, logger, "database", h.db.PingContext)
	backendOK := h.check(checkCtx, logger, "backend", h.backend.Ping)
	if dbOK {
		checks["database"] = "ok"
	} else {
		checks["database"] = "unavailable"
		issues = append(issues, "database is not reachable")
	}
	if backendOK {
		checks["backend"] = "ok"
	} else {
		checks["backend"] = "unavailable"
		issues = append(issues, "assistant backend is not reachable")
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case !dbOK:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case !backendOK:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}

func (h *HealthHandler) check(ctx context.Context, logger *slog.Logger, name string, ping func(context.Context) error) bool {
	if err := ping(ctx); err != nil {
		logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
		return false
	}
	return true
}
