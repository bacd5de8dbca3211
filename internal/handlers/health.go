package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"researchbot/internal/contextutil"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	db                 *sql.DB
	generatorReady     bool
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. generatorReady reports
// whether a remote generator is configured; without one the service still
// answers from local data.
func NewHealthHandler(db *sql.DB, generatorReady bool) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		generatorReady:     generatorReady,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
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

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
	} else {
		checks["database"] = "ok"
	}

	// An absent generator is not an issue: answering falls back to local
	// keyword search.
	if h.generatorReady {
		checks["generator"] = "configured"
	} else {
		checks["generator"] = "absent"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
	if len(issues) > 0 {
		response.Issues = issues
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.ErrorContext(ctx, "failed to encode health response", "error", err)
	}
}
