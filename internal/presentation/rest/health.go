// Package rest serves the HTTP sidecar endpoints: liveness, readiness, and
// Prometheus metrics.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivendra-1710/fraud-detection-system/pkg/postgres"
)

// HealthHandler provides HTTP health check endpoints for the risk service.
type HealthHandler struct {
	logger    *slog.Logger
	pool      *pgxpool.Pool
	startTime time.Time
}

// NewHealthHandler creates a new health check handler. pool may be nil when
// the service runs without a database, in which case the readiness check
// skips it.
func NewHealthHandler(logger *slog.Logger, pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		pool:      pool,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "healthy",
		Service: "risk-service",
		Uptime:  time.Since(h.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Readyz handles readiness probe requests. The database is pinged on every
// call; a failing ping returns 503.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ready"
	code := http.StatusOK
	checks := map[string]string{}

	if h.pool != nil {
		if err := postgres.HealthCheck(ctx, h.pool); err != nil {
			h.logger.Warn("readiness check failed", "check", "database", "error", err)
			checks["database"] = "unavailable"
			status = "not ready"
			code = http.StatusServiceUnavailable
		} else {
			checks["database"] = "ok"
		}
	}

	resp := ReadinessResponse{
		Status:  status,
		Service: "risk-service",
		Checks:  checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}
