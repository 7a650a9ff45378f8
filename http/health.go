package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	log    *slog.Logger
	checks []func(ctx context.Context) error
}

// NewHealthHandler reports ready only while every check passes.
func NewHealthHandler(log *slog.Logger, checks ...func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{log: log, checks: checks}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	for _, check := range h.checks {
		if err := check(ctx); err != nil {
			h.log.Warn("readiness check failed", "error", err)
			writeJSON(w, h.log, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, h.log, http.StatusOK, map[string]string{"status": "ready"})
}
