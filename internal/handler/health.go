package handler

import (
	"context"
	"net/http"
)

// Pinger checks connectivity of a backing component.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz handles GET /healthz (liveness).
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz handles GET /readyz (readiness): the app is ready only when
// both the database and the cache respond.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if err := h.cache.Ping(r.Context()); err != nil {
		checks["cache"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		checks["cache"] = "ok"
	}

	writeJSON(w, status, checks)
}
