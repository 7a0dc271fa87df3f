package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"weather-dashboard/internal/model"
)

type pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		slog.Warn("health check failed", "error", err.Error())
		writeJSON(w, http.StatusServiceUnavailable, model.HealthStatus{Status: "degraded", Database: "unreachable"})
		return
	}

	writeJSON(w, http.StatusOK, model.HealthStatus{Status: "ok", Database: "ok"})
}
