package handlers

import (
	"log/slog"
	"net/http"
)

// HealthHandler answers liveness probes. Clients also use it as their
// connectivity signal, so it stays unauthenticated and dependency-free.
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates the health check handler.
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// HealthResponse is the health check reply.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /api/v1/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(h.logger, w, HealthResponse{Status: "ok"}, http.StatusOK)
}
