package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/campushealth/clinicsync/internal/server/cache"
	"github.com/campushealth/clinicsync/internal/server/storage"
	"github.com/campushealth/clinicsync/pkg/api"
)

const statsCacheKey = "dashboard:stats"

// DashboardHandler serves the aggregate counters for the clinic dashboard,
// cached since every client polls them.
type DashboardHandler struct {
	logger   *slog.Logger
	clinic   storage.ClinicStorage
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(logger *slog.Logger, clinic storage.ClinicStorage, c cache.Cache, cacheTTL time.Duration) *DashboardHandler {
	return &DashboardHandler{
		logger:   logger,
		clinic:   clinic,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Stats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, err := h.cache.Get(ctx, statsCacheKey); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(cached)
		return
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := h.clinic.GetDashboardStats(ctx, startOfDay)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get dashboard stats", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.DashboardStats{
		Students:          stats.Students,
		Personnel:         stats.Personnel,
		TreatmentsToday:   stats.TreatmentsToday,
		MedicinesLowStock: stats.MedicinesLowStock,
	}

	body, err := json.Marshal(resp)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to marshal dashboard stats", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.cache.Set(ctx, statsCacheKey, body, h.cacheTTL); err != nil {
		h.logger.WarnContext(ctx, "failed to cache dashboard stats", slog.Any("error", err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
