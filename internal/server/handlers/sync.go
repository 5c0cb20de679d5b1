package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/reconcile"
	"github.com/campushealth/clinicsync/pkg/api"
)

// SyncHandler applies queued offline writes submitted by clients.
type SyncHandler struct {
	logger     *slog.Logger
	reconciler *reconcile.Reconciler
}

// NewSyncHandler creates the sync handler.
func NewSyncHandler(logger *slog.Logger, reconciler *reconcile.Reconciler) *SyncHandler {
	return &SyncHandler{
		logger:     logger,
		reconciler: reconciler,
	}
}

// Sync handles POST /api/v1/offline-queue/sync. One queued write per
// request; the response body always carries {success, message} so the
// client can decide whether to drop its queue entry.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.SyncItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode sync request", slog.Any("error", err))
		sendJSON(h.logger, w, api.SyncItemResponse{
			Success: false,
			Message: "Validation failed: The request body is malformed.",
		}, http.StatusUnprocessableEntity)
		return
	}

	result, err := h.reconciler.Apply(ctx, userID, models.OperationType(req.Type), req.Data)
	if err != nil {
		var validationErr *reconcile.ValidationError
		var ruleErr *reconcile.BusinessRuleError
		switch {
		case errors.As(err, &validationErr):
			sendJSON(h.logger, w, api.SyncItemResponse{
				Success: false,
				Message: validationErr.Error(),
			}, http.StatusUnprocessableEntity)
		case errors.As(err, &ruleErr):
			sendJSON(h.logger, w, api.SyncItemResponse{
				Success: false,
				Message: "Sync failed: " + ruleErr.Message,
			}, http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to apply sync item",
				slog.String("type", req.Type), slog.Any("error", err))
			sendJSON(h.logger, w, api.SyncItemResponse{
				Success: false,
				Message: "Sync failed: internal server error",
			}, http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, api.SyncItemResponse{
		Success: true,
		Message: result.Message,
	}, http.StatusOK)
}
