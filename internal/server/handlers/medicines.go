package handlers

import (
	"log/slog"
	"net/http"

	"github.com/campushealth/clinicsync/internal/server/storage"
	"github.com/campushealth/clinicsync/pkg/api"
)

// MedicineHandler serves the dispensary catalog reads.
type MedicineHandler struct {
	logger *slog.Logger
	clinic storage.ClinicStorage
}

// NewMedicineHandler creates the medicine catalog handler.
func NewMedicineHandler(logger *slog.Logger, clinic storage.ClinicStorage) *MedicineHandler {
	return &MedicineHandler{
		logger: logger,
		clinic: clinic,
	}
}

// List handles GET /api/v1/medicines.
func (h *MedicineHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	medicines, err := h.clinic.ListMedicines(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list medicines", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.Medicine, 0, len(medicines))
	for _, m := range medicines {
		resp = append(resp, api.Medicine{
			ID:            m.ID,
			Name:          m.Name,
			Description:   m.Description,
			Category:      m.Category,
			Unit:          m.Unit,
			StockQuantity: m.StockQuantity,
			ReorderLevel:  m.ReorderLevel,
			ExpiryDate:    m.ExpiryDate,
			LowStock:      m.LowStock(),
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
