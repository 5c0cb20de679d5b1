package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/validation"
)

type medicinePayload struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Unit          string `json:"unit"`
	StockQuantity *int64 `json:"stock_quantity"`
	ReorderLevel  *int64 `json:"reorder_level"`
	ExpiryDate    string `json:"expiry_date"`
}

func (r *Reconciler) applyMedicine(ctx context.Context, data json.RawMessage) (*Result, error) {
	var p medicinePayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.Require("name", p.Name)
	c.MaxLen("name", p.Name, 255)
	c.Require("unit", p.Unit)
	c.MaxLen("unit", p.Unit, 50)
	c.MaxLen("category", p.Category, 100)
	c.RequireInt("stock_quantity", p.StockQuantity)
	c.MinInt("stock_quantity", p.StockQuantity, 0)
	c.MinInt("reorder_level", p.ReorderLevel, 0)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	reorder := int64(10)
	if p.ReorderLevel != nil {
		reorder = *p.ReorderLevel
	}

	m := &models.Medicine{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Unit:          p.Unit,
		StockQuantity: int(*p.StockQuantity),
		ReorderLevel:  int(reorder),
		ExpiryDate:    p.ExpiryDate,
	}

	if _, err := r.store.CreateMedicine(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}

	return &Result{Message: "Medicine synced successfully."}, nil
}
