package models

import "time"

// Medicine is one row of the dispensary catalog.
type Medicine struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Unit          string `json:"unit"` // pcs, tablet, capsule, ml, ...
	StockQuantity int    `json:"stock_quantity"`
	ReorderLevel  int    `json:"reorder_level"`
	ExpiryDate    string `json:"expiry_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LowStock reports whether the current stock is at or below the reorder level.
func (m *Medicine) LowStock() bool {
	return m.StockQuantity <= m.ReorderLevel
}

// MedicineLog records a single dispense of a medicine to a patient.
type MedicineLog struct {
	ID          int64      `json:"id"`
	MedicineID  int64      `json:"medicine_id"`
	Patient     PatientRef `json:"patient"`
	Quantity    int        `json:"quantity"`
	DispensedBy int64      `json:"dispensed_by"`
	DispensedAt time.Time  `json:"dispensed_at"`
	Notes       string     `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
