package api

// DashboardStats is the aggregate view served to the clinic dashboard.
type DashboardStats struct {
	Students          int64 `json:"students"`
	Personnel         int64 `json:"personnel"`
	TreatmentsToday   int64 `json:"treatments_today"`
	MedicinesLowStock int64 `json:"medicines_low_stock"`
}

// Medicine is the catalog view returned by GET /api/v1/medicines.
type Medicine struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Unit          string `json:"unit"`
	StockQuantity int    `json:"stock_quantity"`
	ReorderLevel  int    `json:"reorder_level"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	LowStock      bool   `json:"low_stock"`
}
