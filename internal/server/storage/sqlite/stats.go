package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/campushealth/clinicsync/internal/server/storage"
)

// GetDashboardStats aggregates the dashboard counters in one round trip
// per counter. Treatments are counted from sinceTreatments onward.
func (s *Storage) GetDashboardStats(ctx context.Context, sinceTreatments time.Time) (*storage.DashboardStats, error) {
	stats := &storage.DashboardStats{}

	counters := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.Students, `SELECT COUNT(*) FROM students`, nil},
		{&stats.Personnel, `SELECT COUNT(*) FROM personnel`, nil},
		{&stats.TreatmentsToday, `SELECT COUNT(*) FROM treatments WHERE treated_at >= ?`, []any{sinceTreatments.Unix()}},
		{&stats.MedicinesLowStock, `SELECT COUNT(*) FROM medicines WHERE stock_quantity <= reorder_level`, nil},
	}

	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	return stats, nil
}
