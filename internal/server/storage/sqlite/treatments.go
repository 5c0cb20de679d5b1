package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
)

// CreateTreatment inserts a treatment row.
func (s *Storage) CreateTreatment(ctx context.Context, t *models.Treatment) (int64, error) {
	now := time.Now()
	treatedAt := t.TreatedAt
	if treatedAt.IsZero() {
		treatedAt = now
	}
	status := t.Status
	if status == "" {
		status = models.TreatmentCompleted
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO treatments (
			patient_kind, patient_id, diagnosis, treatment_given,
			medication_given, notes, status, treated_by, treated_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(t.Patient.Kind),
		t.Patient.ID,
		t.Diagnosis,
		nullStr(t.TreatmentGiven),
		nullStr(t.MedicationGiven),
		nullStr(t.Notes),
		status,
		t.TreatedBy,
		treatedAt.Unix(),
		now.Unix(),
		now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert treatment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get treatment id: %w", err)
	}

	return id, nil
}
