package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/storage"
	"github.com/campushealth/clinicsync/internal/validation"
)

type treatmentPayload struct {
	PatientType     string `json:"patient_type"`
	PatientID       *int64 `json:"patient_id"`
	Diagnosis       string `json:"diagnosis"`
	TreatmentGiven  string `json:"treatment_given"`
	MedicationGiven string `json:"medication_given"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

func (r *Reconciler) applyTreatment(ctx context.Context, actorID int64, data json.RawMessage) (*Result, error) {
	var p treatmentPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.Require("patient_type", p.PatientType)
	c.OneOf("patient_type", p.PatientType, string(models.PatientStudent), string(models.PatientPersonnel))
	c.RequireInt("patient_id", p.PatientID)
	c.Require("diagnosis", p.Diagnosis)
	c.MaxLen("diagnosis", p.Diagnosis, 255)
	c.Require("status", p.Status)
	c.OneOf("status", p.Status, models.TreatmentCompleted, models.TreatmentFollowUp)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	t := &models.Treatment{
		Patient: models.PatientRef{
			Kind: models.PatientKind(p.PatientType),
			ID:   *p.PatientID,
		},
		Diagnosis:       p.Diagnosis,
		TreatmentGiven:  p.TreatmentGiven,
		MedicationGiven: p.MedicationGiven,
		Notes:           p.Notes,
		Status:          p.Status,
		TreatedBy:       actorID,
		TreatedAt:       r.now(),
	}

	if _, err := r.store.CreateTreatment(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create treatment: %w", err)
	}

	return &Result{Message: "Treatment synced successfully."}, nil
}

type dispensePayload struct {
	MedicineID  *int64 `json:"medicine_id"`
	PatientType string `json:"patient_type"`
	PatientID   *int64 `json:"patient_id"`
	Quantity    *int64 `json:"quantity"`
	Notes       string `json:"notes"`
}

func (r *Reconciler) applyDispense(ctx context.Context, actorID int64, data json.RawMessage) (*Result, error) {
	var p dispensePayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequireInt("medicine_id", p.MedicineID)
	c.Require("patient_type", p.PatientType)
	c.OneOf("patient_type", p.PatientType, string(models.PatientStudent), string(models.PatientPersonnel))
	c.RequireInt("patient_id", p.PatientID)
	c.RequireInt("quantity", p.Quantity)
	c.MinInt("quantity", p.Quantity, 1)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	log := &models.MedicineLog{
		MedicineID: *p.MedicineID,
		Patient: models.PatientRef{
			Kind: models.PatientKind(p.PatientType),
			ID:   *p.PatientID,
		},
		Quantity:    int(*p.Quantity),
		DispensedBy: actorID,
		DispensedAt: r.now(),
		Notes:       p.Notes,
	}

	_, err := r.store.DispenseMedicine(ctx, log)
	if err != nil {
		var stockErr *storage.InsufficientStockError
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, fieldError("medicine_id", "The selected medicine_id is invalid.")
		case errors.As(err, &stockErr):
			return nil, &BusinessRuleError{Message: stockErr.Error()}
		default:
			return nil, fmt.Errorf("failed to dispense medicine: %w", err)
		}
	}

	return &Result{Message: "Medicine dispensed successfully."}, nil
}
