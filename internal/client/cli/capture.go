package cli

import (
	"context"
	"flag"

	"github.com/campushealth/clinicsync/internal/models"
)

// The capture commands build payloads in the exact field shape the server
// reconciler validates, so an entry captured offline is apply-ready later.

func (c *Cli) runAddTreatment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-treatment", flag.ContinueOnError)
	patientType := fs.String("patient-type", "", "patient type: student or personnel")
	patientID := fs.Int64("patient-id", 0, "patient record id")
	diagnosis := fs.String("diagnosis", "", "diagnosis")
	treatmentGiven := fs.String("treatment", "", "treatment given")
	medicationGiven := fs.String("medication", "", "medication given")
	notes := fs.String("notes", "", "notes")
	status := fs.String("status", models.TreatmentCompleted, "status: completed or follow-up")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := map[string]any{
		"patient_type":     *patientType,
		"patient_id":       *patientID,
		"diagnosis":        *diagnosis,
		"treatment_given":  *treatmentGiven,
		"medication_given": *medicationGiven,
		"notes":            *notes,
		"status":           *status,
	}

	return c.submitOrQueue(ctx, models.OpTreatment, payload, *queueOnly)
}

func (c *Cli) runDispense(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dispense", flag.ContinueOnError)
	medicineID := fs.Int64("medicine-id", 0, "medicine catalog id")
	patientType := fs.String("patient-type", "", "patient type: student or personnel")
	patientID := fs.Int64("patient-id", 0, "patient record id")
	quantity := fs.Int64("quantity", 0, "quantity to dispense")
	notes := fs.String("notes", "", "notes")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := map[string]any{
		"medicine_id":  *medicineID,
		"patient_type": *patientType,
		"patient_id":   *patientID,
		"quantity":     *quantity,
		"notes":        *notes,
	}

	return c.submitOrQueue(ctx, models.OpMedicineDispense, payload, *queueOnly)
}

func (c *Cli) runAddMedicine(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-medicine", flag.ContinueOnError)
	name := fs.String("name", "", "medicine name")
	description := fs.String("description", "", "description")
	category := fs.String("category", "", "category")
	unit := fs.String("unit", "pcs", "unit (pcs, tablet, capsule, ml, ...)")
	stock := fs.Int64("stock", 0, "initial stock quantity")
	reorder := fs.Int64("reorder", 10, "reorder level")
	expiry := fs.String("expiry", "", "expiry date (YYYY-MM-DD)")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := map[string]any{
		"name":           *name,
		"description":    *description,
		"category":       *category,
		"unit":           *unit,
		"stock_quantity": *stock,
		"reorder_level":  *reorder,
		"expiry_date":    *expiry,
	}

	return c.submitOrQueue(ctx, models.OpMedicine, payload, *queueOnly)
}
