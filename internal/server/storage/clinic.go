package storage

import (
	"context"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
)

// ClinicStorage is the persistence surface the reconciler and the read
// handlers depend on. Every write method is a single all-or-nothing
// database transaction.
type ClinicStorage interface {
	// Reference lookups
	DepartmentExists(ctx context.Context, id int64) (bool, error)
	CourseExists(ctx context.Context, id int64) (bool, error)
	StudentExists(ctx context.Context, id int64) (bool, error)
	GetMedicine(ctx context.Context, id int64) (*models.Medicine, error)
	ListMedicines(ctx context.Context) ([]*models.Medicine, error)

	// CreateTreatment inserts a treatment row and returns its id.
	CreateTreatment(ctx context.Context, t *models.Treatment) (int64, error)

	// DispenseMedicine re-reads the current stock, rejects with
	// *InsufficientStockError when the requested quantity exceeds it,
	// and otherwise inserts the dispense log and decrements stock in the
	// same transaction.
	DispenseMedicine(ctx context.Context, log *models.MedicineLog) (int64, error)

	// CreateStudent inserts the student and, when rec is non-nil, the
	// attached medical record in one transaction. A duplicate student id
	// number yields ErrDuplicateStudentID.
	CreateStudent(ctx context.Context, s *models.Student, rec *models.MedicalRecord) (int64, error)

	// CreatePersonnel mirrors CreateStudent for staff records; a
	// duplicate employee id yields ErrDuplicateEmployeeID.
	CreatePersonnel(ctx context.Context, p *models.Personnel, rec *models.MedicalRecord) (int64, error)

	// CreateMedicine inserts a catalog row and returns its id.
	CreateMedicine(ctx context.Context, m *models.Medicine) (int64, error)

	// CreateMaritimeDocument inserts document metadata and returns its id.
	CreateMaritimeDocument(ctx context.Context, d *models.MaritimeDocument) (int64, error)

	// GetDashboardStats aggregates the dashboard counters. Treatments are
	// counted from sinceTreatments onward (start of today for the UI).
	GetDashboardStats(ctx context.Context, sinceTreatments time.Time) (*DashboardStats, error)
}

// DashboardStats are the aggregate counters shown on the clinic dashboard.
type DashboardStats struct {
	Students          int64
	Personnel         int64
	TreatmentsToday   int64
	MedicinesLowStock int64
}
