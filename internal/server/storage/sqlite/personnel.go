package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/storage"
)

// CreatePersonnel inserts the personnel row and the optional medical
// record in a single transaction.
func (s *Storage) CreatePersonnel(ctx context.Context, p *models.Personnel, rec *models.MedicalRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().Unix()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO personnel (
			employee_id, name, birthdate, address, age, sex,
			civil_status, religion, department_id, position, contact_no,
			emergency_contact_person, emergency_contact_relationship,
			emergency_contact_address, emergency_contact_no,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.EmployeeID,
		p.Name,
		nullStr(p.Birthdate),
		nullStr(p.Address),
		nullInt(p.Age),
		nullStr(p.Sex),
		nullStr(p.CivilStatus),
		nullStr(p.Religion),
		p.DepartmentID,
		nullStr(p.Position),
		nullStr(p.ContactNo),
		nullStr(p.EmergencyContactPerson),
		nullStr(p.EmergencyContactRelationship),
		nullStr(p.EmergencyContactAddress),
		nullStr(p.EmergencyContactNo),
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: personnel.employee_id") {
			return 0, storage.ErrDuplicateEmployeeID
		}
		return 0, fmt.Errorf("failed to insert personnel: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get personnel id: %w", err)
	}

	if rec != nil {
		rec.Patient = models.PatientRef{Kind: models.PatientPersonnel, ID: id}
		if err := insertMedicalRecord(ctx, tx, rec); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}
