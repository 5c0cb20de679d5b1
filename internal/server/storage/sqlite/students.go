package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/storage"
)

// CreateStudent inserts the student and the optional medical record in a
// single transaction, so a partially created patient never becomes visible.
func (s *Storage) CreateStudent(ctx context.Context, st *models.Student, rec *models.MedicalRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().Unix()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO students (
			student_id_number, name, birthdate, address, age, sex,
			civil_status, religion, department_id, course_id, contact_no,
			year_level, emergency_contact_person, emergency_contact_relationship,
			emergency_contact_address, emergency_contact_no,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		st.StudentIDNumber,
		st.Name,
		nullStr(st.Birthdate),
		nullStr(st.Address),
		nullInt(st.Age),
		nullStr(st.Sex),
		nullStr(st.CivilStatus),
		nullStr(st.Religion),
		st.DepartmentID,
		st.CourseID,
		nullStr(st.ContactNo),
		nullStr(st.YearLevel),
		nullStr(st.EmergencyContactPerson),
		nullStr(st.EmergencyContactRelationship),
		nullStr(st.EmergencyContactAddress),
		nullStr(st.EmergencyContactNo),
		now,
		now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: students.student_id_number") {
			return 0, storage.ErrDuplicateStudentID
		}
		return 0, fmt.Errorf("failed to insert student: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get student id: %w", err)
	}

	if rec != nil {
		rec.Patient = models.PatientRef{Kind: models.PatientStudent, ID: id}
		if err := insertMedicalRecord(ctx, tx, rec); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// StudentExists reports whether a student row with the given id exists.
func (s *Storage) StudentExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check student: %w", err)
	}
	return true, nil
}

// insertMedicalRecord inserts a medical record within the caller's
// transaction.
func insertMedicalRecord(ctx context.Context, tx *sql.Tx, rec *models.MedicalRecord) error {
	now := time.Now().Unix()

	_, err := tx.ExecContext(ctx, `
		INSERT INTO medical_records (
			patient_kind, patient_id, examination_date,
			height_cm, weight_kg, bmi, bmi_category,
			pulse_rate, respiratory_rate, blood_pressure, oxygen_saturation,
			smoker, alcoholic, allergies, food_allergy, drug_allergy,
			past_medical_history, family_hpn, family_cancer, family_asthma, family_dm,
			physician_name, physician_license_no, physician_ptr, license_expiry_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		string(rec.Patient.Kind),
		rec.Patient.ID,
		nullStr(rec.ExaminationDate),
		nullFloat(rec.HeightCm),
		nullFloat(rec.WeightKg),
		nullFloat(rec.BMI),
		nullStr(rec.BMICategory),
		nullStr(rec.PulseRate),
		nullStr(rec.RespiratoryRate),
		nullStr(rec.BloodPressure),
		nullFloat(rec.OxygenSaturation),
		boolToInt(rec.Smoker),
		boolToInt(rec.Alcoholic),
		nullStr(rec.Allergies),
		boolToInt(rec.FoodAllergy),
		boolToInt(rec.DrugAllergy),
		nullStr(rec.PastMedicalHistory),
		boolToInt(rec.FamilyHPN),
		boolToInt(rec.FamilyCancer),
		boolToInt(rec.FamilyAsthma),
		boolToInt(rec.FamilyDM),
		nullStr(rec.PhysicianName),
		nullStr(rec.PhysicianLicenseNo),
		nullStr(rec.PhysicianPTR),
		nullStr(rec.LicenseExpiryDate),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert medical record: %w", err)
	}

	return nil
}
