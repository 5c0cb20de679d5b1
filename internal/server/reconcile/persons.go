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

// medicalPayload carries the physical examination fields flattened into a
// student or personnel payload. A medical record is created only when a
// height or weight was actually measured.
type medicalPayload struct {
	ExaminationDate  string  `json:"examination_date"`
	HeightCm         float64 `json:"height_cm"`
	WeightKg         float64 `json:"weight_kg"`
	PulseRate        string  `json:"pulse_rate"`
	RespiratoryRate  string  `json:"respiratory_rate"`
	BloodPressure    string  `json:"blood_pressure"`
	OxygenSaturation float64 `json:"oxygen_saturation"`

	Smoker    bool `json:"smoker"`
	Alcoholic bool `json:"alcoholic"`

	Allergies   string `json:"allergies"`
	FoodAllergy bool   `json:"food_allergy"`
	DrugAllergy bool   `json:"drug_allergy"`

	PastMedicalHistory string `json:"past_medical_history"`

	FamilyHPN    bool `json:"family_hpn"`
	FamilyCancer bool `json:"family_cancer"`
	FamilyAsthma bool `json:"family_asthma"`
	FamilyDM     bool `json:"family_dm"`

	PhysicianName      string `json:"physician_name"`
	PhysicianLicenseNo string `json:"physician_license_no"`
	PhysicianPTR       string `json:"physician_ptr"`
	LicenseExpiryDate  string `json:"license_expiry_date"`
}

func (p *medicalPayload) hasMeasurements() bool {
	return p.HeightCm > 0 || p.WeightKg > 0
}

// record builds a medical record from the examination fields. BMI is
// computed server-side; client-supplied BMI values are ignored.
func (p *medicalPayload) record() *models.MedicalRecord {
	rec := &models.MedicalRecord{
		ExaminationDate:    p.ExaminationDate,
		HeightCm:           p.HeightCm,
		WeightKg:           p.WeightKg,
		PulseRate:          p.PulseRate,
		RespiratoryRate:    p.RespiratoryRate,
		BloodPressure:      p.BloodPressure,
		OxygenSaturation:   p.OxygenSaturation,
		Smoker:             p.Smoker,
		Alcoholic:          p.Alcoholic,
		Allergies:          p.Allergies,
		FoodAllergy:        p.FoodAllergy,
		DrugAllergy:        p.DrugAllergy,
		PastMedicalHistory: p.PastMedicalHistory,
		FamilyHPN:          p.FamilyHPN,
		FamilyCancer:       p.FamilyCancer,
		FamilyAsthma:       p.FamilyAsthma,
		FamilyDM:           p.FamilyDM,
		PhysicianName:      p.PhysicianName,
		PhysicianLicenseNo: p.PhysicianLicenseNo,
		PhysicianPTR:       p.PhysicianPTR,
		LicenseExpiryDate:  p.LicenseExpiryDate,
	}

	if p.HeightCm > 0 && p.WeightKg > 0 {
		bmi := models.CalculateBMI(p.HeightCm, p.WeightKg)
		rec.BMI = bmi.BMI
		rec.BMICategory = bmi.Category
	}

	return rec
}

type studentPayload struct {
	StudentIDNumber string `json:"student_id_number"`
	Name            string `json:"name"`
	Birthdate       string `json:"birthdate"`
	Address         string `json:"address"`
	Age             int    `json:"age"`
	Sex             string `json:"sex"`
	CivilStatus     string `json:"civil_status"`
	Religion        string `json:"religion"`
	DepartmentID    *int64 `json:"department_id"`
	CourseID        *int64 `json:"course_id"`
	ContactNo       string `json:"contact_no"`
	YearLevel       string `json:"year_level"`

	EmergencyContactPerson       string `json:"emergency_contact_person"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`
	EmergencyContactAddress      string `json:"emergency_contact_address"`
	EmergencyContactNo           string `json:"emergency_contact_no"`

	medicalPayload
}

func (r *Reconciler) applyStudent(ctx context.Context, data json.RawMessage) (*Result, error) {
	var p studentPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.Require("student_id_number", p.StudentIDNumber)
	c.MaxLen("student_id_number", p.StudentIDNumber, 255)
	c.Require("name", p.Name)
	c.MaxLen("name", p.Name, 255)
	c.OneOf("sex", p.Sex, "Male", "Female")
	c.RequireInt("department_id", p.DepartmentID)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	if err := r.checkDepartment(ctx, &c, *p.DepartmentID); err != nil {
		return nil, err
	}
	if p.CourseID != nil {
		ok, err := r.store.CourseExists(ctx, *p.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check course: %w", err)
		}
		if !ok {
			c.Add("course_id", "The selected course_id is invalid.")
		}
	}
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	st := &models.Student{
		StudentIDNumber:              p.StudentIDNumber,
		Name:                         p.Name,
		Birthdate:                    p.Birthdate,
		Address:                      p.Address,
		Age:                          p.Age,
		Sex:                          p.Sex,
		CivilStatus:                  p.CivilStatus,
		Religion:                     p.Religion,
		DepartmentID:                 *p.DepartmentID,
		CourseID:                     p.CourseID,
		ContactNo:                    p.ContactNo,
		YearLevel:                    p.YearLevel,
		EmergencyContactPerson:       p.EmergencyContactPerson,
		EmergencyContactRelationship: p.EmergencyContactRelationship,
		EmergencyContactAddress:      p.EmergencyContactAddress,
		EmergencyContactNo:           p.EmergencyContactNo,
	}

	var rec *models.MedicalRecord
	if p.hasMeasurements() {
		rec = p.record()
	}

	if _, err := r.store.CreateStudent(ctx, st, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicateStudentID) {
			return nil, fieldError("student_id_number", "The student_id_number has already been taken.")
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return &Result{Message: "Student synced successfully."}, nil
}

type personnelPayload struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Birthdate    string `json:"birthdate"`
	Address      string `json:"address"`
	Age          int    `json:"age"`
	Sex          string `json:"sex"`
	CivilStatus  string `json:"civil_status"`
	Religion     string `json:"religion"`
	DepartmentID *int64 `json:"department_id"`
	Position     string `json:"position"`
	ContactNo    string `json:"contact_no"`

	EmergencyContactPerson       string `json:"emergency_contact_person"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship"`
	EmergencyContactAddress      string `json:"emergency_contact_address"`
	EmergencyContactNo           string `json:"emergency_contact_no"`

	medicalPayload
}

func (r *Reconciler) applyPersonnel(ctx context.Context, data json.RawMessage) (*Result, error) {
	var p personnelPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.Require("employee_id", p.EmployeeID)
	c.MaxLen("employee_id", p.EmployeeID, 255)
	c.Require("name", p.Name)
	c.MaxLen("name", p.Name, 255)
	c.OneOf("sex", p.Sex, "Male", "Female")
	c.RequireInt("department_id", p.DepartmentID)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	if err := r.checkDepartment(ctx, &c, *p.DepartmentID); err != nil {
		return nil, err
	}
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	per := &models.Personnel{
		EmployeeID:                   p.EmployeeID,
		Name:                         p.Name,
		Birthdate:                    p.Birthdate,
		Address:                      p.Address,
		Age:                          p.Age,
		Sex:                          p.Sex,
		CivilStatus:                  p.CivilStatus,
		Religion:                     p.Religion,
		DepartmentID:                 *p.DepartmentID,
		Position:                     p.Position,
		ContactNo:                    p.ContactNo,
		EmergencyContactPerson:       p.EmergencyContactPerson,
		EmergencyContactRelationship: p.EmergencyContactRelationship,
		EmergencyContactAddress:      p.EmergencyContactAddress,
		EmergencyContactNo:           p.EmergencyContactNo,
	}

	var rec *models.MedicalRecord
	if p.hasMeasurements() {
		rec = p.record()
	}

	if _, err := r.store.CreatePersonnel(ctx, per, rec); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmployeeID) {
			return nil, fieldError("employee_id", "The employee_id has already been taken.")
		}
		return nil, fmt.Errorf("failed to create personnel: %w", err)
	}

	return &Result{Message: "Personnel synced successfully."}, nil
}

func (r *Reconciler) checkDepartment(ctx context.Context, c *validation.Collector, id int64) error {
	ok, err := r.store.DepartmentExists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check department: %w", err)
	}
	if !ok {
		c.Add("department_id", "The selected department_id is invalid.")
	}
	return nil
}
