package models

import "time"

// Student represents an enrolled student tracked by the clinic.
// Optional text fields are empty strings when not provided;
// dates travel as YYYY-MM-DD strings.
type Student struct {
	ID              int64  `json:"id"`
	StudentIDNumber string `json:"student_id_number"`
	Name            string `json:"name"`
	Birthdate       string `json:"birthdate,omitempty"`
	Address         string `json:"address,omitempty"`
	Age             int    `json:"age,omitempty"`
	Sex             string `json:"sex,omitempty"` // Male or Female
	CivilStatus     string `json:"civil_status,omitempty"`
	Religion        string `json:"religion,omitempty"`
	DepartmentID    int64  `json:"department_id"`
	CourseID        *int64 `json:"course_id,omitempty"`
	ContactNo       string `json:"contact_no,omitempty"`
	YearLevel       string `json:"year_level,omitempty"`

	EmergencyContactPerson       string `json:"emergency_contact_person,omitempty"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship,omitempty"`
	EmergencyContactAddress      string `json:"emergency_contact_address,omitempty"`
	EmergencyContactNo           string `json:"emergency_contact_no,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
