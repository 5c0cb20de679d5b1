package models

import "time"

// Personnel represents a staff or faculty member tracked by the clinic.
type Personnel struct {
	ID           int64  `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Birthdate    string `json:"birthdate,omitempty"`
	Address      string `json:"address,omitempty"`
	Age          int    `json:"age,omitempty"`
	Sex          string `json:"sex,omitempty"` // Male or Female
	CivilStatus  string `json:"civil_status,omitempty"`
	Religion     string `json:"religion,omitempty"`
	DepartmentID int64  `json:"department_id"`
	Position     string `json:"position,omitempty"`
	ContactNo    string `json:"contact_no,omitempty"`

	EmergencyContactPerson       string `json:"emergency_contact_person,omitempty"`
	EmergencyContactRelationship string `json:"emergency_contact_relationship,omitempty"`
	EmergencyContactAddress      string `json:"emergency_contact_address,omitempty"`
	EmergencyContactNo           string `json:"emergency_contact_no,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
