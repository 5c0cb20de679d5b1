package models

import "time"

// Treatment statuses.
const (
	TreatmentCompleted = "completed"
	TreatmentFollowUp  = "follow-up"
)

// Treatment records a single clinic visit for a student or personnel.
type Treatment struct {
	ID              int64      `json:"id"`
	Patient         PatientRef `json:"patient"`
	Diagnosis       string     `json:"diagnosis"`
	TreatmentGiven  string     `json:"treatment_given,omitempty"`
	MedicationGiven string     `json:"medication_given,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"` // completed or follow-up
	TreatedBy       int64      `json:"treated_by"`
	TreatedAt       time.Time  `json:"treated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
