package models

import (
	"math"
	"time"
)

// BMI category cutoffs.
const (
	bmiUnderweightMax = 18.5
	bmiNormalMax      = 25.0
	bmiOverweightMax  = 30.0
)

// MedicalRecord holds the physical examination data attached to a student
// or personnel record.
type MedicalRecord struct {
	ID              int64      `json:"id"`
	Patient         PatientRef `json:"patient"`
	ExaminationDate string     `json:"examination_date,omitempty"`

	// Physical examination
	HeightCm         float64 `json:"height_cm,omitempty"`
	WeightKg         float64 `json:"weight_kg,omitempty"`
	BMI              float64 `json:"bmi,omitempty"`
	BMICategory      string  `json:"bmi_category,omitempty"`
	PulseRate        string  `json:"pulse_rate,omitempty"`
	RespiratoryRate  string  `json:"respiratory_rate,omitempty"`
	BloodPressure    string  `json:"blood_pressure,omitempty"`
	OxygenSaturation float64 `json:"oxygen_saturation,omitempty"`

	// Lifestyle
	Smoker    bool `json:"smoker"`
	Alcoholic bool `json:"alcoholic"`

	// Allergies
	Allergies   string `json:"allergies,omitempty"`
	FoodAllergy bool   `json:"food_allergy"`
	DrugAllergy bool   `json:"drug_allergy"`

	PastMedicalHistory string `json:"past_medical_history,omitempty"`

	// Family history
	FamilyHPN    bool `json:"family_hpn"`
	FamilyCancer bool `json:"family_cancer"`
	FamilyAsthma bool `json:"family_asthma"`
	FamilyDM     bool `json:"family_dm"`

	// Physician info
	PhysicianName      string `json:"physician_name,omitempty"`
	PhysicianLicenseNo string `json:"physician_license_no,omitempty"`
	PhysicianPTR       string `json:"physician_ptr,omitempty"`
	LicenseExpiryDate  string `json:"license_expiry_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAllergies reports whether the record lists any allergy information.
func (m *MedicalRecord) HasAllergies() bool {
	return m.Allergies != "" || m.FoodAllergy || m.DrugAllergy
}

// BMIResult is the computed body mass index and its category.
type BMIResult struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

// CalculateBMI computes the body mass index from height in centimeters and
// weight in kilograms, rounded to two decimals. Non-positive inputs yield
// {0, "N/A"}.
func CalculateBMI(heightCm, weightKg float64) BMIResult {
	if heightCm <= 0 || weightKg <= 0 {
		return BMIResult{BMI: 0, Category: "N/A"}
	}

	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*100) / 100

	var category string
	switch {
	case bmi < bmiUnderweightMax:
		category = "Underweight"
	case bmi < bmiNormalMax:
		category = "Normal"
	case bmi < bmiOverweightMax:
		category = "Overweight"
	default:
		category = "Obese"
	}

	return BMIResult{BMI: bmi, Category: category}
}
