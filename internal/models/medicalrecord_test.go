package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name         string
		heightCm     float64
		weightKg     float64
		wantBMI      float64
		wantCategory string
	}{
		{
			name:         "normal weight",
			heightCm:     170,
			weightKg:     65,
			wantBMI:      22.49,
			wantCategory: "Normal",
		},
		{
			name:         "underweight just below cutoff",
			heightCm:     200,
			weightKg:     73.99,
			wantBMI:      18.5, // 73.99/4 = 18.4975 rounds to 18.5
			wantCategory: "Normal",
		},
		{
			name:         "underweight",
			heightCm:     200,
			weightKg:     73,
			wantBMI:      18.25,
			wantCategory: "Underweight",
		},
		{
			name:         "exactly 18.5 is Normal",
			heightCm:     200,
			weightKg:     74,
			wantBMI:      18.5,
			wantCategory: "Normal",
		},
		{
			name:         "just below 25 is Normal",
			heightCm:     200,
			weightKg:     99.96,
			wantBMI:      24.99,
			wantCategory: "Normal",
		},
		{
			name:         "exactly 25 is Overweight",
			heightCm:     200,
			weightKg:     100,
			wantBMI:      25,
			wantCategory: "Overweight",
		},
		{
			name:         "just below 30 is Overweight",
			heightCm:     200,
			weightKg:     119.96,
			wantBMI:      29.99,
			wantCategory: "Overweight",
		},
		{
			name:         "exactly 30 is Obese",
			heightCm:     200,
			weightKg:     120,
			wantBMI:      30,
			wantCategory: "Obese",
		},
		{
			name:         "rounded to two decimals",
			heightCm:     173,
			weightKg:     71.3,
			wantBMI:      23.82, // 71.3 / 1.73^2 = 23.8230...
			wantCategory: "Normal",
		},
		{
			name:         "zero height yields N/A",
			heightCm:     0,
			weightKg:     70,
			wantBMI:      0,
			wantCategory: "N/A",
		},
		{
			name:         "zero weight yields N/A",
			heightCm:     170,
			weightKg:     0,
			wantBMI:      0,
			wantCategory: "N/A",
		},
		{
			name:         "negative input yields N/A",
			heightCm:     -170,
			weightKg:     70,
			wantBMI:      0,
			wantCategory: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBMI(tt.heightCm, tt.weightKg)
			assert.InDelta(t, tt.wantBMI, got.BMI, 0.001)
			assert.Equal(t, tt.wantCategory, got.Category)
		})
	}
}

func TestMedicineLowStock(t *testing.T) {
	m := &Medicine{StockQuantity: 10, ReorderLevel: 10}
	assert.True(t, m.LowStock())

	m.StockQuantity = 11
	assert.False(t, m.LowStock())

	m.StockQuantity = 0
	assert.True(t, m.LowStock())
}

func TestOperationTypeValid(t *testing.T) {
	for _, typ := range OperationTypes() {
		assert.True(t, typ.Valid(), "expected %s to be valid", typ)
	}
	assert.False(t, OperationType("report").Valid())
	assert.False(t, OperationType("").Valid())
}

func TestPatientRefValid(t *testing.T) {
	assert.True(t, PatientRef{Kind: PatientStudent, ID: 1}.Valid())
	assert.True(t, PatientRef{Kind: PatientPersonnel, ID: 42}.Valid())
	assert.False(t, PatientRef{Kind: PatientStudent, ID: 0}.Valid())
	assert.False(t, PatientRef{Kind: "visitor", ID: 1}.Valid())
}
