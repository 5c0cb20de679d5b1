package cli

import (
	"context"
	"flag"

	"github.com/campushealth/clinicsync/internal/models"
)

func (c *Cli) runAddStudent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-student", flag.ContinueOnError)
	idNumber := fs.String("id-number", "", "student id number")
	name := fs.String("name", "", "full name")
	birthdate := fs.String("birthdate", "", "birthdate (YYYY-MM-DD)")
	address := fs.String("address", "", "address")
	age := fs.Int64("age", 0, "age")
	sex := fs.String("sex", "", "sex: Male or Female")
	civilStatus := fs.String("civil-status", "", "civil status")
	religion := fs.String("religion", "", "religion")
	departmentID := fs.Int64("department-id", 0, "department id")
	courseID := fs.Int64("course-id", 0, "course id")
	contactNo := fs.String("contact-no", "", "contact number")
	yearLevel := fs.String("year-level", "", "year level")
	heightCm := fs.Float64("height-cm", 0, "height in centimeters")
	weightKg := fs.Float64("weight-kg", 0, "weight in kilograms")
	bloodPressure := fs.String("blood-pressure", "", "blood pressure")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := map[string]any{
		"student_id_number": *idNumber,
		"name":              *name,
		"birthdate":         *birthdate,
		"address":           *address,
		"age":               *age,
		"sex":               *sex,
		"civil_status":      *civilStatus,
		"religion":          *religion,
		"department_id":     *departmentID,
		"contact_no":        *contactNo,
		"year_level":        *yearLevel,
		"height_cm":         *heightCm,
		"weight_kg":         *weightKg,
		"blood_pressure":    *bloodPressure,
	}
	if *courseID > 0 {
		payload["course_id"] = *courseID
	}

	return c.submitOrQueue(ctx, models.OpStudent, payload, *queueOnly)
}

func (c *Cli) runAddPersonnel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-personnel", flag.ContinueOnError)
	employeeID := fs.String("employee-id", "", "employee id")
	name := fs.String("name", "", "full name")
	birthdate := fs.String("birthdate", "", "birthdate (YYYY-MM-DD)")
	address := fs.String("address", "", "address")
	age := fs.Int64("age", 0, "age")
	sex := fs.String("sex", "", "sex: Male or Female")
	civilStatus := fs.String("civil-status", "", "civil status")
	religion := fs.String("religion", "", "religion")
	departmentID := fs.Int64("department-id", 0, "department id")
	position := fs.String("position", "", "position")
	contactNo := fs.String("contact-no", "", "contact number")
	heightCm := fs.Float64("height-cm", 0, "height in centimeters")
	weightKg := fs.Float64("weight-kg", 0, "weight in kilograms")
	bloodPressure := fs.String("blood-pressure", "", "blood pressure")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := map[string]any{
		"employee_id":    *employeeID,
		"name":           *name,
		"birthdate":      *birthdate,
		"address":        *address,
		"age":            *age,
		"sex":            *sex,
		"civil_status":   *civilStatus,
		"religion":       *religion,
		"department_id":  *departmentID,
		"position":       *position,
		"contact_no":     *contactNo,
		"height_cm":      *heightCm,
		"weight_kg":      *weightKg,
		"blood_pressure": *bloodPressure,
	}

	return c.submitOrQueue(ctx, models.OpPersonnel, payload, *queueOnly)
}
