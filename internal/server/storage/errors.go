package storage

import (
	"errors"
	"fmt"
)

// Common server storage errors
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateStudentID indicates the student id number is already taken
	ErrDuplicateStudentID = errors.New("student_id_number has already been taken")

	// ErrDuplicateEmployeeID indicates the employee id is already taken
	ErrDuplicateEmployeeID = errors.New("employee_id has already been taken")

	// ErrUserExists indicates the user email is already registered
	ErrUserExists = errors.New("user already exists")
)

// InsufficientStockError rejects a dispense that would overdraw stock.
// The check and the decrement happen inside one transaction, so a dispense
// either fully commits or leaves stock untouched.
type InsufficientStockError struct {
	Medicine  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Only %d available.", e.Medicine, e.Available)
}
