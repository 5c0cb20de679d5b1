package reconcile

import (
	"github.com/campushealth/clinicsync/internal/validation"
)

// ValidationError rejects a payload whose fields fail shape, uniqueness
// or reference-existence rules. Nothing is persisted; the client keeps
// the queue entry for manual correction.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return "Validation failed: " + e.Fields.Error()
}

// BusinessRuleError rejects a payload that is well-formed but violates a
// domain rule, e.g. a dispense that would overdraw stock.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: validation.Errors{{Field: field, Message: message}}}
}
