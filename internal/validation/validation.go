// Package validation provides field-level request validation in the style of
// the clinic's web forms: rules accumulate per-field errors instead of
// failing on the first violation.
package validation

import (
	"fmt"
	"strings"
)

// FieldError describes one failed rule on one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects field errors for a single payload.
type Errors []FieldError

// Error joins all messages into one human-readable string.
func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, ", ")
}

// Collector accumulates rule violations for a payload under validation.
// The zero value is ready to use.
type Collector struct {
	errs Errors
}

// Add records a violation for field with the given message.
func (c *Collector) Add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

// Require records an error when value is empty.
func (c *Collector) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

// MaxLen records an error when value exceeds max bytes.
func (c *Collector) MaxLen(field, value string, max int) {
	if len(value) > max {
		c.Add(field, fmt.Sprintf("The %s field must not exceed %d characters.", field, max))
	}
}

// OneOf records an error when a non-empty value is not in allowed.
// Empty values pass; combine with Require for mandatory enums.
func (c *Collector) OneOf(field, value string, allowed ...string) {
	if value == "" {
		return
	}
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
}

// RequireInt records an error when a required integer field is absent.
func (c *Collector) RequireInt(field string, v *int64) {
	if v == nil {
		c.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

// MinInt records an error when v is below min. Nil values pass.
func (c *Collector) MinInt(field string, v *int64, min int64) {
	if v != nil && *v < min {
		c.Add(field, fmt.Sprintf("The %s field must be at least %d.", field, min))
	}
}

// Err returns the accumulated errors, or nil if every rule passed.
func (c *Collector) Err() Errors {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
