package model

import (
	"fmt"
	"strings"
)

// FieldError is a single shape/length violation on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in one input so the
// client sees the full list, not just the first failure.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns the error when any violation was recorded, or a nil
// error otherwise. Returning the typed nil directly would make the
// caller's err != nil check misfire.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details(), "; "))
}

// Details renders the violations as "field: message" lines for the
// error response body.
func (e *ValidationError) Details() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Field+": "+f.Message)
	}
	return out
}
