// Package validation measures how many printed pages a rendered resume occupies.
package validation

import "fmt"

// Error represents a general validation error
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MeasureError represents a failure to render or measure a document
type MeasureError struct {
	Message string
	Cause   error
}

func (e *MeasureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("page measurement error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("page measurement error: %s", e.Message)
}

func (e *MeasureError) Unwrap() error {
	return e.Cause
}
