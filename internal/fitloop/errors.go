package fitloop

import "fmt"

// Error is a fatal fit loop failure, tagged with the state it happened in
type Error struct {
	State   State
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fit loop error in %s: %s: %v", e.State, e.Message, e.Cause)
	}
	return fmt.Sprintf("fit loop error in %s: %s", e.State, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
