package skills

import "fmt"

// Error represents a categorization or rendering failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skills error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("skills error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
