package rewriting

import "fmt"

// APICallError represents a transport-level failure talking to the text generator
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bullet generation API error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bullet generation API error: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// RequestError represents a generation request that cannot be sent
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid generation request: %s", e.Message)
}
