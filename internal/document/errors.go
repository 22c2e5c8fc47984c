package document

import "fmt"

// ParseError represents a failure to turn markup into a document tree
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// AnchorError is returned when an anchor handle does not belong to the document
type AnchorError struct {
	Anchor Anchor
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("document error: unknown anchor %d", e.Anchor)
}
