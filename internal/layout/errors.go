package layout

import "fmt"

// ParseError indicates the original PDF could not be opened or read. Callers
// must treat it as fatal for layout-dependent strategies and fall back to a
// full rebuild from text.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("layout parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
