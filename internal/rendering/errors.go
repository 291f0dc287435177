package rendering

import "fmt"

// InsertionError indicates every insertion strategy failed for one line.
// This should not happen with core fonts; callers treat it as fatal for the
// current tier rather than silently dropping the line.
type InsertionError struct {
	Line    string
	Message string
	Cause   error
}

func (e *InsertionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("text insertion error: %s (line %q): %v", e.Message, truncate(e.Line, 40), e.Cause)
	}
	return fmt.Sprintf("text insertion error: %s (line %q)", e.Message, truncate(e.Line, 40))
}

func (e *InsertionError) Unwrap() error {
	return e.Cause
}

// GenerationError is the catch-all for unexpected failures while producing a
// PDF. Callers recover from it by dropping one tier.
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf generation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf generation error: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
