package overlay

import "fmt"

// ReplaceError indicates the conservative in-place replacement could not be
// applied. It always fails the whole document, never a single span; the
// caller responds by rebuilding from text instead.
type ReplaceError struct {
	Message string
	Cause   error
}

func (e *ReplaceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("overlay replace error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("overlay replace error: %s", e.Message)
}

func (e *ReplaceError) Unwrap() error {
	return e.Cause
}
