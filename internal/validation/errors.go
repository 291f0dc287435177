package validation

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-atsfix/internal/types"
)

// PreservationError reports a failed content-preservation check. It carries
// the full result so the recovery pass can target what is missing.
type PreservationError struct {
	Result types.ValidationResult
}

func (e *PreservationError) Error() string {
	msg := fmt.Sprintf("content preservation failed: ratio %.2f, %d words missing",
		e.Result.PreservationRatio, e.Result.MissingWordCount)
	if len(e.Result.MissingSections) > 0 {
		msg += fmt.Sprintf(", sections lost: %s", strings.Join(e.Result.MissingSections, ", "))
	}
	return msg
}
