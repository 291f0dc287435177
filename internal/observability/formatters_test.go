package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-atsfix/internal/scoring"
	"github.com/jonathan/resume-atsfix/internal/types"
)

func TestPrintFixSummary(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFixSummary(&types.FixResult{
		Tier:              types.TierRebuild,
		PageCount:         2,
		PreservationRatio: 0.97,
		RecoveredLines:    3,
		PDF:               []byte("%PDF-fake"),
	})

	out := buf.String()
	assert.Contains(t, out, "FIX SUMMARY")
	assert.Contains(t, out, "rebuild")
	assert.Contains(t, out, "97%")
	assert.Contains(t, out, "3 lines")
}

func TestPrintFixSummary_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFixSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreReport(&scoring.Report{
		Score: 55,
		Findings: []scoring.Finding{
			{Check: "missing_email", Penalty: 10, Detail: "no email address found"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "ATS SCORE")
	assert.Contains(t, out, "55 / 100")
	assert.Contains(t, out, "no email address found")
}

func TestPrintValidation(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintValidation(types.ValidationResult{Passed: true})
	assert.Contains(t, buf.String(), "CONTENT PRESERVED")

	buf.Reset()
	printer.PrintValidation(types.ValidationResult{
		PreservationRatio: 0.5,
		MissingWordCount:  12,
		MissingSections:   []string{"education"},
	})
	assert.Contains(t, buf.String(), "CONTENT PRESERVATION FAILED")
	assert.Contains(t, buf.String(), "education")
}
