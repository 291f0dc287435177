// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-atsfix/internal/scoring"
	"github.com/jonathan/resume-atsfix/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreReport outputs the ATS score with its findings.
func (p *Printer) PrintScoreReport(report *scoring.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.0f / 100\n", report.Score))

	if len(report.Findings) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Findings), maxItemsToShow)
		for i := 0; i < count; i++ {
			f := report.Findings[i]
			detail := f.Detail
			if len(detail) > 40 {
				detail = detail[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ -%.0f  %s\n", f.Penalty, detail))
		}
		if len(report.Findings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more findings\n", len(report.Findings)-maxItemsToShow))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFixSummary outputs the outcome of one fix run: tier used, content
// preservation, and recovery activity.
func (p *Printer) PrintFixSummary(result *types.FixResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:          %s\n", result.Tier))
	sb.WriteString(fmt.Sprintf("Pages:         %d\n", result.PageCount))
	sb.WriteString(fmt.Sprintf("Preservation:  %.0f%%\n", result.PreservationRatio*100))
	if result.RecoveredLines > 0 {
		sb.WriteString(fmt.Sprintf("Recovered:     %d lines\n", result.RecoveredLines))
	}
	sb.WriteString(fmt.Sprintf("Output size:   %d bytes", len(result.PDF)))

	p.printBox("FIX SUMMARY", sb.String())
}

// PrintValidation outputs a content preservation result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidation(result types.ValidationResult) {
	if result.Passed {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ CONTENT PRESERVED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Ratio:          %.2f\n", result.PreservationRatio))
	sb.WriteString(fmt.Sprintf("Missing words:  %d (%.0f%%)\n", result.MissingWordCount, result.MissingWordFraction*100))
	if len(result.MissingSections) > 0 {
		sb.WriteString(fmt.Sprintf("Sections lost:  %s\n", strings.Join(result.MissingSections, ", ")))
	}

	p.printBox("CONTENT PRESERVATION FAILED", strings.TrimSuffix(sb.String(), "\n"))
}
