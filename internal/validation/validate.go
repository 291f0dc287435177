// Package validation checks that rendered output preserved the improved
// resume text: enough characters, few enough missing words, and no critical
// resume section dropped entirely.
package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-atsfix/internal/types"
)

// Acceptance thresholds for a render pass.
const (
	// MinPreservationRatio is the smallest placed/original character ratio
	// accepted without recovery.
	MinPreservationRatio = 0.85

	// MaxMissingWordFraction is the largest tolerated fraction of original
	// words absent from the placed text.
	MaxMissingWordFraction = 0.10
)

// criticalSections are resume sections that must never vanish. A section
// only counts as missing when the improved text mentions it and the placed
// text does not.
var criticalSections = []string{
	"experience", "education", "skills", "summary", "projects", "certifications",
}

var wordRe = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Validate compares the improved text against the placed-line ledger and
// reports the preservation ratio, missing-word fraction, and any critical
// sections that disappeared. All three checks must pass.
func Validate(improvedText string, placedLines []string) types.ValidationResult {
	placedText := strings.Join(placedLines, "\n")

	result := types.ValidationResult{
		PreservationRatio: preservationRatio(improvedText, placedText),
	}

	originalWords := wordSet(improvedText)
	placedWords := wordSet(placedText)
	for word := range originalWords {
		if _, ok := placedWords[word]; !ok {
			result.MissingWordCount++
		}
	}
	if len(originalWords) > 0 {
		result.MissingWordFraction = float64(result.MissingWordCount) / float64(len(originalWords))
	}

	result.MissingSections = missingSections(improvedText, placedText)

	result.Passed = result.PreservationRatio >= MinPreservationRatio &&
		result.MissingWordFraction <= MaxMissingWordFraction &&
		len(result.MissingSections) == 0
	return result
}

// preservationRatio compares whitespace-normalized character lengths so that
// wrapping artifacts (collapsed runs of spaces, dropped blank lines) do not
// count against the render.
func preservationRatio(original, placed string) float64 {
	origLen := len(normalize(original))
	if origLen == 0 {
		return 1.0
	}
	ratio := float64(len(normalize(placed))) / float64(origLen)
	if ratio > 1.0 {
		ratio = 1.0
	}
	return ratio
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wordSet(s string) map[string]struct{} {
	words := wordRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func missingSections(original, placed string) []string {
	origLower := strings.ToLower(original)
	placedLower := strings.ToLower(placed)

	var missing []string
	for _, section := range criticalSections {
		if strings.Contains(origLower, section) && !strings.Contains(placedLower, section) {
			missing = append(missing, section)
		}
	}
	return missing
}
