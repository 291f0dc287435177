// Package repair recovers content that a render pass lost: it diffs the
// improved text's lines against the placement ledger and appends the missing
// ones to a dedicated page. The caller re-validates afterwards and escalates
// to the dump tier if the result still falls short.
package repair

import (
	"strings"

	"github.com/jonathan/resume-atsfix/internal/rendering"
)

// Recover appends every line of originalLines that is absent from the placed
// ledger to a recovered-content page, and returns how many were added.
// Presence uses loose containment in both directions so that wrapped
// segments count for the line they came from.
func Recover(session *rendering.Session, originalLines, placedLines []string) (int, error) {
	missing := MissingLines(originalLines, placedLines)
	if len(missing) == 0 {
		return 0, nil
	}
	return session.AppendRecoveredLines(missing)
}

// MissingLines returns the original lines with no counterpart in placed. A
// line counts as present when it and some placed line contain one another
// (either direction), compared case-insensitively on collapsed whitespace.
func MissingLines(originalLines, placedLines []string) []string {
	normalized := make([]string, 0, len(placedLines))
	for _, p := range placedLines {
		if n := normalizeLine(p); n != "" {
			normalized = append(normalized, n)
		}
	}

	var missing []string
	for _, line := range originalLines {
		target := normalizeLine(line)
		if target == "" {
			continue
		}
		if !lineCovered(target, normalized) {
			missing = append(missing, line)
		}
	}
	return missing
}

func lineCovered(target string, placed []string) bool {
	for _, p := range placed {
		if strings.Contains(p, target) || strings.Contains(target, p) {
			return true
		}
	}
	return false
}

func normalizeLine(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
