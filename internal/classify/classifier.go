// Package classify assigns semantic roles to lines of resume text and groups
// classified lines into content blocks for rendering.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-atsfix/internal/types"
)

var (
	urlRe     = regexp.MustCompile(`(?i)https?://|www\.|linkedin\.com|github\.com`)
	phoneRe   = regexp.MustCompile(`(\+?\d[\d\s().-]{7,}\d)`)
	yearRe    = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	monthRe   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept?|oct|nov|dec)\b`)
	openEndRe = regexp.MustCompile(`(?i)(?:\s[-–—]\s?|\bto\s)(?:present|ongoing|current)\b`)
	numericRe = regexp.MustCompile(`^[\d\s.,%$+-]+$`)
)

var titleKeywords = []string{
	"manager", "director", "engineer", "developer", "analyst", "consultant",
	"specialist", "architect", "designer", "coordinator", "administrator",
	"officer", "scientist", "intern", "lead", "head of", "founder", "president",
}

var skillKeywords = []string{
	"python", "java", "javascript", "typescript", "golang", "sql", "nosql",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "react",
	"node", "linux", "git", "excel", "tableau", "agile", "scrum", "ci/cd",
	"machine learning", "data analysis", "rest api",
}

var bulletPrefixes = []string{"•", "●", "▪", "◦", "‣", "·", "- ", "* ", "– "}

// predicate pairs a role with its match rule. Classification walks the list
// in order and returns the first hit, which makes the tie-break order
// explicit: a contact line that happens to be all caps is still Contact.
type predicate struct {
	role  types.LineRole
	match func(line string, nonEmptyIndex int) bool
}

var predicates = []predicate{
	{types.RoleContact, func(line string, _ int) bool { return isContact(line) }},
	{types.RoleName, func(line string, idx int) bool { return idx < 2 }},
	{types.RoleSectionHeader, func(line string, _ int) bool { return isSectionHeader(line) }},
	{types.RoleJobTitle, func(line string, _ int) bool { return containsAny(line, titleKeywords) }},
	{types.RoleDateLocation, func(line string, _ int) bool { return isDateLocation(line) }},
	{types.RoleBullet, func(line string, _ int) bool { return isBullet(line) }},
	{types.RoleSkillItem, func(line string, _ int) bool { return containsAny(line, skillKeywords) }},
}

// Classify labels one line. nonEmptyIndex is the count of non-empty lines
// seen before this one; the first two non-empty lines of a resume default to
// Name unless they carry contact markers.
func Classify(line string, nonEmptyIndex int) types.LineRole {
	if strings.TrimSpace(line) == "" {
		return types.RoleEmpty
	}
	for _, p := range predicates {
		if p.match(line, nonEmptyIndex) {
			return p.role
		}
	}
	return types.RoleGeneral
}

// ClassifyLines labels every line, threading the non-empty counter through.
func ClassifyLines(lines []string) []types.LineRole {
	roles := make([]types.LineRole, len(lines))
	nonEmpty := 0
	for i, line := range lines {
		roles[i] = Classify(line, nonEmpty)
		if roles[i] != types.RoleEmpty {
			nonEmpty++
		}
	}
	return roles
}

func isContact(line string) bool {
	return strings.Contains(line, "@") || urlRe.MatchString(line) || phoneRe.MatchString(line)
}

func isSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) <= 4 || numericRe.MatchString(trimmed) {
		return false
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isDateLocation requires actual date context: a year, or a month name next
// to an open-ended range marker ("May – Present"). Bare "to" or "current"
// inside body text is not a date.
func isDateLocation(line string) bool {
	return yearRe.MatchString(line) || (monthRe.MatchString(line) && openEndRe.MatchString(line))
}

func isBullet(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func containsAny(line string, keywords []string) bool {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
