// Package scoring rates a resume's ATS compatibility on a 0-100 scale. The
// score drives both the rewrite aggressiveness and which PDF generation tier
// the pipeline selects, so the same number must be threaded through both.
// Penalty weights live in an embedded JSON rule file validated against a
// schema at load time.
package scoring

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-atsfix/internal/types"
)

//go:embed rules.json rules_schema.json
var ruleFiles embed.FS

// Rules is the config-driven weighting for every check.
type Rules struct {
	Weights           map[string]float64 `json:"weights"`
	RequiredSections  []string           `json:"required_sections"`
	ActionKeywords    []string           `json:"action_keywords"`
	MinBullets        int                `json:"min_bullets"`
	MinActionKeywords int                `json:"min_action_keywords"`
}

// Finding is one applied penalty.
type Finding struct {
	Check   string  `json:"check"`
	Penalty float64 `json:"penalty"`
	Detail  string  `json:"detail"`
}

// Report is the scoring outcome for one resume.
type Report struct {
	Score    float64   `json:"score"`
	Findings []Finding `json:"findings,omitempty"`
}

// Scorer applies the loaded rules to resume text.
type Scorer struct {
	rules Rules
}

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	bulletRe  = regexp.MustCompile(`(?m)^\s*[•●▪◦‣·*-]\s+`)
	metricsRe = regexp.MustCompile(`\d+\s*%|\$\s*\d|\d+[kKmM]\b|\b\d+\+`)
)

// NewScorer loads the embedded rule file, validating it against the schema.
func NewScorer() (*Scorer, error) {
	schemaBytes, err := ruleFiles.ReadFile("rules_schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read rules schema: %w", err)
	}
	rulesBytes, err := ruleFiles.ReadFile("rules.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(rulesBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate rules: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("invalid scoring rules: %s", strings.Join(details, "; "))
	}

	var rules Rules
	if err := json.Unmarshal(rulesBytes, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	return &Scorer{rules: rules}, nil
}

// Score rates resume text, with optional layout information for formatting
// checks. Starts at 100 and subtracts the weighted penalty of every failed
// check, clamping at zero.
func (s *Scorer) Score(text string, doc *types.DocumentLayout) Report {
	report := Report{Score: 100}
	lower := strings.ToLower(text)

	if !emailRe.MatchString(text) {
		report.penalize(s.rules, "missing_email", "no email address found")
	}
	if !phoneRe.MatchString(text) {
		report.penalize(s.rules, "missing_phone", "no phone number found")
	}

	for _, section := range s.rules.RequiredSections {
		if !strings.Contains(lower, section) {
			report.penalize(s.rules, "missing_section", fmt.Sprintf("no %s section", section))
		}
	}

	if bullets := len(bulletRe.FindAllString(text, -1)); bullets < s.rules.MinBullets {
		report.penalize(s.rules, "few_bullets", fmt.Sprintf("only %d bullet points", bullets))
	}

	if !metricsRe.MatchString(text) {
		report.penalize(s.rules, "no_metrics", "no quantified achievements")
	}

	keywordHits := 0
	for _, kw := range s.rules.ActionKeywords {
		if strings.Contains(lower, kw) {
			keywordHits++
		}
	}
	if keywordHits < s.rules.MinActionKeywords {
		report.penalize(s.rules, "low_keyword_density", fmt.Sprintf("only %d action verbs", keywordHits))
	}

	if doc != nil && len(doc.Images) > 0 {
		report.penalize(s.rules, "image_content",
			fmt.Sprintf("%d images embedded; ATS parsers skip image content", len(doc.Images)))
	}

	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

func (r *Report) penalize(rules Rules, check, detail string) {
	weight := rules.Weights[check]
	r.Score -= weight
	r.Findings = append(r.Findings, Finding{Check: check, Penalty: weight, Detail: detail})
}
