// Package rewriting asks the LLM to improve resume text. The ATS score
// selects both the prompt and the model tier: weak resumes get a full
// restructure on the advanced model, strong ones a light pass on the cheap
// one. The same score later selects the PDF generation tier, so callers must
// thread one number through both.
package rewriting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-atsfix/internal/llm"
	"github.com/jonathan/resume-atsfix/internal/prompts"
)

// Score bands for rewrite strategy selection. Aligned with the generation
// tier thresholds: a resume strong enough for conservative in-place editing
// only gets light phrasing changes, which keeps spans matchable.
const (
	aggressiveBelow = 60.0
	moderateBelow   = 70.0
)

// RewriteError indicates the LLM rewrite failed; the caller may proceed with
// the original text instead.
type RewriteError struct {
	Message string
	Cause   error
}

func (e *RewriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rewrite error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rewrite error: %s", e.Message)
}

func (e *RewriteError) Unwrap() error {
	return e.Cause
}

// Rewriter produces improved resume text via an LLM client.
type Rewriter struct {
	client llm.Client
}

// New creates a Rewriter.
func New(client llm.Client) *Rewriter {
	return &Rewriter{client: client}
}

// Rewrite returns the improved resume text for the given ATS score.
func (r *Rewriter) Rewrite(ctx context.Context, resumeText string, score float64) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", &RewriteError{Message: "empty resume text"}
	}

	promptKey, tier := strategyFor(score)
	template, err := prompts.Get("rewriting.json", promptKey)
	if err != nil {
		return "", &RewriteError{Message: "failed to load prompt", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"Resume": resumeText,
		"Score":  fmt.Sprintf("%.0f", score),
	})

	response, err := r.client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return "", &RewriteError{Message: "generation failed", Cause: err}
	}

	improved := CleanResponse(response)
	if improved == "" {
		return "", &RewriteError{Message: "model returned empty rewrite"}
	}
	return improved, nil
}

func strategyFor(score float64) (string, llm.ModelTier) {
	switch {
	case score < aggressiveBelow:
		return "rewrite_aggressive", llm.TierAdvanced
	case score < moderateBelow:
		return "rewrite_moderate", llm.TierStandard
	default:
		return "rewrite_light", llm.TierLite
	}
}

// CleanResponse strips markdown fences and surrounding noise that models
// wrap around plain-text output despite instructions.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
