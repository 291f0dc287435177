// Package pipeline orchestrates one resume-fix run end to end: layout parse
// and scoring in parallel, optional LLM rewrite, tiered PDF generation with
// one-tier-down fallback, content validation, and recovery. Every failure
// drops exactly one tier; the text-dump tier is the floor and the caller
// always receives a PDF unless even that fails.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-atsfix/internal/classify"
	"github.com/jonathan/resume-atsfix/internal/db"
	"github.com/jonathan/resume-atsfix/internal/layout"
	"github.com/jonathan/resume-atsfix/internal/observability"
	"github.com/jonathan/resume-atsfix/internal/overlay"
	"github.com/jonathan/resume-atsfix/internal/rendering"
	"github.com/jonathan/resume-atsfix/internal/repair"
	"github.com/jonathan/resume-atsfix/internal/rewriting"
	"github.com/jonathan/resume-atsfix/internal/scoring"
	"github.com/jonathan/resume-atsfix/internal/types"
	"github.com/jonathan/resume-atsfix/internal/validation"
)

// Pipeline runs resume fixes. Construct once at the composition root and
// reuse across requests; each Fix call owns its own document state.
type Pipeline struct {
	caps           types.Capabilities
	scorer         *scoring.Scorer
	rewriter       *rewriting.Rewriter
	store          *db.Store
	printer        *observability.Printer
	aggressiveness float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRewriter wires the LLM rewriting collaborator.
func WithRewriter(r *rewriting.Rewriter) Option {
	return func(p *Pipeline) { p.rewriter = r }
}

// WithStore wires best-effort run persistence.
func WithStore(s *db.Store) Option {
	return func(p *Pipeline) { p.store = s }
}

// WithPrinter wires verbose progress output.
func WithPrinter(pr *observability.Printer) Option {
	return func(p *Pipeline) { p.printer = pr }
}

// WithAggressiveness sets the hybrid-tier styling scale.
func WithAggressiveness(a float64) Option {
	return func(p *Pipeline) { p.aggressiveness = a }
}

// New builds a Pipeline with the given capability descriptor.
func New(caps types.Capabilities, opts ...Option) (*Pipeline, error) {
	scorer, err := scoring.NewScorer()
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring rules: %w", err)
	}

	p := &Pipeline{caps: caps, scorer: scorer, aggressiveness: 0.9}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Score rates a resume. Layout is optional and only adds formatting checks.
func (p *Pipeline) Score(text string, doc *types.DocumentLayout) scoring.Report {
	return p.scorer.Score(text, doc)
}

// ParseLayout extracts the layout of an original PDF.
func (p *Pipeline) ParseLayout(pdfBytes []byte) (*types.DocumentLayout, error) {
	return layout.Parse(pdfBytes)
}

// Fix runs one resume-fix request and always returns a PDF on success, even
// if only the unstyled dump tier survived.
func (p *Pipeline) Fix(ctx context.Context, req types.FixRequest) (*types.FixResult, error) {
	layoutDoc, score, err := p.prologue(ctx, req)
	if err != nil {
		return nil, err
	}

	originalText := req.OriginalText
	if originalText == "" && layoutDoc != nil {
		originalText = layoutDoc.FullText
	}

	improved := req.ImprovedText
	if improved == "" && p.rewriter != nil && p.caps.LLM {
		improved, err = p.rewriter.Rewrite(ctx, originalText, score)
		if err != nil {
			// Rewrite failures are not fatal; fixing the PDF around the
			// original text still improves formatting.
			improved = ""
		}
	}
	if improved == "" {
		improved = originalText
	}
	if improved == "" {
		return nil, fmt.Errorf("no resume text to work with")
	}

	runID := p.beginRun(ctx, score, originalText, improved)

	tier := SelectTier(score, layoutDoc != nil && len(req.OriginalPDF) > 0)
	result, err := p.generate(req.OriginalPDF, layoutDoc, originalText, improved, tier)
	if err != nil {
		return nil, err
	}
	result.UsedText = improved

	p.finishRun(ctx, runID, result)
	if p.printer != nil {
		p.printer.PrintFixSummary(result)
	}
	return result, nil
}

// prologue parses the original PDF and scores the resume. The two branches
// are independent and run concurrently. A missing or unreadable PDF is not
// an error; it just rules out the conservative tier.
func (p *Pipeline) prologue(ctx context.Context, req types.FixRequest) (*types.DocumentLayout, float64, error) {
	var layoutDoc *types.DocumentLayout

	g, _ := errgroup.WithContext(ctx)
	if len(req.OriginalPDF) > 0 && p.caps.PDFParsing {
		g.Go(func() error {
			doc, err := layout.Parse(req.OriginalPDF)
			if err == nil {
				layoutDoc = doc
			}
			return nil
		})
	}

	score := req.Score
	if score <= 0 && req.OriginalText != "" {
		// Caller provided text: score it concurrently with the parse.
		g.Go(func() error {
			report := p.scorer.Score(req.OriginalText, nil)
			score = report.Score
			if p.printer != nil {
				p.printer.PrintScoreReport(&report)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// No caller-provided text: score the extracted text, now with layout
	// information for the formatting checks.
	if score <= 0 && layoutDoc != nil && layoutDoc.FullText != "" {
		report := p.scorer.Score(layoutDoc.FullText, layoutDoc)
		score = report.Score
		if p.printer != nil {
			p.printer.PrintScoreReport(&report)
		}
	}
	return layoutDoc, score, nil
}

// generate walks the tier chain starting at tier, dropping one tier per
// failure until something produces a PDF. Only a failure of the dump floor
// surfaces as an error, which is effectively out-of-memory territory.
func (p *Pipeline) generate(originalPDF []byte, layoutDoc *types.DocumentLayout, originalText, improved string, tier types.Tier) (*types.FixResult, error) {
	for {
		result, err := p.runTier(originalPDF, layoutDoc, originalText, improved, tier)
		if err == nil {
			return result, nil
		}
		if tier == types.TierDump {
			return nil, err
		}
		tier = fallbackTier(tier)
	}
}

func (p *Pipeline) runTier(originalPDF []byte, layoutDoc *types.DocumentLayout, originalText, improved string, tier types.Tier) (result *types.FixResult, err error) {
	// Tier implementations lean on PDF libraries with panic paths; a panic
	// is a tier failure like any other error.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &rendering.GenerationError{Message: fmt.Sprintf("tier %s panicked: %v", tier, r)}
		}
	}()

	switch tier {
	case types.TierConservative:
		return p.runConservative(originalPDF, layoutDoc, originalText, improved)
	case types.TierHybrid:
		return p.runRebuild(improved, p.aggressiveness, types.TierHybrid)
	case types.TierRebuild:
		return p.runRebuild(improved, 1.0, types.TierRebuild)
	default:
		return p.runDump(improved)
	}
}

// runConservative edits the original PDF in place. Reading the page count of
// the output doubles as a structural sanity check on the edited document.
func (p *Pipeline) runConservative(originalPDF []byte, layoutDoc *types.DocumentLayout, originalText, improved string) (*types.FixResult, error) {
	out, _, err := overlay.Apply(originalPDF, layoutDoc, originalText, improved)
	if err != nil {
		return nil, err
	}
	pages, err := overlay.PageCount(out)
	if err != nil {
		return nil, err
	}
	return &types.FixResult{
		PDF:               out,
		Tier:              types.TierConservative,
		PreservationRatio: 1.0,
		PageCount:         pages,
	}, nil
}

// runRebuild lays the improved text out from scratch, validates content
// preservation, and runs the recovery pass when validation fails. A result
// that still fails after recovery is an error; the caller drops to the dump
// tier rather than surface lossy output.
func (p *Pipeline) runRebuild(improved string, aggressiveness float64, tier types.Tier) (*types.FixResult, error) {
	lines := classify.SplitLines(improved)
	blocks := classify.BuildBlocks(lines)

	session := rendering.NewSession(aggressiveness)
	if err := session.RenderBlocks(blocks); err != nil {
		return nil, err
	}

	result := validation.Validate(improved, session.Placed())
	recovered := 0
	if !result.Passed {
		var err error
		recovered, err = repair.Recover(session, lines, session.Placed())
		if err != nil {
			return nil, err
		}
		result = validation.Validate(improved, session.Placed())
	}
	if p.printer != nil {
		p.printer.PrintValidation(result)
	}
	if !result.Passed {
		return nil, &validation.PreservationError{Result: result}
	}

	pdf, err := session.Output()
	if err != nil {
		return nil, err
	}
	return &types.FixResult{
		PDF:               pdf,
		Tier:              tier,
		PreservationRatio: result.PreservationRatio,
		RecoveredLines:    recovered,
		PageCount:         session.PageCount(),
	}, nil
}

// runDump is the terminal tier: definitionally lossless, no validation step.
func (p *Pipeline) runDump(improved string) (*types.FixResult, error) {
	pdf, err := rendering.DumpText(improved)
	if err != nil {
		return nil, err
	}
	return &types.FixResult{
		PDF:               pdf,
		Tier:              types.TierDump,
		PreservationRatio: 1.0,
	}, nil
}

// beginRun and finishRun persist run records best-effort: storage failures
// never fail a fix.

func (p *Pipeline) beginRun(ctx context.Context, score float64, originalText, improved string) uuid.UUID {
	if p.store == nil || !p.caps.Database {
		return uuid.Nil
	}
	runID, err := p.store.CreateRun(ctx, score)
	if err != nil {
		return uuid.Nil
	}
	_ = p.store.SaveTextArtifact(ctx, runID, db.StepOriginalText, originalText)
	_ = p.store.SaveTextArtifact(ctx, runID, db.StepImprovedText, improved)
	return runID
}

func (p *Pipeline) finishRun(ctx context.Context, runID uuid.UUID, result *types.FixResult) {
	if p.store == nil || runID == uuid.Nil {
		return
	}
	status := "completed"
	if len(result.PDF) == 0 {
		status = "failed"
	} else {
		_ = p.store.SaveBlobArtifact(ctx, runID, db.StepResultPDF, result.PDF)
	}
	_ = p.store.CompleteRun(ctx, runID, status, string(result.Tier), result.PreservationRatio)
}
