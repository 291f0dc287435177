// Package types defines the shared data model for the resume fixing pipeline:
// extracted PDF layout, classified content blocks, validation results, and the
// request/result pair exchanged with callers.
package types

import "strings"

// Style flag bits for a text span, derived from the span's font name.
const (
	FlagBold   = 1 << 0
	FlagItalic = 1 << 1
)

// Rect is an axis-aligned bounding box in PDF points. Y grows upward from the
// bottom of the page, matching PDF user space.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// TextSpan is a run of text in the original PDF sharing one font, size, and
// style, with its bounding box. Spans are produced once by the layout parser
// and consumed read-only.
type TextSpan struct {
	Text  string  `json:"text"`
	BBox  Rect    `json:"bbox"`
	Font  string  `json:"font"`
	Size  float64 `json:"size"`
	Flags int     `json:"flags"`
	Page  int     `json:"page"`
}

// Bold reports whether the span's font is a bold face.
func (s TextSpan) Bold() bool {
	return s.Flags&FlagBold != 0
}

// Italic reports whether the span's font is an italic or oblique face.
func (s TextSpan) Italic() bool {
	return s.Flags&FlagItalic != 0
}

// ImageBlock records the position of a non-text region (image XObject) in the
// original PDF. Used by the scorer to penalize image-heavy resumes.
type ImageBlock struct {
	BBox Rect `json:"bbox"`
	Page int  `json:"page"`
}

// PageInfo holds the media box dimensions of one page, in points.
type PageInfo struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentLayout is the full result of parsing an original PDF.
type DocumentLayout struct {
	Spans     []TextSpan   `json:"spans"`
	Images    []ImageBlock `json:"images"`
	Pages     []PageInfo   `json:"pages"`
	FullText  string       `json:"full_text"`
	PageCount int          `json:"page_count"`
}

// LineRole is the semantic role assigned to one line of resume text.
type LineRole string

const (
	RoleEmpty         LineRole = "empty"
	RoleName          LineRole = "name"
	RoleContact       LineRole = "contact"
	RoleSectionHeader LineRole = "section_header"
	RoleJobTitle      LineRole = "job_title"
	RoleDateLocation  LineRole = "date_location"
	RoleBullet        LineRole = "bullet"
	RoleSkillItem     LineRole = "skill_item"
	RoleGeneral       LineRole = "general"
)

// KeepTogether reports whether a block led by this role should be moved to a
// fresh page rather than split when it does not fit the current one.
func (r LineRole) KeepTogether() bool {
	return r == RoleName || r == RoleSectionHeader || r == RoleJobTitle
}

// StartsBlock reports whether a line with this role opens a new content block.
func (r LineRole) StartsBlock() bool {
	return r == RoleName || r == RoleSectionHeader || r == RoleJobTitle
}

// ContentBlock groups consecutive classified lines under the role of the line
// that opened the block. Concatenating Lines across all blocks in order must
// reproduce the input line sequence exactly.
type ContentBlock struct {
	Role      LineRole `json:"role"`
	Lines     []string `json:"lines"`
	StartLine int      `json:"start_line"`
}

// Text joins the block's lines with newlines.
func (b ContentBlock) Text() string {
	return strings.Join(b.Lines, "\n")
}

// ValidationResult reports how much of the improved text survived rendering.
type ValidationResult struct {
	Passed              bool     `json:"passed"`
	PreservationRatio   float64  `json:"preservation_ratio"`
	MissingWordCount    int      `json:"missing_word_count"`
	MissingWordFraction float64  `json:"missing_word_fraction"`
	MissingSections     []string `json:"missing_sections,omitempty"`
}

// Tier identifies which PDF generation strategy produced the output.
type Tier string

const (
	TierConservative Tier = "conservative"
	TierHybrid       Tier = "hybrid"
	TierRebuild      Tier = "rebuild"
	TierDump         Tier = "dump"
)

// Capabilities describes which optional collaborators are available to the
// pipeline. It is populated once by the composition root and never mutated.
type Capabilities struct {
	PDFParsing bool
	LLM        bool
	Database   bool
}

// FixRequest carries everything one resume-fix run needs. OriginalPDF may be
// nil for text-only input, in which case the conservative tier is skipped.
// ImprovedText may be empty when the caller wants the pipeline to invoke the
// LLM rewriter itself.
type FixRequest struct {
	OriginalPDF  []byte
	OriginalText string
	ImprovedText string
	Score        float64
}

// FixResult is the outcome of one resume-fix run. PDF is always non-empty on
// success; the dump tier guarantees a floor.
type FixResult struct {
	PDF               []byte  `json:"-"`
	UsedText          string  `json:"used_text"`
	Tier              Tier    `json:"tier"`
	PreservationRatio float64 `json:"preservation_ratio"`
	RecoveredLines    int     `json:"recovered_lines"`
	PageCount         int     `json:"page_count"`
}
