// Package rendering lays improved resume text out on PDF pages. A Session
// owns the document, the vertical cursor, and the ledger of every string it
// actually placed; the ledger is what content-preservation validation runs
// against afterwards.
package rendering

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-atsfix/internal/classify"
	"github.com/jonathan/resume-atsfix/internal/types"
	"github.com/jonathan/resume-atsfix/internal/wrapping"
)

const topBaseline = Margin + 14

// Session is one in-progress PDF build. Not safe for concurrent use; each
// fix request owns its own Session from creation to Output.
type Session struct {
	doc            *gofpdf.Fpdf
	tr             func(string) string
	wrapper        *wrapping.Wrapper
	y              float64
	placed         []string
	aggressiveness float64
}

// NewSession starts an empty A4 document. aggressiveness scales heading
// sizes; pass 1.0 for the standard rebuild look.
func NewSession(aggressiveness float64) *Session {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return &Session{
		doc:            doc,
		tr:             doc.UnicodeTranslatorFromDescriptor(""),
		wrapper:        wrapping.New(),
		y:              topBaseline,
		aggressiveness: aggressiveness,
	}
}

// Placed returns the ledger of every string successfully written so far.
func (s *Session) Placed() []string {
	return s.placed
}

// PageCount returns the number of pages allocated so far.
func (s *Session) PageCount() int {
	return s.doc.PageCount()
}

// Output serializes the document. The session must not be used afterwards.
func (s *Session) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.doc.Output(&buf); err != nil {
		return nil, &GenerationError{Message: "failed to serialize document", Cause: err}
	}
	if buf.Len() == 0 {
		return nil, &GenerationError{Message: "serializer produced no bytes"}
	}
	return buf.Bytes(), nil
}

// RenderBlocks places every block on the page, breaking to a new page when
// vertical space runs out. Keep-together blocks (name, section header, job
// title) are moved to a fresh page pre-emptively when they would not fit;
// body blocks may split mid-block since bullets are independent units.
func (s *Session) RenderBlocks(blocks []types.ContentBlock) error {
	for _, block := range blocks {
		st := styleFor(block.Role, s.aggressiveness)

		if block.Role.KeepTogether() {
			h := s.estimateHeight(block, st)
			if s.y+h > bottomY && h <= bottomY-topBaseline {
				s.newPage()
			}
		}

		s.y += st.SpaceBefore
		if st.RuleAbove {
			if s.y > bottomY {
				s.newPage()
				s.y += st.SpaceBefore
			}
			s.doc.SetDrawColor(150, 150, 150)
			s.doc.Line(Margin, s.y-st.Size, PageWidth-Margin, s.y-st.Size)
			s.doc.ClearError()
		}

		for i, line := range block.Lines {
			if strings.TrimSpace(line) == "" {
				s.y += st.LineHeight() * 0.5
				continue
			}
			lineStyle := st
			if i > 0 {
				lineStyle = styleFor(classify.Classify(line, 2), s.aggressiveness)
			}
			if err := s.renderLine(line, lineStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

// AppendRecoveredLines adds a dedicated page holding lines that the main
// render pass lost, and returns how many were placed. Used by the recovery
// pass after a failed validation.
func (s *Session) AppendRecoveredLines(lines []string) (int, error) {
	s.newPage()

	header := styleFor(types.RoleSectionHeader, s.aggressiveness)
	if err := s.renderLine("ADDITIONAL CONTENT", header); err != nil {
		return 0, err
	}

	body := styleFor(types.RoleGeneral, s.aggressiveness)
	count := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := s.renderLine(line, body); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// renderLine wraps one logical line to the content width and inserts each
// wrapped segment through the strategy chain, breaking pages as needed.
func (s *Session) renderLine(line string, st Style) error {
	segments := s.wrapper.Wrap(line, ContentWidth, st.Size, st.Family+st.FontStyle)
	for _, segment := range segments {
		if s.y > bottomY {
			s.newPage()
		}
		if err := s.insertSegment(segment, st); err != nil {
			return err
		}
		s.y += st.LineHeight()
	}
	return nil
}

// insertionStrategy is one way of getting a string onto the page. Strategies
// are tried in order; the first that succeeds wins.
type insertionStrategy struct {
	name  string
	apply func(s *Session, segment string, st Style) error
}

var insertionStrategies = []insertionStrategy{
	{"exact-style", func(s *Session, segment string, st Style) error {
		return s.place(segment, st.Family, st.FontStyle, st.Size, st.Gray)
	}},
	{"default-font", func(s *Session, segment string, st Style) error {
		return s.place(segment, "Helvetica", "", st.Size, 0)
	}},
	{"reduced-size", func(s *Session, segment string, st Style) error {
		size := st.Size * 0.8
		if size < 7 {
			size = 7
		}
		return s.place(segment, "Helvetica", "", size, 0)
	}},
	{"text-box", func(s *Session, segment string, st Style) error {
		return s.placeBox(segment, st)
	}},
}

// insertSegment runs the strategy chain for one wrapped segment and records
// it in the ledger on success. Failure of all strategies is a hard error for
// the current tier, never a silent drop.
func (s *Session) insertSegment(segment string, st Style) error {
	var lastErr error
	for _, strategy := range insertionStrategies {
		if err := strategy.apply(s, segment, st); err != nil {
			lastErr = fmt.Errorf("%s: %w", strategy.name, err)
			continue
		}
		s.placed = append(s.placed, segment)
		return nil
	}
	return &InsertionError{Line: segment, Message: "all insertion strategies failed", Cause: lastErr}
}

func (s *Session) place(segment, family, fontStyle string, size float64, gray int) error {
	s.doc.SetFont(family, fontStyle, size)
	if gray > 0 {
		s.doc.SetTextColor(gray, gray, gray)
	} else {
		s.doc.SetTextColor(0, 0, 0)
	}
	s.doc.Text(Margin, s.y, s.tr(segment))
	if s.doc.Err() {
		err := s.doc.Error()
		s.doc.ClearError()
		return err
	}
	return nil
}

// placeBox is the last-resort strategy: a wrapped cell at the cursor that
// ignores exact baseline placement.
func (s *Session) placeBox(segment string, st Style) error {
	s.doc.SetFont("Helvetica", "", st.Size)
	s.doc.SetTextColor(0, 0, 0)
	s.doc.SetXY(Margin, s.y-st.Size)
	s.doc.MultiCell(ContentWidth, st.LineHeight(), s.tr(segment), "", "L", false)
	if s.doc.Err() {
		err := s.doc.Error()
		s.doc.ClearError()
		return err
	}
	// renderLine advances the cursor by one line height after every
	// insertion; leave the cursor one line short so the shared advance puts
	// the next baseline just below the cell.
	s.y = s.doc.GetY() + st.Size - st.LineHeight()
	return nil
}

func (s *Session) estimateHeight(block types.ContentBlock, st Style) float64 {
	h := st.SpaceBefore
	for i, line := range block.Lines {
		lineStyle := st
		if i > 0 {
			lineStyle = styleFor(classify.Classify(line, 2), s.aggressiveness)
		}
		segments := s.wrapper.Wrap(line, ContentWidth, lineStyle.Size, lineStyle.Family+lineStyle.FontStyle)
		h += float64(len(segments)) * lineStyle.LineHeight()
	}
	return h
}

func (s *Session) newPage() {
	s.doc.AddPage()
	s.y = topBaseline
}
