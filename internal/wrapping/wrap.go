// Package wrapping measures string widths against PDF core fonts and wraps
// text into lines that fit a column. All entry points are safe: when the
// measurement backend errors, a pessimistic character-count estimate keeps
// the wrap from overflowing.
package wrapping

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Wrapper wraps text using a scratch document for width measurement. Not safe
// for concurrent use; each render session owns its own Wrapper.
type Wrapper struct {
	doc *gofpdf.Fpdf
}

// New returns a Wrapper backed by a throwaway measurement document.
func New() *Wrapper {
	return &Wrapper{doc: gofpdf.New("P", "pt", "A4", "")}
}

// Wrap splits text into lines no wider than maxWidth at the given font and
// size. Text that already fits comes back as a single line, and non-empty
// input never yields an empty result. Words wider than the column on their
// own are cut at the longest measured prefix that fits.
func (w *Wrapper) Wrap(text string, maxWidth, size float64, font string) []string {
	if text == "" {
		return []string{""}
	}

	if width, ok := w.measure(text, size, font); ok && width <= maxWidth {
		return []string{text}
	}

	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		candidate := word
		if cur.Len() > 0 {
			candidate = cur.String() + " " + word
		}
		if width, ok := w.measure(candidate, size, font); ok && width <= maxWidth {
			cur.Reset()
			cur.WriteString(candidate)
			continue
		}
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if width, ok := w.measure(word, size, font); !ok || width > maxWidth {
			chunks := w.splitWord(word, maxWidth, size, font)
			lines = append(lines, chunks[:len(chunks)-1]...)
			cur.WriteString(chunks[len(chunks)-1])
			continue
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}

	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// splitWord cuts an oversized word into measured chunks whose concatenation
// equals the word. Always returns at least one chunk.
func (w *Wrapper) splitWord(word string, maxWidth, size float64, font string) []string {
	runes := []rune(word)
	var chunks []string

	for len(runes) > 0 {
		cut := len(runes)
		for cut > 1 {
			if width, ok := w.measure(string(runes[:cut]), size, font); ok && width <= maxWidth {
				break
			}
			cut--
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return chunks
}

// measure returns the rendered width of s. ok is false when the backend
// cannot measure, in which case a character-count estimate is returned.
func (w *Wrapper) measure(s string, size float64, font string) (float64, bool) {
	family, style := CoreFont(font)
	w.doc.SetFont(family, style, size)
	if w.doc.Err() {
		w.doc.ClearError()
		return estimateWidth(s, size), false
	}
	width := w.doc.GetStringWidth(s)
	if w.doc.Err() {
		w.doc.ClearError()
		return estimateWidth(s, size), false
	}
	return width, true
}

// estimateWidth is the conservative fallback: assume each character takes
// 0.4em, which overestimates for most body fonts and so never overflows.
func estimateWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.4
}

// WrapEstimated wraps using only the character-count heuristic. The dump tier
// uses it so that its output cannot depend on measurement succeeding.
func WrapEstimated(text string, maxWidth, size float64) []string {
	charsPerLine := int(maxWidth / (size * 0.4))
	if charsPerLine < 1 {
		charsPerLine = 1
	}

	var lines []string
	var cur []rune
	for _, word := range strings.Fields(text) {
		wr := []rune(word)
		switch {
		case len(cur) == 0 && len(wr) <= charsPerLine:
			cur = wr
		case len(cur)+1+len(wr) <= charsPerLine:
			cur = append(append(cur, ' '), wr...)
		default:
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			for len(wr) > charsPerLine {
				lines = append(lines, string(wr[:charsPerLine]))
				wr = wr[charsPerLine:]
			}
			cur = wr
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}

// CoreFont maps an arbitrary font name onto one of the PDF core families,
// carrying bold/italic hints through as a style string.
func CoreFont(name string) (family, style string) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "times"), strings.Contains(lower, "serif") && !strings.Contains(lower, "sans"):
		family = "Times"
	case strings.Contains(lower, "courier"), strings.Contains(lower, "mono"):
		family = "Courier"
	default:
		family = "Helvetica"
	}
	if strings.Contains(lower, "bold") {
		style += "B"
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		style += "I"
	}
	return family, style
}
