package rendering

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-atsfix/internal/wrapping"
)

// Dump tier tuning: chunk size approximates one densely packed page, and the
// tail window is how far back from a chunk boundary we look for a newline to
// break at instead of cutting mid-line.
const (
	dumpChunkSize  = 3200
	dumpTailWindow = 200
	dumpFontSize   = 10.0
	dumpLineHeight = 13.0
)

// DumpText is the terminal generation tier: an unstyled page-per-chunk dump
// of the full text. It must produce a valid PDF for any input, including
// empty strings and megabyte-long unbroken tokens; per-chunk it falls back
// from a wrapped cell to a smaller font to raw line-by-line placement. An
// error return here means the process is out of options entirely.
func DumpText(text string) ([]byte, error) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(true, PageHeight-bottomY)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, chunk := range chunkText(text, dumpChunkSize, dumpTailWindow) {
		doc.AddPage()
		dumpChunk(doc, tr, chunk)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err == nil && buf.Len() > 0 {
		return buf.Bytes(), nil
	}

	// The document ended up unserializable (pathological input bytes).
	// Rebuild once from ASCII-sanitized text; this cannot hit the same
	// translator or font paths that failed above.
	doc = gofpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(true, PageHeight-bottomY)
	doc.AddPage()
	doc.SetFont("Courier", "", 9)
	y := topBaseline
	for _, line := range wrapping.WrapEstimated(sanitizeASCII(text), ContentWidth, 9) {
		if y > bottomY {
			doc.AddPage()
			y = topBaseline
		}
		doc.Text(Margin, y, line)
		y += dumpLineHeight
	}
	doc.ClearError()

	buf.Reset()
	if err := doc.Output(&buf); err != nil {
		return nil, &GenerationError{Message: "dump tier failed to serialize", Cause: err}
	}
	return buf.Bytes(), nil
}

// dumpChunk writes one chunk onto the current page, degrading through three
// attempts. The last attempt places raw measured-by-estimate lines and clears
// any error state so one bad chunk cannot poison the document.
func dumpChunk(doc *gofpdf.Fpdf, tr func(string) string, chunk string) {
	doc.SetFont("Helvetica", "", dumpFontSize)
	doc.SetXY(Margin, Margin)
	doc.MultiCell(ContentWidth, dumpLineHeight, tr(chunk), "", "L", false)
	if !doc.Err() {
		return
	}
	doc.ClearError()

	doc.SetFont("Helvetica", "", 8)
	doc.SetXY(Margin, Margin)
	doc.MultiCell(ContentWidth, 11, tr(chunk), "", "L", false)
	if !doc.Err() {
		return
	}
	doc.ClearError()

	y := topBaseline
	for _, raw := range strings.Split(chunk, "\n") {
		for _, line := range wrapping.WrapEstimated(raw, ContentWidth, 8) {
			if y > bottomY {
				doc.AddPage()
				y = topBaseline
			}
			doc.Text(Margin, y, tr(line))
			y += 11
		}
	}
	doc.ClearError()
}

// chunkText splits text into chunks of at most size runes, preferring to cut
// at the last newline inside the final tail runes of a chunk. Concatenating
// the chunks reproduces the input exactly.
func chunkText(text string, size, tail int) []string {
	if text == "" {
		return []string{""}
	}

	runes := []rune(text)
	var chunks []string
	for len(runes) > size {
		cut := size
		for i := size - 1; i >= size-tail && i >= 0; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return append(chunks, string(runes))
}

func sanitizeASCII(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || (r >= 32 && r < 127) {
			return r
		}
		return '?'
	}, text)
}
