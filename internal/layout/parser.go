// Package layout extracts positioned text spans, image positions, and linear
// text from an existing PDF. It feeds the conservative in-place replacement
// path and the formatting checks of the scorer.
package layout

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-atsfix/internal/types"
)

// Parse reads a PDF from memory and returns its layout: one span per run of
// same-font text, image block positions, page sizes, and the concatenated
// plain text (span texts joined by space within a row, rows joined by
// newline). A nil or unreadable buffer yields a *ParseError.
func Parse(pdfBytes []byte) (doc *types.DocumentLayout, err error) {
	if len(pdfBytes) == 0 {
		return nil, &ParseError{Message: "empty PDF buffer"}
	}

	// The underlying reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ParseError{Message: fmt.Sprintf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, &ParseError{Message: "failed to open PDF", Cause: err}
	}

	doc = &types.DocumentLayout{PageCount: reader.NumPage()}
	var pageTexts []string

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, types.PageInfo{Width: defaultPageWidth, Height: defaultPageHeight})
			continue
		}

		info := pageSize(page)
		doc.Pages = append(doc.Pages, info)

		doc.Images = append(doc.Images, pageImages(page, pageNum-1, info)...)

		rows, err := page.GetTextByRow()
		if err != nil {
			// A single unreadable page does not fail the whole document.
			continue
		}

		// Rows come keyed by baseline Y; order top of page first.
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].Position > rows[j].Position
		})

		var rowTexts []string
		for _, row := range rows {
			spans := mergeRow(row.Content, pageNum-1)
			if len(spans) == 0 {
				continue
			}
			doc.Spans = append(doc.Spans, spans...)

			parts := make([]string, 0, len(spans))
			for _, s := range spans {
				parts = append(parts, s.Text)
			}
			rowTexts = append(rowTexts, strings.Join(parts, " "))
		}
		if len(rowTexts) > 0 {
			pageTexts = append(pageTexts, strings.Join(rowTexts, "\n"))
		}
	}

	doc.FullText = strings.Join(pageTexts, "\n")
	return doc, nil
}

const (
	defaultPageWidth  = 595.28
	defaultPageHeight = 841.89
)

// mergeRow coalesces consecutive characters/fragments that share a font and
// size into single spans, dropping non-printable garbage.
func mergeRow(texts []pdf.Text, pageIndex int) []types.TextSpan {
	var spans []types.TextSpan
	var cur *types.TextSpan

	for _, t := range texts {
		s := sanitize(t.S)
		if s == "" {
			continue
		}

		if cur != nil && cur.Font == t.Font && cur.Size == t.FontSize && adjacent(cur, t) {
			cur.Text += s
			cur.BBox.X1 = t.X + t.W
			continue
		}

		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			spans = append(spans, *cur)
		}
		cur = &types.TextSpan{
			Text: s,
			BBox: types.Rect{X0: t.X, Y0: t.Y, X1: t.X + t.W, Y1: t.Y + t.FontSize},
			Font: t.Font,
			Size: t.FontSize,
			Flags: fontFlags(t.Font),
			Page: pageIndex,
		}
	}
	if cur != nil && strings.TrimSpace(cur.Text) != "" {
		spans = append(spans, *cur)
	}
	return spans
}

// adjacent reports whether a fragment continues the current span rather than
// starting a visually separate run. The gap tolerance is one em at the span's
// size, which absorbs normal kerning but splits column gaps.
func adjacent(cur *types.TextSpan, t pdf.Text) bool {
	gap := t.X - cur.BBox.X1
	return gap > -1 && gap < cur.Size
}

// fontFlags derives style bits from the font name, e.g. "Helvetica-BoldOblique".
func fontFlags(font string) int {
	name := strings.ToLower(font)
	flags := 0
	if strings.Contains(name, "bold") {
		flags |= types.FlagBold
	}
	if strings.Contains(name, "italic") || strings.Contains(name, "oblique") {
		flags |= types.FlagItalic
	}
	return flags
}

// sanitize strips control characters that some extractors emit for ligatures
// and layout operators.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, s)
}

// pageSize resolves the page media box, walking up to the page tree root when
// the box is inherited.
func pageSize(page pdf.Page) types.PageInfo {
	node := page.V
	for depth := 0; depth < 16 && !node.IsNull(); depth++ {
		box := node.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			return types.PageInfo{
				Width:  box.Index(2).Float64() - box.Index(0).Float64(),
				Height: box.Index(3).Float64() - box.Index(1).Float64(),
			}
		}
		node = node.Key("Parent")
	}
	return types.PageInfo{Width: defaultPageWidth, Height: defaultPageHeight}
}

// pageImages lists image XObjects referenced by the page. The extractor does
// not expose placement operators, so each image is reported with the page
// box as its bounds; the scorer only needs presence and page index.
func pageImages(page pdf.Page, pageIndex int, info types.PageInfo) []types.ImageBlock {
	xobjects := page.V.Key("Resources").Key("XObject")
	if xobjects.IsNull() {
		return nil
	}

	var images []types.ImageBlock
	for _, name := range xobjects.Keys() {
		obj := xobjects.Key(name)
		if obj.IsNull() || obj.Key("Subtype").Name() != "Image" {
			continue
		}
		images = append(images, types.ImageBlock{
			BBox: types.Rect{X0: 0, Y0: 0, X1: info.Width, Y1: info.Height},
			Page: pageIndex,
		})
	}
	return images
}
