// Package overlay edits the original PDF in place: spans whose text changed
// in the improved version are whited out and re-stamped at their original
// baseline, preserving the document's visual layout. This is the most
// layout-faithful strategy and also the most fragile one; any failure here
// fails the whole document and the caller rebuilds from text instead.
package overlay

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdftypes "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jonathan/resume-atsfix/internal/types"
	"github.com/jonathan/resume-atsfix/internal/wrapping"
)

// Apply replaces changed spans of the original PDF with their improved text
// and returns the rewritten document plus the number of spans replaced.
// Spans with no mapping entry are left untouched. Zero replacements is not
// an error; the caller gets the original bytes back.
func Apply(pdfBytes []byte, doc *types.DocumentLayout, originalText, improvedText string) ([]byte, int, error) {
	if len(pdfBytes) == 0 {
		return nil, 0, &ReplaceError{Message: "no original PDF to edit"}
	}
	if doc == nil || len(doc.Spans) == 0 {
		return nil, 0, &ReplaceError{Message: "no spans extracted from original PDF"}
	}
	if originalText == "" {
		originalText = doc.FullText
	}

	mapping := buildMapping(originalText, improvedText)
	conf := model.NewDefaultConfiguration()

	current := pdfBytes
	replaced := 0
	for _, span := range doc.Spans {
		replacement, found := mapping.lookup(span.Text)
		if !found || sameText(replacement, span.Text) {
			continue
		}

		out, err := stampSpan(current, span, replacement, pageHeight(doc, span.Page), conf)
		if err != nil {
			return nil, replaced, err
		}
		current = out
		replaced++
	}
	return current, replaced, nil
}

// stampSpan covers one span with a white box carrying the replacement text,
// anchored at the span's original position with its original size.
func stampSpan(pdfBytes []byte, span types.TextSpan, replacement string, pageHeight float64, conf *model.Configuration) ([]byte, error) {
	bg := color.White
	wm := &model.Watermark{
		Mode:           model.WMText,
		TextString:     replacement,
		FontName:       stampFont(span.Font),
		FontSize:       int(span.Size),
		ScaledFontSize: int(span.Size),
		Color:          color.Black,
		BgColor:        &bg,
		Opacity:        1.0,
		OnTop:          true,
		Update:         false,
	}

	// Watermark offsets anchor at the top-left corner of the page; span
	// boxes are in PDF user space with Y growing upward.
	wm.Pos = pdftypes.TopLeft
	wm.Dx = span.BBox.X0
	wm.Dy = pageHeight - span.BBox.Y1
	if w, h := span.BBox.Width(), span.BBox.Height(); w > 0 && h > 0 {
		wm.Width = int(w)
		wm.Height = int(h)
	}

	selectedPages := []string{fmt.Sprintf("%d", span.Page+1)}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdfBytes), &out, selectedPages, wm, conf); err != nil {
		return nil, &ReplaceError{
			Message: fmt.Sprintf("failed to stamp span on page %d", span.Page+1),
			Cause:   err,
		}
	}
	return out.Bytes(), nil
}

// PageCount reads the page count of a finished PDF.
func PageCount(pdfBytes []byte) (int, error) {
	ctx, err := api.ReadContext(bytes.NewReader(pdfBytes), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &ReplaceError{Message: "failed to read PDF context", Cause: err}
	}
	return ctx.PageCount, nil
}

// stampFonts maps core family + style onto the standard font names the
// stamping backend ships with.
var stampFonts = map[string]string{
	"Helvetica":   "Helvetica",
	"HelveticaB":  "Helvetica-Bold",
	"HelveticaI":  "Helvetica-Oblique",
	"HelveticaBI": "Helvetica-BoldOblique",
	"Times":       "Times-Roman",
	"TimesB":      "Times-Bold",
	"TimesI":      "Times-Italic",
	"TimesBI":     "Times-BoldItalic",
	"Courier":     "Courier",
	"CourierB":    "Courier-Bold",
	"CourierI":    "Courier-Oblique",
	"CourierBI":   "Courier-BoldOblique",
}

// stampFont resolves the span's original font so patches blend into Times and
// Courier documents instead of always landing in Helvetica.
func stampFont(font string) string {
	family, style := wrapping.CoreFont(font)
	if name, ok := stampFonts[family+style]; ok {
		return name
	}
	return "Helvetica"
}

func pageHeight(doc *types.DocumentLayout, page int) float64 {
	if page >= 0 && page < len(doc.Pages) {
		return doc.Pages[page].Height
	}
	return 841.89
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.Join(strings.Fields(a), " "), strings.Join(strings.Fields(b), " "))
}
