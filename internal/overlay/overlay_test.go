package overlay

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-atsfix/internal/layout"
	"github.com/jonathan/resume-atsfix/internal/types"
)

func buildFixturePDF(t *testing.T) []byte {
	t.Helper()

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 11)
	doc.Text(50, 80, "Responsible for billing systems")
	doc.Text(50, 100, "Worked with several teams")

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestApply_ReplacesChangedSpans(t *testing.T) {
	original := buildFixturePDF(t)
	doc, err := layout.Parse(original)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Spans)

	originalText := "Responsible for billing systems. Worked with several teams."
	improvedText := "Owned companywide billing systems. Partnered with several teams."

	out, replaced, err := Apply(original, doc, originalText, improvedText)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF-", string(out[:5]))
	assert.Equal(t, 2, replaced)

	pages, err := PageCount(out)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestApply_TimesDocumentKeepsFamily(t *testing.T) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Times", "", 11)
	doc.Text(50, 80, "Responsible for billing systems")
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	parsed, err := layout.Parse(buf.Bytes())
	require.NoError(t, err)
	require.NotEmpty(t, parsed.Spans)

	out, replaced, err := Apply(buf.Bytes(), parsed,
		"Responsible for billing systems.",
		"Owned companywide billing systems.")
	require.NoError(t, err)
	assert.Equal(t, 1, replaced)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestStampFont_MatchesOriginalFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Helvetica", "Helvetica"},
		{"Arial-BoldMT", "Helvetica-Bold"},
		{"Times-Roman", "Times-Roman"},
		{"TimesNewRomanPS-ItalicMT", "Times-Italic"},
		{"Times-BoldItalic", "Times-BoldItalic"},
		{"Courier-Oblique", "Courier-Oblique"},
		{"SomeMono", "Courier"},
		{"", "Helvetica"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stampFont(tt.in), tt.in)
	}
}

func TestApply_NoChangesReturnsOriginalBytes(t *testing.T) {
	original := buildFixturePDF(t)
	doc, err := layout.Parse(original)
	require.NoError(t, err)

	text := "Responsible for billing systems. Worked with several teams."
	out, replaced, err := Apply(original, doc, text, text)
	require.NoError(t, err)
	assert.Zero(t, replaced)
	assert.Equal(t, original, out)
}

func TestApply_MissingInputsFail(t *testing.T) {
	var replaceErr *ReplaceError

	_, _, err := Apply(nil, &types.DocumentLayout{}, "a", "b")
	require.ErrorAs(t, err, &replaceErr)

	_, _, err = Apply([]byte("%PDF-1.4"), &types.DocumentLayout{}, "a", "b")
	require.ErrorAs(t, err, &replaceErr)
}

func TestPageCount_InvalidPDF(t *testing.T) {
	_, err := PageCount([]byte("not a pdf"))
	var replaceErr *ReplaceError
	assert.ErrorAs(t, err, &replaceErr)
}
