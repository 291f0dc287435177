package layout

import (
	"bytes"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-atsfix/internal/types"
)

func buildFixturePDF(t *testing.T) []byte {
	t.Helper()

	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.Text(50, 60, "JANE DOE")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(50, 80, "jane@example.com | 555-123-4567")
	doc.SetFont("Helvetica", "B", 13)
	doc.Text(50, 110, "EXPERIENCE")
	doc.SetFont("Helvetica", "", 10)
	doc.Text(50, 130, "Senior Software Engineer at Initech")

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestParse_ExtractsSpansAndText(t *testing.T) {
	doc, err := Parse(buildFixturePDF(t))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.PageCount)
	require.Len(t, doc.Pages, 1)
	assert.InDelta(t, 595.28, doc.Pages[0].Width, 1.0)
	assert.InDelta(t, 841.89, doc.Pages[0].Height, 1.0)

	require.NotEmpty(t, doc.Spans)
	assert.Contains(t, doc.FullText, "JANE DOE")
	assert.Contains(t, doc.FullText, "EXPERIENCE")
	assert.Contains(t, doc.FullText, "Senior Software Engineer at Initech")
}

func TestParse_DetectsBoldFlag(t *testing.T) {
	doc, err := Parse(buildFixturePDF(t))
	require.NoError(t, err)

	var foundBold bool
	for _, span := range doc.Spans {
		if span.Bold() && span.Text != "" {
			foundBold = true
			break
		}
	}
	assert.True(t, foundBold, "expected at least one bold span from the bold headings")
}

func TestParse_SpansOrderedTopDown(t *testing.T) {
	doc, err := Parse(buildFixturePDF(t))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Spans)

	// Name was drawn above the experience line; its baseline must come first.
	var nameY, expY float64
	for _, span := range doc.Spans {
		switch {
		case span.Text == "JANE DOE":
			nameY = span.BBox.Y0
		case span.Text == "Senior Software Engineer at Initech":
			expY = span.BBox.Y0
		}
	}
	assert.Greater(t, nameY, expY, "PDF user space Y grows upward")
}

func TestParse_EmptyBuffer(t *testing.T) {
	doc, err := Parse(nil)
	assert.Nil(t, doc)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "empty PDF buffer")
}

func TestParse_GarbageBuffer(t *testing.T) {
	doc, err := Parse([]byte("this is not a pdf at all"))
	assert.Nil(t, doc)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFontFlags(t *testing.T) {
	assert.Equal(t, 0, fontFlags("Helvetica"))
	assert.Equal(t, types.FlagBold, fontFlags("Helvetica-Bold"))
	assert.Equal(t, types.FlagBold|types.FlagItalic, fontFlags("Times-BoldItalic"))
	assert.Equal(t, types.FlagItalic, fontFlags("Courier-Oblique"))
}
