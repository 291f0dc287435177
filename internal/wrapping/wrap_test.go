package wrapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_ShortTextPassesThrough(t *testing.T) {
	w := New()
	lines := w.Wrap("short line", 400, 10, "Helvetica")
	assert.Equal(t, []string{"short line"}, lines)
}

func TestWrap_ReconstructsInput(t *testing.T) {
	w := New()
	text := "this is a fairly long sentence that cannot possibly fit on a single narrow line of output"

	lines := w.Wrap(text, 120, 10, "Helvetica")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, text, strings.Join(lines, " "), "no words dropped or duplicated")
}

func TestWrap_NeverEmptyForNonEmptyInput(t *testing.T) {
	w := New()
	for _, text := range []string{"x", "   ", "a b", strings.Repeat("y", 500)} {
		lines := w.Wrap(text, 50, 12, "Helvetica")
		assert.NotEmpty(t, lines, "input %q", text)
	}
}

func TestWrap_OversizedWordSplitsAtCharacterLevel(t *testing.T) {
	w := New()
	word := strings.Repeat("abcdef", 10) // 60 chars, unbroken

	lines := w.Wrap(word, 100, 12, "Helvetica")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, word, strings.Join(lines, ""), "chunk concatenation equals the word")

	for _, line := range lines {
		width, ok := w.measure(line, 12, "Helvetica")
		require.True(t, ok)
		assert.LessOrEqual(t, width, 100.0)
	}
}

func TestWrap_UnknownFontFallsBackToCoreFamily(t *testing.T) {
	w := New()
	lines := w.Wrap("some text in a custom font", 400, 10, "FancyCorporate-BoldItalic")
	assert.NotEmpty(t, lines)
}

func TestWrapEstimated_BoundsLineLength(t *testing.T) {
	text := "one two three four five six seven eight nine ten eleven twelve"
	lines := WrapEstimated(text, 48, 10) // 12 chars per line

	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 12)
	}
	assert.Equal(t, text, strings.Join(lines, " "))
}

func TestWrapEstimated_PathologicalWidth(t *testing.T) {
	lines := WrapEstimated("abc", 1, 100) // below one char per line
	assert.Equal(t, []string{"a", "b", "c"}, lines)
}

func TestCoreFont_Mapping(t *testing.T) {
	tests := []struct {
		in     string
		family string
		style  string
	}{
		{"Helvetica", "Helvetica", ""},
		{"Arial-Bold", "Helvetica", "B"},
		{"Times-BoldItalic", "Times", "BI"},
		{"Courier-Oblique", "Courier", "I"},
		{"SomeMono", "Courier", ""},
		{"", "Helvetica", ""},
	}
	for _, tt := range tests {
		family, style := CoreFont(tt.in)
		assert.Equal(t, tt.family, family, tt.in)
		assert.Equal(t, tt.style, style, tt.in)
	}
}
