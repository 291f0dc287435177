package rendering

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpText_NeverFails(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"single word", "resume"},
		{"normal resume text", "Jane Doe\njane@example.com\n\nEXPERIENCE\n• Built things\n• Fixed things"},
		{"very long text", strings.Repeat("lorem ipsum dolor sit amet consectetur\n", 5000)},
		{"no whitespace at all", strings.Repeat("x", 200000)},
		{"exotic characters", "résumé — naïve façade \x00\a 中文"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DumpText(tt.text)
			require.NoError(t, err)
			require.NotEmpty(t, out)
			assert.Equal(t, "%PDF-", string(out[:5]))
		})
	}
}

func TestChunkText_ConcatenationIsLossless(t *testing.T) {
	tests := []string{
		"",
		"short",
		strings.Repeat("a", 10000),
		strings.Repeat("line one\nline two\nline three\n", 500),
	}
	for _, text := range tests {
		chunks := chunkText(text, dumpChunkSize, dumpTailWindow)
		require.NotEmpty(t, chunks)
		assert.Equal(t, text, strings.Join(chunks, ""))
	}
}

func TestChunkText_PrefersNewlineBoundary(t *testing.T) {
	// A newline sits inside the tail window; the cut lands just after it.
	text := strings.Repeat("b", 90) + "\n" + strings.Repeat("c", 40)
	chunks := chunkText(text, 100, 20)

	require.Len(t, chunks, 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n"))
	assert.Equal(t, strings.Repeat("c", 40), chunks[1])
}

func TestChunkText_NoNewlineCutsAtSize(t *testing.T) {
	text := strings.Repeat("d", 250)
	chunks := chunkText(text, 100, 20)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[1], 100)
	assert.Len(t, chunks[2], 50)
}
