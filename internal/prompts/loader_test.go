package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_LoadsEmbeddedPrompts(t *testing.T) {
	for _, key := range []string{"rewrite_light", "rewrite_moderate", "rewrite_aggressive"} {
		prompt, err := Get("rewriting.json", key)
		require.NoError(t, err, key)
		assert.Contains(t, prompt, "{{.Resume}}")
		assert.Contains(t, prompt, "{{.Score}}")
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("rewriting.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "anything")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Score {{.Score}} for {{.Resume}}", map[string]string{
		"Score":  "55",
		"Resume": "the text",
	})
	assert.Equal(t, "Score 55 for the text", out)
	assert.False(t, strings.Contains(out, "{{"))
}
