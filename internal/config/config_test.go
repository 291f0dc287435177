package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"output": "fixed.pdf",
		"aggressiveness": 0.9,
		"port": 8080
	}`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed.pdf", cfg.Output)
	assert.Equal(t, 0.9, cfg.Aggressiveness)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, (&Config{Aggressiveness: 0.8, Port: 9000}).Validate())

	assert.Error(t, (&Config{Aggressiveness: 0.2}).Validate())
	assert.Error(t, (&Config{Aggressiveness: 1.5}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
	assert.Error(t, (&Config{Resume: "/definitely/not/here.pdf"}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Output: "mine.pdf"}
	merged := cfg.MergeWithDefaults(Config{
		Output:      "default.pdf",
		APIKey:      "key-from-file",
		Port:        8080,
		DatabaseURL: "postgres://localhost/atsfix",
	})

	assert.Equal(t, "mine.pdf", merged.Output, "explicit value wins")
	assert.Equal(t, "key-from-file", merged.APIKey)
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, 1.0, merged.Aggressiveness, "unset aggressiveness defaults to 1.0")
}
