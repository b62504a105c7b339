package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-004", cfg.Embedding.Model)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 1000, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 200, cfg.Retrieval.ChunkOverlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, 10*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, 3, cfg.Scrape.MaxRetries)
	assert.NotEmpty(t, cfg.DataDir, "data dir falls back to the home directory")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/career-data"

[retrieval]
chunk_size = 500
top_k = 3

[llm]
model = "gemini-1.5-pro"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/career-data", cfg.DataDir)
	assert.Equal(t, 500, cfg.Retrieval.ChunkSize)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.Equal(t, "gemini-1.5-pro", cfg.LLM.Model)

	// Untouched keys keep their defaults.
	assert.Equal(t, 200, cfg.Retrieval.ChunkOverlap)
	assert.Equal(t, 768, cfg.Embedding.Dimensions)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-key-123")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", cfg.GeminiAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	tests := []struct {
		name    string
		content string
	}{
		{"zero chunk size", "[retrieval]\nchunk_size = 0\n"},
		{"negative overlap", "[retrieval]\nchunk_overlap = -1\n"},
		{"zero top_k", "[retrieval]\ntop_k = 0\n"},
		{"zero dimensions", "[embedding]\ndimensions = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "")

	cfg := Default()
	cfg.DataDir = "/tmp/career-data"
	cfg.Retrieval.TopK = 7
	cfg.GeminiAPIKey = "secret-key"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-key", "secrets must never be written to disk")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Retrieval.TopK)
	assert.Equal(t, "/tmp/career-data", loaded.DataDir)
}
