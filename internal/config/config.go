// Package config loads the typed application configuration.
//
// Configuration comes from three layers, later layers winning:
// built-in defaults, a TOML file (~/.careeragent/config.toml by
// default), and environment variables for secrets. A .env file in the
// working directory is loaded into the environment if present.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variable names for secrets. Secrets never live in the
// TOML file.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Config is the full typed application configuration.
type Config struct {
	// DataDir is the root directory for all persisted state: raw
	// scraped text, index manifests, vector index files and the
	// metadata database.
	DataDir string `toml:"data_dir"`

	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Scrape    ScrapeConfig    `toml:"scrape"`

	// GeminiAPIKey is read from the environment, never from TOML.
	GeminiAPIKey string `toml:"-"`
}

// EmbeddingConfig configures the embedding model.
type EmbeddingConfig struct {
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// LLMConfig configures the generation model.
type LLMConfig struct {
	Model string `toml:"model"`
}

// RetrievalConfig configures chunking and search.
type RetrievalConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
	TopK         int `toml:"top_k"`
}

// ScrapeConfig configures outbound HTTP scraping.
type ScrapeConfig struct {
	Timeout    time.Duration `toml:"timeout"`
	MaxRetries int           `toml:"max_retries"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Model:      "text-embedding-004",
			Dimensions: 768,
		},
		LLM: LLMConfig{
			Model: "gemini-2.0-flash",
		},
		Retrieval: RetrievalConfig{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			TopK:         5,
		},
		Scrape: ScrapeConfig{
			Timeout:    10 * time.Second,
			MaxRetries: 3,
		},
	}
}

// Load reads configuration from the given TOML file path layered over
// defaults, then applies environment variables. An empty path uses
// ~/.careeragent/config.toml; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".careeragent", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No config file, defaults apply.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".careeragent", "data")
	}

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()
	cfg.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("retrieval.chunk_size must be positive, got %d", c.Retrieval.ChunkSize)
	}
	if c.Retrieval.ChunkOverlap < 0 {
		return fmt.Errorf("retrieval.chunk_overlap must not be negative, got %d", c.Retrieval.ChunkOverlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	return nil
}

// Write persists the configuration to the given TOML file path,
// creating parent directories as needed. Secrets are not written.
func (c Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
