// Package gemini provides an LLM service adapter using the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultModel = "gemini-2.0-flash"

	// DefaultTemperature keeps factual tasks close to deterministic.
	DefaultTemperature = 0.1

	// CreativeTemperature is used for cover letter writing.
	CreativeTemperature = 0.7
)

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string

	// Model is the generation model to use (default: gemini-2.0-flash).
	Model string

	// Temperature overrides the default sampling temperature.
	Temperature float32
}

// LLMService generates completions using the Gemini API.
type LLMService struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &LLMService{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate produces a completion for the given prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, s.temperature)
}

// GenerateCreative produces a completion with a higher sampling
// temperature.
func (s *LLMService) GenerateCreative(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, CreativeTemperature)
}

func (s *LLMService) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model %s", s.model)
	}
	return text, nil
}

// ModelName returns the name of the underlying model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}
