package sentence

import (
	"context"
	"fmt"
)

// Provider is the language-model capability used for sentence generation.
// Implementations send one prompt and return the raw completion text; parsing
// and filtering happen in the generator so every provider behaves the same.
type Provider interface {
	// Complete sends the prompt and returns the model's raw response text.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// NewProvider creates the appropriate language-model provider for the
// configuration.
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel), nil

	case ProviderOllama:
		return NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}
