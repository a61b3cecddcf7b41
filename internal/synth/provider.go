package synth

import (
	"context"
	"fmt"
)

// Provider defines the interface for text-to-speech vendors.
type Provider interface {
	// Synthesize renders the text as LINEAR16 PCM audio.
	Synthesize(ctx context.Context, text string, params Params) ([]byte, error)

	// Name returns the provider name.
	Name() string

	// IsAvailable checks if the provider is properly configured.
	IsAvailable() error
}

// Config holds configuration for audio providers.
type Config struct {
	Provider        string // Provider name: "google"
	CredentialsFile string // Path to a service account key file; empty uses ambient credentials
}

// DefaultProviderConfig returns the default provider configuration.
func DefaultProviderConfig() Config {
	return Config{Provider: "google"}
}

// NewProvider creates the appropriate audio provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	if config.Provider == "" {
		config.Provider = "google"
	}

	switch config.Provider {
	case "google":
		return NewGoogleProvider(config), nil
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}
