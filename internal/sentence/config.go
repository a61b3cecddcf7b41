package sentence

import (
	"fmt"
	"sync"
)

// Supported LLM provider names.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config is one snapshot of the process-wide LLM configuration. Generation
// requests read a snapshot once at the start, so a concurrent switch never
// changes an in-flight request's provider.
type Config struct {
	Provider      string
	OpenAIKey     string
	OpenAIModel   string
	OllamaBaseURL string
	OllamaModel   string
}

// DefaultConfig returns the default LLM configuration.
func DefaultConfig() Config {
	return Config{
		Provider:      ProviderOpenAI,
		OpenAIModel:   "gpt-4.1",
		OllamaBaseURL: "http://localhost:11434",
		OllamaModel:   "llama3.1:8b",
	}
}

// Settings owns the mutable LLM configuration. All reads and writes go
// through it; there is no ambient global lookup.
type Settings struct {
	mu  sync.RWMutex
	cfg Config
}

// NewSettings creates Settings seeded with cfg, filling empty fields from
// DefaultConfig.
func NewSettings(cfg Config) *Settings {
	def := DefaultConfig()
	if cfg.Provider == "" {
		cfg.Provider = def.Provider
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = def.OpenAIModel
	}
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = def.OllamaBaseURL
	}
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = def.OllamaModel
	}
	return &Settings{cfg: cfg}
}

// Current returns a snapshot of the active configuration.
func (s *Settings) Current() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// SetProvider switches the active provider, optionally selecting a model for
// it, and returns the resulting configuration.
func (s *Settings) SetProvider(provider, model string) (Config, error) {
	if provider != ProviderOpenAI && provider != ProviderOllama {
		return Config{}, &ValidationError{
			Field:  "provider",
			Reason: fmt.Sprintf("invalid provider %q, use %q or %q", provider, ProviderOpenAI, ProviderOllama),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.Provider = provider
	if model != "" {
		switch provider {
		case ProviderOpenAI:
			s.cfg.OpenAIModel = model
		case ProviderOllama:
			s.cfg.OllamaModel = model
		}
	}
	return s.cfg, nil
}

// Status describes the configuration plus provider availability, for the
// config endpoint.
type Status struct {
	Provider        string `json:"provider"`
	OpenAIModel     string `json:"openai_model"`
	OllamaBaseURL   string `json:"ollama_base_url"`
	OllamaModel     string `json:"ollama_model"`
	OpenAIAvailable bool   `json:"openai_available"`
	OllamaAvailable bool   `json:"ollama_available"`
}

// Status probes both providers and reports the current configuration.
func (s *Settings) Status() Status {
	cfg := s.Current()

	status := Status{
		Provider:        cfg.Provider,
		OpenAIModel:     cfg.OpenAIModel,
		OllamaBaseURL:   cfg.OllamaBaseURL,
		OllamaModel:     cfg.OllamaModel,
		OpenAIAvailable: cfg.OpenAIKey != "",
	}
	if ollama, err := NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel); err == nil {
		status.OllamaAvailable = ollama.IsAvailable() == nil
	}
	return status
}
