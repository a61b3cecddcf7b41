package sentence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaProvider implements Provider against a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *ollama.Client
}

// NewOllamaProvider creates a provider talking to the Ollama server at
// baseURL (e.g. http://localhost:11434).
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama base URL %q: %w", baseURL, err)
	}

	return &OllamaProvider{
		baseURL: baseURL,
		model:   model,
		client:  ollama.NewClient(u, http.DefaultClient),
	}, nil
}

// Complete runs a non-streaming generate call and returns the full response.
func (p *OllamaProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	stream := false
	req := &ollama.GenerateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": temperature,
		},
	}

	var sb strings.Builder
	err := p.client.Generate(ctx, req, func(resp ollama.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("Ollama error: %w", err)
	}

	return sb.String(), nil
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return ProviderOllama
}

// IsAvailable checks if the Ollama server is running.
func (p *OllamaProvider) IsAvailable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("Ollama server not running, start it with 'ollama serve': %w", err)
	}
	return nil
}

// ListModels returns the names of models available on the Ollama server.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	resp, err := p.client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list Ollama models: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
