package voices

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing OpenAI models usable for sentence generation.
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister.
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ChatModels returns the chat-capable model IDs available with the API key,
// sorted alphabetically.
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .voxtrain.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chatModels []string
	for _, model := range models.Models {
		if strings.Contains(model.ID, "gpt") || strings.Contains(model.ID, "chat") {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)
	return chatModels, nil
}

// ListAvailableModels prints the voice catalog and the chat models available
// with the configured API key.
func (l *Lister) ListAvailableModels() error {
	fmt.Println("Available Turkish voices:")
	for _, v := range Turkish {
		fmt.Printf("  %-20s %-8s %s\n", v.Name, v.Gender, v.Type)
	}

	chatModels, err := l.ChatModels(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("\nChat Models (for sentence generation):")
	if len(chatModels) == 0 {
		fmt.Println("  No chat models found")
	} else {
		for _, model := range chatModels {
			fmt.Printf("  %s\n", model)
		}
	}

	return nil
}
