package voices

import "testing"

func TestDefaultVoiceIsKnown(t *testing.T) {
	if !IsKnown(DefaultVoice) {
		t.Errorf("default voice %q not in catalog", DefaultVoice)
	}
}

func TestIsKnown(t *testing.T) {
	if IsKnown("en-US-Wavenet-A") {
		t.Error("foreign voice reported as known")
	}
	if !IsKnown("tr-TR-Standard-B") {
		t.Error("catalog voice reported as unknown")
	}
}

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}
	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}
	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestChatModelsNoAPIKey(t *testing.T) {
	lister := NewLister("")

	if _, err := lister.ChatModels(t.Context()); err == nil {
		t.Error("Expected error for missing API key")
	}
}
