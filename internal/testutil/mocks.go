package testutil

import (
	"context"
	"fmt"

	"codeberg.org/snonux/voxtrain/internal/synth"
)

// MockLLMProvider mocks a sentence generation provider. Responses are keyed
// by call order, the last one repeating; Err fails every call.
type MockLLMProvider struct {
	Responses []string
	Err       error
	Calls     []string
}

// Complete returns the scripted response for this call.
func (m *MockLLMProvider) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	call := len(m.Calls)
	m.Calls = append(m.Calls, fmt.Sprintf("Complete(temp=%.1f)", temperature))

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "[]", nil
	}
	if call >= len(m.Responses) {
		call = len(m.Responses) - 1
	}
	return m.Responses[call], nil
}

// Name returns the provider name.
func (m *MockLLMProvider) Name() string { return "mock-llm" }

// IsAvailable always reports the mock as ready.
func (m *MockLLMProvider) IsAvailable() error { return nil }

// MockTTSProvider mocks a text-to-speech provider. Errors is keyed by the
// input text; everything else synthesizes Audio.
type MockTTSProvider struct {
	Audio  []byte
	Errors map[string]error
	Calls  []string
}

// Synthesize returns the scripted audio or error for the text.
func (m *MockTTSProvider) Synthesize(ctx context.Context, text string, params synth.Params) ([]byte, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("Synthesize: %s (voice=%s)", text, params.Voice))

	if err, ok := m.Errors[text]; ok {
		return nil, err
	}
	if m.Audio != nil {
		return m.Audio, nil
	}

	// Default: one second of silence at the requested rate.
	return make([]byte, int(params.SampleRate)*2), nil
}

// Name returns the provider name.
func (m *MockTTSProvider) Name() string { return "mock-tts" }

// IsAvailable always reports the mock as ready.
func (m *MockTTSProvider) IsAvailable() error { return nil }
