package synth

import (
	"context"
	"fmt"
	"os"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// GoogleProvider synthesizes speech through the Google Cloud Text-to-Speech
// API. The client is built lazily on first use so the process can start
// without credentials; only synthesis requests require them.
type GoogleProvider struct {
	config Config

	mu     sync.Mutex
	client *texttospeech.Client
}

// NewGoogleProvider creates a Google Cloud TTS provider.
func NewGoogleProvider(config Config) *GoogleProvider {
	return &GoogleProvider{config: config}
}

func (p *GoogleProvider) getClient(ctx context.Context) (*texttospeech.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	var opts []option.ClientOption
	if p.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(p.config.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}
	p.client = client
	return client, nil
}

// Synthesize renders the text as uncompressed LINEAR16 PCM at the requested
// sample rate.
func (p *GoogleProvider) Synthesize(ctx context.Context, text string, params Params) ([]byte, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: params.LanguageCode(),
			Name:         params.Voice,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding:   texttospeechpb.AudioEncoding_LINEAR16,
			SpeakingRate:    params.SpeakingRate,
			Pitch:           params.Pitch,
			VolumeGainDb:    params.VolumeGainDB,
			SampleRateHertz: params.SampleRate,
		},
	}

	resp, err := client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("speech synthesis returned no audio")
	}

	return resp.AudioContent, nil
}

// Name returns the provider name.
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks that credentials are reachable. A configured key file
// must exist; otherwise ambient credentials are assumed and verified on the
// first synthesis call.
func (p *GoogleProvider) IsAvailable() error {
	if p.config.CredentialsFile != "" {
		if _, err := os.Stat(p.config.CredentialsFile); err != nil {
			return fmt.Errorf("credentials file not accessible: %w", err)
		}
		return nil
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		return fmt.Errorf("no Google Cloud credentials configured")
	}
	return nil
}

// Close releases the underlying client.
func (p *GoogleProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
