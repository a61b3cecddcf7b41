package synth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/voxtrain/internal/corpus"
)

const defaultTimeout = time.Minute

// Synthesizer renders corpus sentences to WAV files. Vendor calls run behind
// a circuit breaker so a provider outage fails fast instead of hammering the
// API item by item.
type Synthesizer struct {
	store     *corpus.Store
	provider  Provider
	breaker   *gobreaker.CircuitBreaker
	outputDir string
	timeout   time.Duration
	now       func() time.Time
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithTimeout bounds each vendor call.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Synthesizer) { s.timeout = timeout }
}

// WithClock overrides the timestamp source for generated filenames.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// NewSynthesizer creates a synthesizer writing audio under outputDir.
func NewSynthesizer(store *corpus.Store, provider Provider, outputDir string, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		store:     store,
		provider:  provider,
		outputDir: outputDir,
		timeout:   defaultTimeout,
		now:       time.Now,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "tts",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pair is one sentence to synthesize, keyed by its target word.
type Pair struct {
	Word string `json:"word"`
	Text string `json:"text"`
}

// ItemResult is the per-sentence outcome of a batch.
type ItemResult struct {
	Text     string  `json:"text"`
	Word     string  `json:"word"`
	ID       int64   `json:"id,omitempty"`
	Path     string  `json:"path,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Success  bool    `json:"success"`
	Skipped  bool    `json:"skipped,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Report summarizes a batch. Every input pair has exactly one entry in
// Items, in input order.
type Report struct {
	Total     int          `json:"total"`
	Generated int          `json:"generated"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Items     []ItemResult `json:"items"`
}

// Synthesize renders each pair to a WAV file and records the outcome on the
// corpus item. One failing item never aborts the batch; it is marked failed
// and the batch moves on. Items whose sentence already has generated audio
// are skipped.
func (s *Synthesizer) Synthesize(ctx context.Context, pairs []Pair, params Params) (*Report, error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	report := &Report{Total: len(pairs)}

	for _, pair := range pairs {
		result := s.synthesizeOne(ctx, pair, params)
		report.Items = append(report.Items, result)
		switch {
		case result.Skipped:
			report.Skipped++
		case result.Success:
			report.Generated++
		default:
			report.Failed++
		}
	}

	return report, nil
}

func (s *Synthesizer) synthesizeOne(ctx context.Context, pair Pair, params Params) ItemResult {
	result := ItemResult{Word: pair.Word, Text: pair.Text}

	text := corpus.NormalizeSentence(pair.Text)
	word := strings.TrimSpace(pair.Word)
	if text == "" || word == "" {
		result.Error = "empty word or sentence"
		return result
	}
	result.Text = text

	// Insert the item, or reuse the stored one when the sentence already
	// exists. The unique index makes Put the race-free arbiter, so a lost
	// insert always resolves to the winning row's id.
	item := &corpus.Item{Word: word, Sentence: text}
	switch err := s.store.Put(item); {
	case err == nil:
	case errors.Is(err, corpus.ErrDuplicate):
		existing, ferr := s.store.FindBySentence(word, text)
		if ferr != nil {
			result.Error = ferr.Error()
			return result
		}
		if existing.Status == corpus.StatusGenerated && existing.AudioPath != "" {
			result.ID = existing.ID
			result.Path = existing.AudioPath
			result.Duration = existing.DurationSeconds
			result.Success = true
			result.Skipped = true
			return result
		}
		item = existing
	default:
		result.Error = err.Error()
		return result
	}
	result.ID = item.ID

	audio, err := s.render(ctx, text, params)
	if err != nil {
		result.Error = err.Error()
		s.markFailed(item.ID, err)
		return result
	}

	path, err := s.writeAudio(word, text, audio)
	if err != nil {
		result.Error = err.Error()
		s.markFailed(item.ID, err)
		return result
	}

	// LINEAR16 is 16-bit mono PCM: two bytes per sample.
	duration := float64(len(audio)) / (float64(params.SampleRate) * 2)

	if err := s.store.SetGenerated(item.ID, path, params.Voice, duration); err != nil {
		result.Error = err.Error()
		return result
	}

	result.Path = path
	result.Duration = duration
	result.Success = true
	return result
}

func (s *Synthesizer) render(ctx context.Context, text string, params Params) ([]byte, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.breaker.Execute(func() (any, error) {
		return s.provider.Synthesize(callCtx, text, params)
	})
	if err != nil {
		return nil, err
	}
	return audio.([]byte), nil
}

func (s *Synthesizer) writeAudio(word, text string, audio []byte) (string, error) {
	dir := filepath.Join(s.outputDir, strings.ToLower(word))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create word directory: %w", err)
	}

	path := filepath.Join(dir, trainFilename(text, s.now()))
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}
	return path, nil
}

func (s *Synthesizer) markFailed(id int64, cause error) {
	if err := s.store.SetFailed(id, cause.Error()); err != nil {
		log.Printf("[WARN] failed to record synthesis failure for item %d: %v", id, err)
	}
}
