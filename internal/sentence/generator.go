package sentence

import (
	"context"
	"errors"
	"strings"
	"time"

	"codeberg.org/snonux/voxtrain/internal/corpus"
)

// extraRounds is how many additional vendor calls one generation request may
// make when deduplication leaves the yield below the requested count. The
// cap keeps vendor cost bounded; a request may legitimately return fewer
// sentences than asked for.
const extraRounds = 2

const (
	defaultTimeout     = 2 * time.Minute
	batchTemperature   = 0.8
	rewriteTemperature = 0.9
)

// Generator produces unique candidate sentences for a target word and
// persists accepted candidates as pending corpus items.
type Generator struct {
	store       *corpus.Store
	settings    *Settings
	language    string
	timeout     time.Duration
	newProvider func(Config) (Provider, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithLanguage sets the language register for generated sentences.
func WithLanguage(language string) Option {
	return func(g *Generator) { g.language = language }
}

// WithTimeout bounds each language-model call.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Generator) { g.timeout = timeout }
}

// WithProviderFactory overrides how providers are built from configuration.
func WithProviderFactory(factory func(Config) (Provider, error)) Option {
	return func(g *Generator) { g.newProvider = factory }
}

// NewGenerator creates a sentence generator backed by the corpus store and
// the process-wide LLM settings.
func NewGenerator(store *corpus.Store, settings *Settings, opts ...Option) *Generator {
	g := &Generator{
		store:       store,
		settings:    settings,
		language:    DefaultLanguage,
		timeout:     defaultTimeout,
		newProvider: NewProvider,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request describes one generation request.
type Request struct {
	Word    string
	Count   int
	Context string
}

// Result is the outcome of a generation request. Items are the accepted
// sentences, persisted as pending, in acceptance order. Fewer than the
// requested count is a valid outcome.
type Result struct {
	Word      string         `json:"word"`
	Provider  string         `json:"provider"`
	Sentences []string       `json:"sentences"`
	Items     []*corpus.Item `json:"items"`
}

// Generate asks the active language model for unique sentences containing
// the word. Candidates are trimmed, required to contain the word
// (case-insensitive), deduplicated within the batch and against the corpus,
// and persisted as pending items. When duplicates reduce the yield the
// request retries at most extraRounds times before settling for fewer
// sentences.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil, &ValidationError{Field: "word", Reason: "must not be empty"}
	}
	if req.Count <= 0 {
		return nil, &ValidationError{Field: "count", Reason: "must be a positive integer"}
	}

	cfg := g.settings.Current()
	provider, err := g.newProvider(cfg)
	if err != nil {
		return nil, &CapabilityError{Provider: cfg.Provider, Err: err}
	}

	result := &Result{Word: word, Provider: provider.Name()}
	seen := make(map[string]bool)
	var lastErr error

	for round := 0; round <= extraRounds && len(result.Sentences) < req.Count; round++ {
		prompt := BuildPrompt(word, req.Count-len(result.Sentences), req.Context, g.language, result.Sentences)

		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		raw, err := provider.Complete(callCtx, prompt, batchTemperature)
		cancel()
		if err != nil {
			// A hard vendor failure is never auto-retried.
			lastErr = err
			break
		}

		candidates, err := ParseSentenceArray(raw)
		if err != nil {
			// Malformed output counts as a zero-yield round.
			lastErr = err
			continue
		}

		for _, candidate := range candidates {
			text := corpus.NormalizeSentence(candidate)
			if text == "" || !containsFold(text, word) {
				continue
			}
			if seen[strings.ToLower(text)] {
				continue
			}

			exists, err := g.store.Exists(word, text)
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}

			item := &corpus.Item{Word: word, Sentence: text}
			if err := g.store.Put(item); err != nil {
				if errors.Is(err, corpus.ErrDuplicate) {
					continue
				}
				return nil, err
			}

			seen[strings.ToLower(text)] = true
			result.Sentences = append(result.Sentences, text)
			result.Items = append(result.Items, item)
			if len(result.Sentences) >= req.Count {
				break
			}
		}
	}

	if len(result.Sentences) == 0 && lastErr != nil {
		return nil, &CapabilityError{Provider: provider.Name(), Err: lastErr}
	}

	return result, nil
}

// RegenerateOne produces a single new sentence for the word that differs
// from the given existing sentences. The sentence is returned as a preview
// and not persisted.
func (g *Generator) RegenerateOne(ctx context.Context, word string, existing []string) (string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return "", &ValidationError{Field: "word", Reason: "must not be empty"}
	}

	cfg := g.settings.Current()
	provider, err := g.newProvider(cfg)
	if err != nil {
		return "", &CapabilityError{Provider: cfg.Provider, Err: err}
	}

	prompt := BuildSinglePrompt(word, g.language, existing)

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := provider.Complete(callCtx, prompt, rewriteTemperature)
	if err != nil {
		return "", &CapabilityError{Provider: provider.Name(), Err: err}
	}

	text := corpus.NormalizeSentence(strings.Trim(strings.TrimSpace(raw), `"'`))
	if text == "" {
		return "", &CapabilityError{Provider: provider.Name(), Err: errors.New("model returned an empty sentence")}
	}
	return text, nil
}

func containsFold(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(word))
}
