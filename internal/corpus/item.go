package corpus

import (
	"strings"
	"time"
)

// Status describes where an item is in its audio lifecycle.
type Status string

const (
	// StatusPending means the sentence exists but no audio has been generated yet.
	StatusPending Status = "pending"
	// StatusGenerated means audio was synthesized and written to disk.
	StatusGenerated Status = "generated"
	// StatusFailed means the last synthesis attempt for this sentence failed.
	StatusFailed Status = "failed"
)

// Item is one training sentence together with its audio lifecycle record.
type Item struct {
	ID              int64     `json:"id"`
	Word            string    `json:"word"`
	Sentence        string    `json:"sentence"`
	Status          Status    `json:"status"`
	AudioPath       string    `json:"audio_path,omitempty"`
	Voice           string    `json:"voice,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NormalizeSentence prepares sentence text for storage: surrounding
// whitespace is trimmed and the manifest delimiter '|' is substituted with
// the broken bar '¦' so exported metadata lines can never be ambiguous.
func NormalizeSentence(s string) string {
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, "|", "¦")
}
