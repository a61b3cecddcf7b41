package synth

import "strings"

// Default synthesis settings. The corpus targets Turkish speech at the
// sample rate the training pipeline expects.
const (
	DefaultVoice      = "tr-TR-Wavenet-D"
	DefaultSampleRate = 22050
)

// Params are the synthesis parameters applied to every item of a batch.
type Params struct {
	Voice        string  `json:"voice"`
	SpeakingRate float64 `json:"speaking_rate"`
	Pitch        float64 `json:"pitch"`
	VolumeGainDB float64 `json:"volume_gain_db"`
	SampleRate   int32   `json:"sample_rate"`
}

// DefaultParams returns the parameters used when a request leaves them unset.
func DefaultParams() Params {
	return Params{
		Voice:        DefaultVoice,
		SpeakingRate: 1.0,
		Pitch:        0,
		VolumeGainDB: 0,
		SampleRate:   DefaultSampleRate,
	}
}

// Normalize fills zero-valued fields with defaults.
func (p Params) Normalize() Params {
	if p.Voice == "" {
		p.Voice = DefaultVoice
	}
	if p.SpeakingRate == 0 {
		p.SpeakingRate = 1.0
	}
	if p.SampleRate == 0 {
		p.SampleRate = DefaultSampleRate
	}
	return p
}

// Validate checks the parameters against the vendor's accepted ranges.
// A batch with invalid parameters is rejected before any vendor call.
func (p Params) Validate() error {
	if p.SpeakingRate < 0.25 || p.SpeakingRate > 4.0 {
		return &ValidationError{Field: "speaking_rate", Reason: "must be between 0.25 and 4.0"}
	}
	if p.Pitch < -20.0 || p.Pitch > 20.0 {
		return &ValidationError{Field: "pitch", Reason: "must be between -20.0 and 20.0"}
	}
	if p.VolumeGainDB < -96.0 || p.VolumeGainDB > 16.0 {
		return &ValidationError{Field: "volume_gain_db", Reason: "must be between -96.0 and 16.0"}
	}
	if p.SampleRate <= 0 {
		return &ValidationError{Field: "sample_rate", Reason: "must be positive"}
	}
	return nil
}

// LanguageCode derives the BCP-47 language code from the voice name,
// e.g. "tr-TR-Wavenet-D" -> "tr-TR".
func (p Params) LanguageCode() string {
	parts := strings.Split(p.Voice, "-")
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "tr-TR"
}
