package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputDir  string
	DBPath     string
	Listen     string
	Language   string
	ListModels bool
	Export     bool

	// LLM flags
	LLMProvider string
	OpenAIModel string
	OllamaURL   string
	OllamaModel string

	// TTS flags
	Voice           string
	SpeakingRate    float64
	Pitch           float64
	VolumeGainDB    float64
	CredentialsFile string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Listen:       ":8080",
		Language:     "Turkish",
		LLMProvider:  "openai",
		OpenAIModel:  "gpt-4.1",
		OllamaURL:    "http://localhost:11434",
		OllamaModel:  "llama3.1:8b",
		Voice:        "tr-TR-Wavenet-D",
		SpeakingRate: 1.0,
	}
}
