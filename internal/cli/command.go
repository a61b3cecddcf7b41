package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/voxtrain/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voxtrain",
		Short: "TTS training corpus builder",
		Long: `voxtrain builds text-to-speech training corpora.

It generates candidate sentences for target words with an LLM, synthesizes
them through Google Cloud Text-to-Speech and exports a pipe-delimited
training manifest.

Examples:
  voxtrain                        # Start the HTTP server (default)
  voxtrain --export               # Write the training manifest and exit
  voxtrain --list-models          # List voices and available OpenAI models`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	home, _ := os.UserHomeDir()
	defaultStateDir := filepath.Join(home, ".local", "state", "voxtrain")

	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.voxtrain.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", filepath.Join(defaultStateDir, "audio"), "Audio output directory")
	cmd.Flags().StringVar(&flags.DBPath, "db", filepath.Join(defaultStateDir, "corpus.db"), "Corpus database path")
	cmd.Flags().StringVarP(&flags.Listen, "listen", "l", flags.Listen, "HTTP listen address")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Language the generated sentences are written in")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List voices and available OpenAI models for the current API key")
	cmd.Flags().BoolVar(&flags.Export, "export", false, "Write the training manifest and exit")

	// LLM flags
	cmd.Flags().StringVar(&flags.LLMProvider, "llm-provider", flags.LLMProvider, "Sentence generation provider: openai or ollama")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for sentence generation")
	cmd.Flags().StringVar(&flags.OllamaURL, "ollama-url", flags.OllamaURL, "Ollama server base URL")
	cmd.Flags().StringVar(&flags.OllamaModel, "ollama-model", flags.OllamaModel, "Ollama model for sentence generation")

	// TTS flags
	cmd.Flags().StringVar(&flags.Voice, "voice", flags.Voice, "Google Cloud TTS voice name")
	cmd.Flags().Float64Var(&flags.SpeakingRate, "speaking-rate", flags.SpeakingRate, "Speech rate (0.25 to 4.0)")
	cmd.Flags().Float64Var(&flags.Pitch, "pitch", flags.Pitch, "Voice pitch in semitones (-20.0 to 20.0)")
	cmd.Flags().Float64Var(&flags.VolumeGainDB, "volume-gain", flags.VolumeGainDB, "Volume gain in dB (-96.0 to 16.0)")
	cmd.Flags().StringVar(&flags.CredentialsFile, "credentials", "", "Google Cloud service account key file")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.database", cmd.Flags().Lookup("db"))
	viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))
	viper.BindPFlag("llm.provider", cmd.Flags().Lookup("llm-provider"))
	viper.BindPFlag("llm.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("llm.ollama_url", cmd.Flags().Lookup("ollama-url"))
	viper.BindPFlag("llm.ollama_model", cmd.Flags().Lookup("ollama-model"))
	viper.BindPFlag("tts.voice", cmd.Flags().Lookup("voice"))
	viper.BindPFlag("tts.speaking_rate", cmd.Flags().Lookup("speaking-rate"))
	viper.BindPFlag("tts.pitch", cmd.Flags().Lookup("pitch"))
	viper.BindPFlag("tts.volume_gain", cmd.Flags().Lookup("volume-gain"))
	viper.BindPFlag("tts.credentials", cmd.Flags().Lookup("credentials"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".voxtrain" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".voxtrain")
	}

	// Environment variables
	viper.SetEnvPrefix("VOXTRAIN")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("llm.openai_key")
}
