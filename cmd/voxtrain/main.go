package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/voxtrain/internal/cli"
	"codeberg.org/snonux/voxtrain/internal/corpus"
	"codeberg.org/snonux/voxtrain/internal/export"
	"codeberg.org/snonux/voxtrain/internal/folder"
	"codeberg.org/snonux/voxtrain/internal/sentence"
	"codeberg.org/snonux/voxtrain/internal/server"
	"codeberg.org/snonux/voxtrain/internal/synth"
	"codeberg.org/snonux/voxtrain/internal/voices"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := voices.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	if err := os.MkdirAll(filepath.Dir(flags.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	store, err := corpus.Open(flags.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	exporter := export.NewExporter(store, flags.OutputDir)

	// Handle --export flag
	if flags.Export {
		result, err := exporter.Export()
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d items to %s\n", result.ItemCount, result.ManifestPath)
		return nil
	}

	settings := sentence.NewSettings(sentence.Config{
		Provider:      flags.LLMProvider,
		OpenAIKey:     cli.GetOpenAIKey(),
		OpenAIModel:   flags.OpenAIModel,
		OllamaBaseURL: flags.OllamaURL,
		OllamaModel:   flags.OllamaModel,
	})

	ttsProvider, err := synth.NewProvider(synth.Config{
		Provider:        "google",
		CredentialsFile: flags.CredentialsFile,
	})
	if err != nil {
		return err
	}

	params := synth.Params{
		Voice:        flags.Voice,
		SpeakingRate: flags.SpeakingRate,
		Pitch:        flags.Pitch,
		VolumeGainDB: flags.VolumeGainDB,
	}.Normalize()
	if err := params.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Store:       store,
		Generator:   sentence.NewGenerator(store, settings, sentence.WithLanguage(flags.Language)),
		Synthesizer: synth.NewSynthesizer(store, ttsProvider, flags.OutputDir),
		Folders:     folder.NewManager(store, flags.OutputDir),
		Exporter:    exporter,
		Settings:    settings,
		Params:      params,
	})

	httpServer := &http.Server{
		Addr:              flags.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("[INFO] voxtrain listening on %s (audio: %s, db: %s)",
		flags.Listen, flags.OutputDir, flags.DBPath)
	return httpServer.ListenAndServe()
}
