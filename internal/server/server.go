// Package server exposes the corpus pipeline over HTTP. All handlers speak
// JSON except the audio and archive downloads.
package server

import (
	"net/http"

	"codeberg.org/snonux/voxtrain/internal/corpus"
	"codeberg.org/snonux/voxtrain/internal/export"
	"codeberg.org/snonux/voxtrain/internal/folder"
	"codeberg.org/snonux/voxtrain/internal/sentence"
	"codeberg.org/snonux/voxtrain/internal/synth"
)

// Server wires the pipeline components behind an HTTP API.
type Server struct {
	store       *corpus.Store
	generator   *sentence.Generator
	synthesizer *synth.Synthesizer
	folders     *folder.Manager
	exporter    *export.Exporter
	settings    *sentence.Settings
	params      synth.Params
}

// Config collects the components a Server serves.
type Config struct {
	Store       *corpus.Store
	Generator   *sentence.Generator
	Synthesizer *synth.Synthesizer
	Folders     *folder.Manager
	Exporter    *export.Exporter
	Settings    *sentence.Settings
	Params      synth.Params
}

// New creates a server over the given components. Params are the default
// synthesis parameters applied when a request leaves them unset.
func New(cfg Config) *Server {
	return &Server{
		store:       cfg.Store,
		generator:   cfg.Generator,
		synthesizer: cfg.Synthesizer,
		folders:     cfg.Folders,
		exporter:    cfg.Exporter,
		settings:    cfg.Settings,
		params:      cfg.Params.Normalize(),
	}
}

// Handler returns the API routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("POST /api/generate-sentences", s.handleGenerateSentences)
	mux.HandleFunc("POST /api/regenerate-sentence", s.handleRegenerateSentence)
	mux.HandleFunc("POST /api/generate-audio", s.handleGenerateAudio)

	mux.HandleFunc("GET /api/items", s.handleListItems)
	mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /api/items/bulk-delete", s.handleBulkDeleteItems)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	mux.HandleFunc("GET /api/voices", s.handleVoices)
	mux.HandleFunc("GET /api/llm/config", s.handleLLMConfig)
	mux.HandleFunc("POST /api/llm/config", s.handleSetLLMConfig)
	mux.HandleFunc("GET /api/llm/models", s.handleLLMModels)

	mux.HandleFunc("GET /api/folders", s.handleListFolders)
	mux.HandleFunc("DELETE /api/folders/{name}", s.handleDeleteFolder)
	mux.HandleFunc("POST /api/folders/bulk-delete", s.handleBulkDeleteFolders)
	mux.HandleFunc("GET /api/folders/{name}/download", s.handleDownloadFolder)
	mux.HandleFunc("POST /api/folders/download", s.handleDownloadFolders)

	mux.HandleFunc("GET /api/audio/{id}/play", s.handlePlayAudio)
	mux.HandleFunc("GET /api/audio/{id}/download", s.handleDownloadAudio)
	mux.HandleFunc("GET /api/audio/download-all", s.handleDownloadAll)

	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("GET /api/export/download", s.handleDownloadManifest)

	return logRequests(mux)
}
