package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"codeberg.org/snonux/voxtrain/internal"
	"codeberg.org/snonux/voxtrain/internal/corpus"
	"codeberg.org/snonux/voxtrain/internal/sentence"
	"codeberg.org/snonux/voxtrain/internal/synth"
	"codeberg.org/snonux/voxtrain/internal/voices"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": internal.Version,
	})
}

func (s *Server) handleGenerateSentences(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word    string `json:"word"`
		Count   int    `json:"count"`
		Context string `json:"context"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.generator.Generate(r.Context(), sentence.Request{
		Word:    req.Word,
		Count:   req.Count,
		Context: req.Context,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRegenerateSentence(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word     string   `json:"word"`
		Existing []string `json:"existing"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	text, err := s.generator.RegenerateOne(r.Context(), req.Word, req.Existing)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sentence": text})
}

func (s *Server) handleGenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pairs  []synth.Pair  `json:"pairs"`
		Params *synth.Params `json:"params"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if len(req.Pairs) == 0 {
		writeError(w, &synth.ValidationError{Field: "pairs", Reason: "must not be empty"})
		return
	}

	params := s.params
	if req.Params != nil {
		params = req.Params.Normalize()
	}

	report, err := s.synthesizer.Synthesize(r.Context(), req.Pairs, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := corpus.Filter{
		Word:   q.Get("word"),
		Status: corpus.Status(q.Get("status")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, &sentence.ValidationError{Field: "limit", Reason: "must be a non-negative integer"})
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, &sentence.ValidationError{Field: "offset", Reason: "must be a non-negative integer"})
			return
		}
		filter.Offset = n
	}

	items, err := s.store.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []*corpus.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, &sentence.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	item, err := s.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, &sentence.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	var req struct {
		Sentence string `json:"sentence"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if corpus.NormalizeSentence(req.Sentence) == "" {
		writeError(w, &sentence.ValidationError{Field: "sentence", Reason: "must not be empty"})
		return
	}

	item, err := s.store.UpdateSentence(id, req.Sentence)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, &sentence.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := s.store.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleBulkDeleteItems(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.store.BulkDelete(req.IDs))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"voices":  voices.Turkish,
		"default": voices.DefaultVoice,
	})
}

func (s *Server) handleLLMConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Status())
}

func (s *Server) handleSetLLMConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if _, err := s.settings.SetProvider(req.Provider, req.Model); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.settings.Status())
}

func (s *Server) handleLLMModels(w http.ResponseWriter, r *http.Request) {
	cfg := s.settings.Current()

	var names []string
	switch cfg.Provider {
	case sentence.ProviderOllama:
		provider, err := sentence.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel)
		if err != nil {
			writeError(w, err)
			return
		}
		names, err = provider.ListModels(r.Context())
		if err != nil {
			writeError(w, &sentence.CapabilityError{Provider: cfg.Provider, Err: err})
			return
		}
	default:
		var err error
		names, err = voices.NewLister(cfg.OpenAIKey).ChatModels(r.Context())
		if err != nil {
			writeError(w, &sentence.CapabilityError{Provider: cfg.Provider, Err: err})
			return
		}
	}

	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"provider": cfg.Provider, "models": names})
}

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folders.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": folders, "count": len(folders)})
}

func (s *Server) handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.folders.Delete(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func (s *Server) handleBulkDeleteFolders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.folders.BulkDelete(req.Names))
}

func (s *Server) handleDownloadFolder(w http.ResponseWriter, r *http.Request) {
	s.serveArchive(w, []string{r.PathValue("name")},
		fmt.Sprintf("%s.zip", strings.ToLower(r.PathValue("name"))))
}

func (s *Server) handleDownloadFolders(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names []string `json:"names"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s.serveArchive(w, req.Names,
		fmt.Sprintf("voxtrain_%s.zip", time.Now().Format("20060102_150405")))
}

func (s *Server) serveArchive(w http.ResponseWriter, names []string, filename string) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := s.folders.Archive(names, w); err != nil {
		// Headers may already be out; at least report the failure.
		w.Header().Del("Content-Disposition")
		writeError(w, err)
	}
}

func (s *Server) handlePlayAudio(w http.ResponseWriter, r *http.Request) {
	s.serveAudio(w, r, "inline")
}

func (s *Server) handleDownloadAudio(w http.ResponseWriter, r *http.Request) {
	s.serveAudio(w, r, "attachment")
}

func (s *Server) serveAudio(w http.ResponseWriter, r *http.Request, disposition string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, &sentence.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	item, err := s.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if item.AudioPath == "" {
		writeError(w, corpus.ErrNotFound)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("%s; filename=%q", disposition, filepath.Base(item.AudioPath)))
	http.ServeFile(w, r, item.AudioPath)
}

func (s *Server) handleDownloadManifest(w http.ResponseWriter, r *http.Request) {
	path := s.exporter.ManifestPath()
	if _, err := os.Stat(path); err != nil {
		writeError(w, fmt.Errorf("no manifest exported yet: %w", corpus.ErrNotFound))
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func (s *Server) handleDownloadAll(w http.ResponseWriter, r *http.Request) {
	folders, err := s.folders.List()
	if err != nil {
		writeError(w, err)
		return
	}

	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}

	s.serveArchive(w, names,
		fmt.Sprintf("voxtrain_%s.zip", time.Now().Format("20060102_150405")))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.exporter.Export()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
