// Package folder exposes the corpus as word folders. Folders are a derived
// view over generated items grouped by lowercased word; nothing about them
// is stored separately, so they can never drift from the corpus.
package folder

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/voxtrain/internal/corpus"
)

// ErrEmptyArchive is returned when an archive request matches no audio files.
var ErrEmptyArchive = errors.New("no audio files to archive")

// Folder is one word group in the listing.
type Folder struct {
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}

// Manager answers folder queries and deletions against the corpus store and
// the audio output directory.
type Manager struct {
	store     *corpus.Store
	outputDir string
}

// NewManager creates a folder manager over the store and audio directory.
func NewManager(store *corpus.Store, outputDir string) *Manager {
	return &Manager{store: store, outputDir: outputDir}
}

// List returns every word folder with its generated file count, ordered by
// name.
func (m *Manager) List() ([]Folder, error) {
	counts, err := m.store.GeneratedWordCounts()
	if err != nil {
		return nil, err
	}

	folders := make([]Folder, 0, len(counts))
	for _, wc := range counts {
		folders = append(folders, Folder{Name: wc.Word, FileCount: wc.Count})
	}
	return folders, nil
}

// Delete removes the folder's items from the corpus and its directory from
// disk. Deleting a folder that does not exist is not an error.
func (m *Manager) Delete(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	deleted, err := m.store.DeleteByWord(name)
	if err != nil {
		return 0, err
	}

	dir := filepath.Join(m.outputDir, name)
	if err := os.RemoveAll(dir); err != nil {
		log.Printf("[WARN] failed to remove folder directory %s: %v", dir, err)
	}
	return deleted, nil
}

// BulkResult reports a bulk folder deletion.
type BulkResult struct {
	Deleted int          `json:"deleted"`
	Results []NameResult `json:"results"`
}

// NameResult is the outcome for one folder in a bulk deletion.
type NameResult struct {
	Name    string `json:"name"`
	Deleted int    `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// BulkDelete removes several folders, best effort. One failing folder does
// not stop the rest.
func (m *Manager) BulkDelete(names []string) *BulkResult {
	result := &BulkResult{}
	for _, name := range names {
		n, err := m.Delete(name)
		if err != nil {
			result.Results = append(result.Results, NameResult{Name: name, Error: err.Error()})
			continue
		}
		result.Deleted += n
		result.Results = append(result.Results, NameResult{Name: name, Deleted: n})
	}
	return result
}

// Archive writes a zip of the named folders to w. Each folder contributes
// its generated audio as sequentially numbered WAV files plus a metadata.csv
// mapping sentences to those filenames. Unknown names are skipped; if no
// audio matches the selection, ErrEmptyArchive is returned before anything
// is written to w, so HTTP handlers can still send an error response.
func (m *Manager) Archive(names []string, w io.Writer) error {
	type selection struct {
		name  string
		items []*corpus.Item
	}

	var selected []selection
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		items, err := m.store.List(corpus.Filter{Word: name, Status: corpus.StatusGenerated})
		if err != nil {
			return err
		}

		var withAudio []*corpus.Item
		for _, item := range items {
			if item.AudioPath != "" {
				withAudio = append(withAudio, item)
			}
		}
		if len(withAudio) == 0 {
			continue
		}
		selected = append(selected, selection{name: name, items: withAudio})
	}
	if len(selected) == 0 {
		return ErrEmptyArchive
	}

	zw := zip.NewWriter(w)
	for _, sel := range selected {
		var manifest strings.Builder
		for i, item := range sel.items {
			filename := fmt.Sprintf("%d.wav", i+1)
			if err := addFile(zw, sel.name+"/"+filename, item.AudioPath); err != nil {
				zw.Close()
				return err
			}
			fmt.Fprintf(&manifest, "%s|%s\n", item.Sentence, filename)
		}

		meta, err := zw.Create(sel.name + "/metadata.csv")
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add metadata.csv: %w", err)
		}
		if _, err := io.WriteString(meta, manifest.String()); err != nil {
			zw.Close()
			return fmt.Errorf("failed to write metadata.csv: %w", err)
		}
	}

	return zw.Close()
}

// ArchiveOne writes a zip of a single folder.
func (m *Manager) ArchiveOne(name string, w io.Writer) error {
	return m.Archive([]string{name}, w)
}

func addFile(zw *zip.Writer, entryName, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	entry, err := zw.Create(entryName)
	if err != nil {
		return fmt.Errorf("failed to add archive entry: %w", err)
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("failed to copy audio into archive: %w", err)
	}
	return nil
}
