// Package export writes the training manifest: one pipe-delimited line per
// generated corpus item, mapping its audio file to its sentence.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/snonux/voxtrain/internal/corpus"
)

// ManifestName is the fixed manifest filename inside the output directory.
const ManifestName = "metadata.csv"

// Exporter serializes generated items into a manifest file.
type Exporter struct {
	store     *corpus.Store
	outputDir string
}

// NewExporter creates an exporter for the store and audio output directory.
func NewExporter(store *corpus.Store, outputDir string) *Exporter {
	return &Exporter{store: store, outputDir: outputDir}
}

// ManifestPath returns the fixed manifest location inside the output
// directory.
func (e *Exporter) ManifestPath() string {
	return filepath.Join(e.outputDir, ManifestName)
}

// Result reports a completed export.
type Result struct {
	ItemCount    int    `json:"item_count"`
	ManifestPath string `json:"manifest_path"`
}

// Export writes the manifest to its fixed location inside the output
// directory, replacing any previous manifest. Only generated items are
// included, ordered by id ascending, so repeated exports of an unchanged
// corpus produce identical files.
func (e *Exporter) Export() (*Result, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := e.ManifestPath()
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()

	count, err := e.WriteManifest(f)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize manifest: %w", err)
	}

	return &Result{ItemCount: count, ManifestPath: path}, nil
}

// WriteManifest writes manifest lines to w and returns how many items were
// written. Lines have the form <audio path>|<sentence>, with audio paths
// relative to the output directory when possible.
func (e *Exporter) WriteManifest(w io.Writer) (int, error) {
	items, err := e.store.List(corpus.Filter{Status: corpus.StatusGenerated})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range items {
		if item.AudioPath == "" {
			continue
		}
		path := item.AudioPath
		if rel, err := filepath.Rel(e.outputDir, path); err == nil {
			path = rel
		}
		if _, err := fmt.Fprintf(w, "%s|%s\n", path, item.Sentence); err != nil {
			return count, fmt.Errorf("failed to write manifest line: %w", err)
		}
		count++
	}
	return count, nil
}
