package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/voxtrain/internal/corpus"
)

func newTestExporter(t *testing.T) (*Exporter, *corpus.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := corpus.Open(filepath.Join(dir, "corpus.db"))
	if err != nil {
		t.Fatalf("corpus.Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	outputDir := filepath.Join(dir, "audio")
	return NewExporter(store, outputDir), store, outputDir
}

func markGenerated(t *testing.T, store *corpus.Store, outputDir, word, sentence, file string) {
	t.Helper()
	item := &corpus.Item{Word: word, Sentence: sentence}
	if err := store.Put(item); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(outputDir, word, file)
	if err := store.SetGenerated(item.ID, path, "tr-TR-Wavenet-D", 1.0); err != nil {
		t.Fatal(err)
	}
}

func TestExportOnlyGeneratedItems(t *testing.T) {
	exporter, store, outputDir := newTestExporter(t)

	markGenerated(t, store, outputDir, "ev", "Ev çok güzel.", "a.wav")
	markGenerated(t, store, outputDir, "su", "Su soğuk.", "b.wav")
	markGenerated(t, store, outputDir, "ev", "Evin kapısı açık.", "c.wav")

	// Pending and failed items stay out of the manifest.
	pending := &corpus.Item{Word: "kedi", Sentence: "Kedi uyuyor."}
	if err := store.Put(pending); err != nil {
		t.Fatal(err)
	}
	failed := &corpus.Item{Word: "kuş", Sentence: "Kuş uçtu."}
	if err := store.Put(failed); err != nil {
		t.Fatal(err)
	}
	if err := store.SetFailed(failed.ID, "vendor error"); err != nil {
		t.Fatal(err)
	}

	result, err := exporter.Export()
	if err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	if result.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", result.ItemCount)
	}

	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}

	want := strings.Join([]string{
		filepath.Join("ev", "a.wav") + "|Ev çok güzel.",
		filepath.Join("su", "b.wav") + "|Su soğuk.",
		filepath.Join("ev", "c.wav") + "|Evin kapısı açık.",
	}, "\n") + "\n"
	if string(data) != want {
		t.Errorf("manifest =\n%s\nwant:\n%s", data, want)
	}
}

func TestExportIsDeterministic(t *testing.T) {
	exporter, store, outputDir := newTestExporter(t)

	markGenerated(t, store, outputDir, "ev", "Ev çok güzel.", "a.wav")
	markGenerated(t, store, outputDir, "su", "Su soğuk.", "b.wav")

	var first, second bytes.Buffer
	if _, err := exporter.WriteManifest(&first); err != nil {
		t.Fatal(err)
	}
	if _, err := exporter.WriteManifest(&second); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("repeated exports of an unchanged corpus differ")
	}
}

func TestExportEmptyCorpus(t *testing.T) {
	exporter, _, _ := newTestExporter(t)

	result, err := exporter.Export()
	if err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	if result.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", result.ItemCount)
	}

	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("empty corpus produced %d bytes of manifest", len(data))
	}
}
