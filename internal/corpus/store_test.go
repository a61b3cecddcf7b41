package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndGet(t *testing.T) {
	store := newTestStore(t)

	item := &Item{Word: "luz", Sentence: "  La luz entra por la ventana.  "}
	if err := store.Put(item); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	if item.ID == 0 {
		t.Error("Put() did not assign an id")
	}

	got, err := store.Get(item.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Sentence != "La luz entra por la ventana." {
		t.Errorf("Get() sentence = %q, want trimmed sentence", got.Sentence)
	}
	if got.Status != StatusPending {
		t.Errorf("Get() status = %q, want %q", got.Status, StatusPending)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Get() created_at is zero")
	}
}

func TestGetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestPutDuplicateCaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(&Item{Word: "luz", Sentence: "Enciende la luz."}); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	err := store.Put(&Item{Word: "Luz", Sentence: "ENCIENDE LA LUZ."})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("Put() duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(&Item{Word: "luz", Sentence: "Enciende la luz."}); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		word     string
		sentence string
		want     bool
	}{
		{"exact match", "luz", "Enciende la luz.", true},
		{"case-insensitive match", "LUZ", "enciende la luz.", true},
		{"untrimmed match", "luz", "  Enciende la luz.  ", true},
		{"different sentence", "luz", "Apaga la luz.", false},
		{"different word", "sol", "Enciende la luz.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Exists(tt.word, tt.sentence)
			if err != nil {
				t.Fatalf("Exists() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Exists(%q, %q) = %v, want %v", tt.word, tt.sentence, got, tt.want)
			}
		})
	}
}

func TestNormalizeSentence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"a|b", "a¦b"},
		{" tube | pipe ", "tube ¦ pipe"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := NormalizeSentence(tt.in); got != tt.want {
			t.Errorf("NormalizeSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	store := newTestStore(t)

	item := &Item{Word: "luz", Sentence: "Enciende la luz."}
	if err := store.Put(item); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	if err := store.SetGenerated(item.ID, "/tmp/luz/1.wav", "tr-TR-Wavenet-D", 2.5); err != nil {
		t.Fatalf("SetGenerated() unexpected error: %v", err)
	}

	got, err := store.Get(item.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Status != StatusGenerated {
		t.Errorf("status = %q, want %q", got.Status, StatusGenerated)
	}
	if got.AudioPath != "/tmp/luz/1.wav" || got.DurationSeconds != 2.5 {
		t.Errorf("artifact fields = (%q, %v), want (/tmp/luz/1.wav, 2.5)", got.AudioPath, got.DurationSeconds)
	}

	if err := store.SetFailed(item.ID, "vendor timeout"); err != nil {
		t.Fatalf("SetFailed() unexpected error: %v", err)
	}
	got, _ = store.Get(item.ID)
	if got.Status != StatusFailed || got.Error != "vendor timeout" {
		t.Errorf("after SetFailed: status=%q error=%q", got.Status, got.Error)
	}

	if err := store.SetGenerated(999, "x.wav", "v", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetGenerated(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateSentence(t *testing.T) {
	store := newTestStore(t)

	item := &Item{Word: "luz", Sentence: "Enciende la luz."}
	if err := store.Put(item); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	got, err := store.UpdateSentence(item.ID, "  La luz | brilla.  ")
	if err != nil {
		t.Fatalf("UpdateSentence() unexpected error: %v", err)
	}
	if got.Sentence != "La luz ¦ brilla." {
		t.Errorf("UpdateSentence() sentence = %q, want normalized text", got.Sentence)
	}
	if got.ID != item.ID {
		t.Errorf("UpdateSentence() id = %d, want %d", got.ID, item.ID)
	}

	// The new text must still honor the per-word dedup invariant.
	other := &Item{Word: "luz", Sentence: "Apaga la luz."}
	if err := store.Put(other); err != nil {
		t.Fatal(err)
	}
	if _, err := store.UpdateSentence(other.ID, "LA LUZ ¦ BRILLA."); !errors.Is(err, ErrDuplicate) {
		t.Errorf("UpdateSentence() duplicate error = %v, want ErrDuplicate", err)
	}

	if _, err := store.UpdateSentence(999, "Algo nuevo."); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateSentence(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesArtifact(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()

	audioPath := filepath.Join(dir, "sentence.wav")
	if err := os.WriteFile(audioPath, []byte("fake audio"), 0644); err != nil {
		t.Fatal(err)
	}

	item := &Item{Word: "luz", Sentence: "Enciende la luz."}
	if err := store.Put(item); err != nil {
		t.Fatal(err)
	}
	if err := store.SetGenerated(item.ID, audioPath, "voice", 1.0); err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(item.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	if _, err := store.Get(item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Errorf("audio artifact still exists after delete")
	}
}

func TestBulkDeleteBestEffort(t *testing.T) {
	store := newTestStore(t)

	first := &Item{Word: "luz", Sentence: "Primera frase con luz."}
	second := &Item{Word: "luz", Sentence: "Segunda frase con luz."}
	for _, item := range []*Item{first, second} {
		if err := store.Put(item); err != nil {
			t.Fatal(err)
		}
	}

	result := store.BulkDelete([]int64{first.ID, 9999, second.ID})

	if result.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", result.Deleted)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
	if len(result.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(result.Results))
	}
	if result.Results[1].OK {
		t.Error("unknown id reported as deleted")
	}
	if result.Results[0].OK != true || result.Results[2].OK != true {
		t.Error("valid ids not reported as deleted")
	}
}

func TestDeleteByWordCascades(t *testing.T) {
	store := newTestStore(t)
	dir := t.TempDir()

	paths := []string{
		filepath.Join(dir, "a.wav"),
		filepath.Join(dir, "b.wav"),
	}
	sentences := []string{"El demo empieza ahora.", "Mira este demo conmigo."}
	for i, sentence := range sentences {
		if err := os.WriteFile(paths[i], []byte("audio"), 0644); err != nil {
			t.Fatal(err)
		}
		item := &Item{Word: "demo", Sentence: sentence}
		if err := store.Put(item); err != nil {
			t.Fatal(err)
		}
		if err := store.SetGenerated(item.ID, paths[i], "voice", 1.0); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Put(&Item{Word: "otro", Sentence: "Otra palabra distinta."}); err != nil {
		t.Fatal(err)
	}

	n, err := store.DeleteByWord("DEMO")
	if err != nil {
		t.Fatalf("DeleteByWord() unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByWord() = %d, want 2", n)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("artifact %s still exists after cascade delete", p)
		}
	}

	remaining, err := store.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].Word != "otro" {
		t.Errorf("unexpected remaining items: %+v", remaining)
	}

	// Deleting an absent word is idempotent, not an error.
	n, err = store.DeleteByWord("demo")
	if err != nil || n != 0 {
		t.Errorf("DeleteByWord(absent) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestGeneratedWordCounts(t *testing.T) {
	store := newTestStore(t)

	seed := []struct {
		word     string
		sentence string
		status   Status
	}{
		{"zebra", "La zebra corre.", StatusGenerated},
		{"Avion", "El avion vuela alto.", StatusGenerated},
		{"avion", "Veo un avion pequeno.", StatusGenerated},
		{"avion", "Este avion fallo.", StatusFailed},
		{"nube", "Una nube blanca.", StatusPending},
	}
	for _, s := range seed {
		item := &Item{Word: s.word, Sentence: s.sentence}
		if err := store.Put(item); err != nil {
			t.Fatal(err)
		}
		switch s.status {
		case StatusGenerated:
			if err := store.SetGenerated(item.ID, "", "voice", 1.0); err != nil {
				t.Fatal(err)
			}
		case StatusFailed:
			if err := store.SetFailed(item.ID, "boom"); err != nil {
				t.Fatal(err)
			}
		}
	}

	counts, err := store.GeneratedWordCounts()
	if err != nil {
		t.Fatalf("GeneratedWordCounts() unexpected error: %v", err)
	}

	want := []WordCount{{"avion", 2}, {"zebra", 1}}
	if len(counts) != len(want) {
		t.Fatalf("got %d groups, want %d: %+v", len(counts), len(want), counts)
	}
	for i, wc := range want {
		if counts[i] != wc {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], wc)
		}
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)

	gen := &Item{Word: "luz", Sentence: "Enciende la luz."}
	if err := store.Put(gen); err != nil {
		t.Fatal(err)
	}
	if err := store.SetGenerated(gen.ID, "", "voice", 2.5); err != nil {
		t.Fatal(err)
	}

	gen2 := &Item{Word: "sol", Sentence: "El sol brilla."}
	if err := store.Put(gen2); err != nil {
		t.Fatal(err)
	}
	if err := store.SetGenerated(gen2.ID, "", "voice", 1.5); err != nil {
		t.Fatal(err)
	}

	failed := &Item{Word: "luz", Sentence: "Apaga la luz."}
	if err := store.Put(failed); err != nil {
		t.Fatal(err)
	}
	if err := store.SetFailed(failed.ID, "boom"); err != nil {
		t.Fatal(err)
	}

	if err := store.Put(&Item{Word: "mar", Sentence: "El mar es azul."}); err != nil {
		t.Fatal(err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() unexpected error: %v", err)
	}

	if stats.Total != 4 || stats.Generated != 2 || stats.Failed != 1 || stats.Pending != 1 {
		t.Errorf("Stats counts = %+v", stats)
	}
	if stats.UniqueWords != 3 {
		t.Errorf("UniqueWords = %d, want 3", stats.UniqueWords)
	}
	if stats.TotalDurationSeconds != 4.0 {
		t.Errorf("TotalDurationSeconds = %v, want 4.0", stats.TotalDurationSeconds)
	}
}
