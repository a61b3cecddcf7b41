package corpus

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when an item id does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicate is returned when inserting a sentence that already exists
	// for the same word (case-insensitive).
	ErrDuplicate = errors.New("duplicate sentence for word")
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	sentence TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	audio_path TEXT NOT NULL DEFAULT '',
	voice TEXT NOT NULL DEFAULT '',
	duration_seconds REAL NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_items_word_sentence
	ON items (LOWER(word), LOWER(sentence));
CREATE INDEX IF NOT EXISTS idx_items_status ON items (status);
`

// Store is the SQLite-backed corpus of training items. It is the single
// source of truth for deduplication, folder grouping and export. All methods
// are safe for concurrent use; writes are serialized by an internal lock.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the corpus database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize corpus schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put inserts a new item. The sentence is normalized before storage, the
// status defaults to pending and ID/CreatedAt are filled in on success.
// Inserting a sentence that already exists for the word returns ErrDuplicate.
func (s *Store) Put(item *Item) error {
	item.Sentence = NormalizeSentence(item.Sentence)
	if item.Status == "" {
		item.Status = StatusPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		INSERT INTO items (word, sentence, status, audio_path, voice, duration_seconds, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Word, item.Sentence, string(item.Status), item.AudioPath,
		item.Voice, item.DurationSeconds, item.Error, item.CreatedAt.Unix())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	item.ID = id
	return nil
}

// Get returns the item with the given id, or ErrNotFound.
func (s *Store) Get(id int64) (*Item, error) {
	row := s.db.QueryRow(`
		SELECT id, word, sentence, status, audio_path, voice, duration_seconds, error, created_at
		FROM items WHERE id = ?`, id)
	return scanItem(row)
}

// Filter narrows List results. Zero values mean "no constraint". Word
// matching is case-insensitive so folder names can be used directly.
type Filter struct {
	Word   string
	Status Status
	Limit  int
	Offset int
}

// List returns items matching the filter, ordered by id ascending.
func (s *Store) List(f Filter) ([]*Item, error) {
	query := `
		SELECT id, word, sentence, status, audio_path, voice, duration_seconds, error, created_at
		FROM items WHERE 1=1`
	var args []any

	if f.Word != "" {
		query += " AND LOWER(word) = LOWER(?)"
		args = append(args, f.Word)
	}
	if f.Status != "" {
		query += " AND status = ?"
		args = append(args, string(f.Status))
	}
	query += " ORDER BY id ASC"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Exists reports whether a sentence is already stored for the word,
// regardless of status. Comparison is case-insensitive and the sentence is
// normalized the same way Put normalizes it.
func (s *Store) Exists(word, sentence string) (bool, error) {
	sentence = NormalizeSentence(sentence)
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM items
		WHERE LOWER(word) = LOWER(?) AND LOWER(sentence) = LOWER(?)`,
		word, sentence).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check existing sentence: %w", err)
	}
	return n > 0, nil
}

// FindBySentence returns the stored item for a word+sentence pair, or
// ErrNotFound. Used by the synthesizer to attach audio to pending items and
// to skip sentences that already have audio.
func (s *Store) FindBySentence(word, sentence string) (*Item, error) {
	sentence = NormalizeSentence(sentence)
	row := s.db.QueryRow(`
		SELECT id, word, sentence, status, audio_path, voice, duration_seconds, error, created_at
		FROM items
		WHERE LOWER(word) = LOWER(?) AND LOWER(sentence) = LOWER(?)
		LIMIT 1`, word, sentence)
	return scanItem(row)
}

// UpdateSentence replaces an item's sentence text. The new text goes through
// the same normalization as Put, and the dedup invariant still holds: a text
// that already exists for the item's word returns ErrDuplicate. Returns the
// updated item.
func (s *Store) UpdateSentence(id int64, sentenceText string) (*Item, error) {
	sentenceText = NormalizeSentence(sentenceText)

	s.mu.Lock()
	res, err := s.db.Exec(`UPDATE items SET sentence = ? WHERE id = ?`, sentenceText, id)
	s.mu.Unlock()
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}

// SetGenerated transitions an item to generated and records its artifact.
func (s *Store) SetGenerated(id int64, audioPath, voice string, durationSeconds float64) error {
	return s.update(id, `
		UPDATE items
		SET status = ?, audio_path = ?, voice = ?, duration_seconds = ?, error = ''
		WHERE id = ?`,
		string(StatusGenerated), audioPath, voice, durationSeconds, id)
}

// SetFailed transitions an item to failed and records the error message.
func (s *Store) SetFailed(id int64, message string) error {
	return s.update(id, `UPDATE items SET status = ?, error = ? WHERE id = ?`,
		string(StatusFailed), message, id)
}

func (s *Store) update(id int64, query string, args ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the item and its audio artifact. Returns ErrNotFound for
// unknown ids; a missing artifact file is not an error.
func (s *Store) Delete(id int64) error {
	item, err := s.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, err = s.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}

	removeArtifact(item)
	return nil
}

// BulkResult reports the outcome of a best-effort bulk operation.
type BulkResult struct {
	Deleted int        `json:"deleted"`
	Failed  int        `json:"failed"`
	Results []IDResult `json:"results"`
}

// IDResult is the per-id outcome within a BulkResult.
type IDResult struct {
	ID    int64  `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BulkDelete deletes each id independently. A failure for one id never
// aborts the others; the result lists every outcome.
func (s *Store) BulkDelete(ids []int64) *BulkResult {
	result := &BulkResult{}
	for _, id := range ids {
		if err := s.Delete(id); err != nil {
			result.Failed++
			result.Results = append(result.Results, IDResult{ID: id, Error: err.Error()})
			continue
		}
		result.Deleted++
		result.Results = append(result.Results, IDResult{ID: id, OK: true})
	}
	return result
}

// DeleteByWord removes every item for the word (case-insensitive) along with
// its artifacts. Returns the number of deleted records; zero is not an error.
func (s *Store) DeleteByWord(word string) (int, error) {
	items, err := s.List(Filter{Word: word})
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	res, err := s.db.Exec(`DELETE FROM items WHERE LOWER(word) = LOWER(?)`, word)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to delete items for word %q: %w", word, err)
	}

	for _, item := range items {
		removeArtifact(item)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted items: %w", err)
	}
	return int(n), nil
}

// WordCount is the derived folder view: one word and how many generated
// items it has.
type WordCount struct {
	Word  string
	Count int
}

// GeneratedWordCounts groups generated items by lowercased word, ordered by
// word. This is the query behind the folder listing; folders are never
// stored separately.
func (s *Store) GeneratedWordCounts() ([]WordCount, error) {
	rows, err := s.db.Query(`
		SELECT LOWER(word), COUNT(*)
		FROM items
		WHERE status = ?
		GROUP BY LOWER(word)
		ORDER BY LOWER(word) ASC`, string(StatusGenerated))
	if err != nil {
		return nil, fmt.Errorf("failed to group items by word: %w", err)
	}
	defer rows.Close()

	var counts []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan word count: %w", err)
		}
		counts = append(counts, wc)
	}
	return counts, rows.Err()
}

// Stats summarizes the corpus.
type Stats struct {
	Total                int     `json:"total"`
	Pending              int     `json:"pending"`
	Generated            int     `json:"generated"`
	Failed               int     `json:"failed"`
	UniqueWords          int     `json:"unique_words"`
	TotalDurationSeconds float64 `json:"total_duration_seconds"`
}

// Stats returns item counts by status, the number of distinct words and the
// summed duration of all generated audio.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM items GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats.Total += count
		switch Status(status) {
		case StatusPending:
			stats.Pending = count
		case StatusGenerated:
			stats.Generated = count
		case StatusFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRow(`SELECT COUNT(DISTINCT LOWER(word)) FROM items`).Scan(&stats.UniqueWords)
	if err != nil {
		return nil, fmt.Errorf("failed to count unique words: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(duration_seconds), 0) FROM items WHERE status = ?`,
		string(StatusGenerated)).Scan(&stats.TotalDurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to sum durations: %w", err)
	}

	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var status string
	var createdAt int64

	err := row.Scan(&item.ID, &item.Word, &item.Sentence, &status,
		&item.AudioPath, &item.Voice, &item.DurationSeconds, &item.Error, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	item.Status = Status(status)
	item.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &item, nil
}

func removeArtifact(item *Item) {
	if item.AudioPath == "" {
		return
	}
	if err := os.Remove(item.AudioPath); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not delete audio file %s: %v\n", item.AudioPath, err)
	}
}
