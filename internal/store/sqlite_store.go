// Package store persists decoded treebank sentences in SQLite.
// Uses ncruces/go-sqlite3/driver which provides a database/sql
// interface; the sqlite-vec bindings register the vec0 virtual table
// used for sentence-profile KNN.
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// ProfileDim is the fixed dimensionality of sentence tag profiles.
// The vec0 table is declared with it, so every stored profile must
// match.
const ProfileDim = 64

// SQLiteStore is the SQLite-backed treebank index.
// Thread-safe for concurrent indexing workers.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

var _ Indexer = (*SQLiteStore)(nil)

// schema defines the index tables: sentences, their tokens, and a
// vec0 virtual table holding one tag profile per sentence rowid.
const schema = `
CREATE TABLE IF NOT EXISTS sentences (
    id INTEGER PRIMARY KEY,
    file_id TEXT NOT NULL,
    sent_no INTEGER NOT NULL,
    text TEXT NOT NULL,
    token_count INTEGER NOT NULL,
    tree TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_sentences_file ON sentences(file_id, sent_no);

CREATE TABLE IF NOT EXISTS tokens (
    sentence_id INTEGER NOT NULL,
    pos INTEGER NOT NULL,
    word TEXT NOT NULL,
    lemma TEXT NOT NULL DEFAULT '',
    tag TEXT NOT NULL DEFAULT '',
    morph TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (sentence_id, pos)
);

CREATE INDEX IF NOT EXISTS idx_tokens_word ON tokens(word);
CREATE INDEX IF NOT EXISTS idx_tokens_tag ON tokens(tag);

CREATE VIRTUAL TABLE IF NOT EXISTS sent_vecs USING vec0(profile float[64]);
`

// NewSQLiteStore creates a new in-memory SQLite index.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates an index with a specific data source
// name. Use ":memory:" for in-memory or a file path for persistent
// storage.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// The pool must reuse one connection: with ":memory:" every new
	// connection would get its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Sentences
// =============================================================================

// InsertSentence stores one sentence with its tokens and, when
// non-nil, its tag profile. It assigns and returns the sentence id.
func (s *SQLiteStore) InsertSentence(sent *Sentence, tokens []Token, profile []float32) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile != nil && len(profile) != ProfileDim {
		return 0, fmt.Errorf("profile dimension mismatch: expected %d, got %d", ProfileDim, len(profile))
	}

	res, err := s.db.Exec(`
		INSERT INTO sentences (file_id, sent_no, text, token_count, tree)
		VALUES (?, ?, ?, ?, ?)
	`, sent.FileID, sent.SentNo, sent.Text, sent.TokenCount, sent.Tree)
	if err != nil {
		return 0, fmt.Errorf("insert sentence: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	sent.ID = id

	for i := range tokens {
		tokens[i].SentenceID = id
		tok := &tokens[i]
		if _, err := s.db.Exec(`
			INSERT INTO tokens (sentence_id, pos, word, lemma, tag, morph)
			VALUES (?, ?, ?, ?, ?, ?)
		`, tok.SentenceID, tok.Pos, tok.Word, tok.Lemma, tok.Tag, tok.Morph); err != nil {
			return 0, fmt.Errorf("insert token %d: %w", tok.Pos, err)
		}
	}

	if profile != nil {
		if _, err := s.db.Exec(`
			INSERT INTO sent_vecs (rowid, profile) VALUES (?, ?)
		`, id, vecBlob(profile)); err != nil {
			return 0, fmt.Errorf("insert profile: %w", err)
		}
	}

	return id, nil
}

// GetSentence retrieves one sentence by id, or (nil, nil) when absent.
func (s *SQLiteStore) GetSentence(id int64) (*Sentence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sent Sentence
	err := s.db.QueryRow(`
		SELECT id, file_id, sent_no, text, token_count, tree
		FROM sentences WHERE id = ?
	`, id).Scan(&sent.ID, &sent.FileID, &sent.SentNo, &sent.Text, &sent.TokenCount, &sent.Tree)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sent, nil
}

// TokensForSentence retrieves a sentence's tokens in position order.
func (s *SQLiteStore) TokensForSentence(id int64) ([]Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT sentence_id, pos, word, lemma, tag, morph
		FROM tokens WHERE sentence_id = ? ORDER BY pos
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []Token
	for rows.Next() {
		var tok Token
		if err := rows.Scan(&tok.SentenceID, &tok.Pos, &tok.Word, &tok.Lemma, &tok.Tag, &tok.Morph); err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, rows.Err()
}

// SentenceCount returns the number of indexed sentences.
func (s *SQLiteStore) SentenceCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sentences`).Scan(&count)
	return count, err
}

// TokenCount returns the number of indexed tokens.
func (s *SQLiteStore) TokenCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM tokens`).Scan(&count)
	return count, err
}

// =============================================================================
// Queries
// =============================================================================

// FindWord returns up to limit occurrences of an exact word form, in
// corpus order.
func (s *SQLiteStore) FindWord(word string, limit int) ([]Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT t.sentence_id, s.file_id, s.sent_no, t.pos, t.word, t.tag, s.text
		FROM tokens t
		JOIN sentences s ON s.id = t.sentence_id
		WHERE t.word = ?
		ORDER BY t.sentence_id, t.pos
		LIMIT ?
	`, word, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var occs []Occurrence
	for rows.Next() {
		var o Occurrence
		if err := rows.Scan(&o.SentenceID, &o.FileID, &o.SentNo, &o.Pos, &o.Word, &o.Tag, &o.Text); err != nil {
			return nil, err
		}
		occs = append(occs, o)
	}
	return occs, rows.Err()
}

// TagCounts returns the corpus frequency of every part-of-speech tag.
func (s *SQLiteStore) TagCounts() (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT tag, COUNT(*) FROM tokens GROUP BY tag`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tag string
		var n int
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, err
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}

// SimilarSentences runs a KNN query over the vec0 profile table and
// returns the k nearest sentences with their L2 distances.
func (s *SQLiteStore) SimilarSentences(profile []float32, k int) ([]SentenceDistance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(profile) != ProfileDim {
		return nil, fmt.Errorf("profile dimension mismatch: expected %d, got %d", ProfileDim, len(profile))
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := s.db.Query(`
		SELECT rowid, distance FROM sent_vecs
		WHERE profile MATCH ?
		ORDER BY distance
		LIMIT ?
	`, vecBlob(profile), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SentenceDistance
	for rows.Next() {
		var d SentenceDistance
		if err := rows.Scan(&d.SentenceID, &d.Distance); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// vecBlob packs a float32 vector in the little-endian layout vec0
// expects.
func vecBlob(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}
