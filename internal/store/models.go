// Package store persists decoded treebank sentences in SQLite, giving
// the CLI word search, tag statistics and profile-based similarity
// queries over an indexed corpus.
package store

// Sentence is one indexed corpus sentence.
type Sentence struct {
	ID         int64  `json:"id"` // assigned by the store
	FileID     string `json:"fileId"`
	SentNo     int    `json:"sentNo"` // 1-based ordinal within the file
	Text       string `json:"text"`   // space-joined terminal words
	TokenCount int    `json:"tokenCount"`
	Tree       string `json:"tree"` // bracketed constituent tree, "" when malformed
}

// Token is one terminal with its annotations.
type Token struct {
	SentenceID int64  `json:"sentenceId"`
	Pos        int    `json:"pos"` // 0-based position within the sentence
	Word       string `json:"word"`
	Lemma      string `json:"lemma,omitempty"`
	Tag        string `json:"tag,omitempty"`
	Morph      string `json:"morph,omitempty"`
}

// Occurrence locates one word hit inside the indexed corpus.
type Occurrence struct {
	SentenceID int64  `json:"sentenceId"`
	FileID     string `json:"fileId"`
	SentNo     int    `json:"sentNo"`
	Pos        int    `json:"pos"`
	Word       string `json:"word"`
	Tag        string `json:"tag"`
	Text       string `json:"text"` // the containing sentence
}

// SentenceDistance pairs a sentence with its profile distance.
type SentenceDistance struct {
	SentenceID int64   `json:"sentenceId"`
	Distance   float64 `json:"distance"`
}

// Indexer defines the interface for treebank persistence.
// This allows swapping between MemStore (testing) and SQLiteStore
// (production).
type Indexer interface {
	// Sentences
	InsertSentence(sent *Sentence, tokens []Token, profile []float32) (int64, error)
	GetSentence(id int64) (*Sentence, error)
	TokensForSentence(id int64) ([]Token, error)
	SentenceCount() (int, error)
	TokenCount() (int, error)

	// Queries
	FindWord(word string, limit int) ([]Occurrence, error)
	TagCounts() (map[string]int, error)
	SimilarSentences(profile []float32, k int) ([]SentenceDistance, error)

	// Lifecycle
	Close() error
}
