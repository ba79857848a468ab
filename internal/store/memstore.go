// Package store persists decoded treebank sentences.
// This file contains the in-memory implementation used in tests.
package store

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// MemStore is an in-memory Indexer used in tests and small one-shot
// runs. Query behavior matches SQLiteStore, including L2 profile
// distance.
type MemStore struct {
	mu        sync.RWMutex
	nextID    int64
	sentences map[int64]*Sentence
	tokens    map[int64][]Token
	profiles  map[int64][]float32
}

var _ Indexer = (*MemStore)(nil)

// NewMemStore creates an empty in-memory index.
func NewMemStore() *MemStore {
	return &MemStore{
		nextID:    1,
		sentences: make(map[int64]*Sentence),
		tokens:    make(map[int64][]Token),
		profiles:  make(map[int64][]float32),
	}
}

// Close is a no-op for the in-memory index.
func (m *MemStore) Close() error { return nil }

func (m *MemStore) InsertSentence(sent *Sentence, tokens []Token, profile []float32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile != nil && len(profile) != ProfileDim {
		return 0, fmt.Errorf("profile dimension mismatch: expected %d, got %d", ProfileDim, len(profile))
	}

	id := m.nextID
	m.nextID++
	sent.ID = id

	cp := *sent
	m.sentences[id] = &cp

	toks := make([]Token, len(tokens))
	copy(toks, tokens)
	for i := range toks {
		toks[i].SentenceID = id
	}
	for i := range tokens {
		tokens[i].SentenceID = id
	}
	m.tokens[id] = toks

	if profile != nil {
		p := make([]float32, len(profile))
		copy(p, profile)
		m.profiles[id] = p
	}

	return id, nil
}

func (m *MemStore) GetSentence(id int64) (*Sentence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent, ok := m.sentences[id]
	if !ok {
		return nil, nil
	}
	cp := *sent
	return &cp, nil
}

func (m *MemStore) TokensForSentence(id int64) ([]Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	toks, ok := m.tokens[id]
	if !ok {
		return nil, nil
	}
	out := make([]Token, len(toks))
	copy(out, toks)
	return out, nil
}

func (m *MemStore) SentenceCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sentences), nil
}

func (m *MemStore) TokenCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, toks := range m.tokens {
		n += len(toks)
	}
	return n, nil
}

func (m *MemStore) FindWord(word string, limit int) ([]Occurrence, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	ids := make([]int64, 0, len(m.tokens))
	for id := range m.tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var occs []Occurrence
	for _, id := range ids {
		sent := m.sentences[id]
		for _, tok := range m.tokens[id] {
			if tok.Word != word {
				continue
			}
			occs = append(occs, Occurrence{
				SentenceID: id,
				FileID:     sent.FileID,
				SentNo:     sent.SentNo,
				Pos:        tok.Pos,
				Word:       tok.Word,
				Tag:        tok.Tag,
				Text:       sent.Text,
			})
			if len(occs) >= limit {
				return occs, nil
			}
		}
	}
	return occs, nil
}

func (m *MemStore) TagCounts() (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, toks := range m.tokens {
		for _, tok := range toks {
			counts[tok.Tag]++
		}
	}
	return counts, nil
}

func (m *MemStore) SimilarSentences(profile []float32, k int) ([]SentenceDistance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(profile) != ProfileDim {
		return nil, fmt.Errorf("profile dimension mismatch: expected %d, got %d", ProfileDim, len(profile))
	}
	if k <= 0 {
		return nil, nil
	}

	out := make([]SentenceDistance, 0, len(m.profiles))
	for id, p := range m.profiles {
		out = append(out, SentenceDistance{SentenceID: id, Distance: l2Distance(profile, p)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].SentenceID < out[j].SentenceID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
