package similar

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	"github.com/hack-pad/hackpadfs"
	kvector "github.com/kshard/vector"
)

// Store holds the HNSW graph of sentence profiles and persists it as
// a gob blob on a hackpadfs filesystem. Keys are sentence ids.
type Store struct {
	Index *hnsw.HNSW[vector.VF32]
	FS    hackpadfs.FS
	Path  string
	mu    sync.RWMutex
}

// NewStore opens the profile index at path. A previously saved graph
// is loaded when one exists; otherwise the index starts empty.
func NewStore(fs hackpadfs.FS, path string) (*Store, error) {
	s := &Store{
		FS:   fs,
		Path: path,
	}

	if err := s.Load(); err != nil {
		// No usable file at path, start fresh.
		s.Index = hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine()))
	}

	return s, nil
}

// Add inserts one sentence profile keyed by sentence id.
func (s *Store) Add(id uint32, profile []float32) error {
	if s.Index == nil {
		return fmt.Errorf("index not initialized")
	}
	if len(profile) != Dim {
		return fmt.Errorf("profile dimension mismatch: expected %d, got %d", Dim, len(profile))
	}

	s.Index.Insert(vector.VF32{
		Key: id,
		Vec: profile,
	})
	return nil
}

// Search returns the ids of the k sentences whose profiles lie
// nearest the query under cosine distance.
func (s *Store) Search(profile []float32, k int) ([]uint32, error) {
	if s.Index == nil {
		return nil, fmt.Errorf("index not initialized")
	}
	if len(profile) != Dim {
		return nil, fmt.Errorf("profile dimension mismatch: expected %d, got %d", Dim, len(profile))
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}

	results := s.Index.Search(vector.VF32{Vec: profile}, k, ef)

	ids := make([]uint32, len(results))
	for i, r := range results {
		ids[i] = r.Key
	}
	return ids, nil
}

// Size reports the number of indexed profiles.
func (s *Store) Size() int {
	if s.Index == nil {
		return 0
	}
	return s.Index.Size()
}

// Save persists the graph to FS.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Index == nil {
		return nil
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s.Index.Nodes()); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	if err := hackpadfs.WriteFullFile(s.FS, s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	return nil
}

// Load reads the graph back from FS.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := hackpadfs.ReadFile(s.FS, s.Path)
	if err != nil {
		return err
	}

	var nodes hnsw.Nodes[vector.VF32]
	dec := gob.NewDecoder(bytes.NewReader(content))
	if err := dec.Decode(&nodes); err != nil {
		return fmt.Errorf("failed to decode index: %w", err)
	}

	s.Index = hnsw.FromNodes[vector.VF32](
		vector.SurfaceVF32(kvector.Cosine()),
		nodes,
	)

	return nil
}
