package similar

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
)

// vec builds a Dim-wide vector with the given leading values.
func vec(lead ...float32) []float32 {
	v := make([]float32, Dim)
	copy(v, lead)
	return v
}

func TestStore_RoundTrip(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}

	// 1. Create and Record
	{
		s, err := NewStore(fs, "profiles.bin")
		if err != nil {
			t.Fatal(err)
		}

		if err := s.Add(1, vec(1)); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(2, vec(0, 1)); err != nil {
			t.Fatal(err)
		}
		if err := s.Add(3, vec(0.9, 0.1)); err != nil {
			t.Fatal(err)
		}

		if err := s.Save(); err != nil {
			t.Fatal(err)
		}
	}

	// 2. Load and Query
	{
		s2, err := NewStore(fs, "profiles.bin")
		if err != nil {
			t.Fatal(err)
		}

		if s2.Size() != 3 {
			t.Fatalf("expected 3 profiles after reload, got %d", s2.Size())
		}

		results, err := s2.Search(vec(1), 2)
		if err != nil {
			t.Fatal(err)
		}

		if len(results) < 2 {
			t.Fatalf("expected at least 2 results, got %d", len(results))
		}

		// Exact match first, then the nearly parallel profile.
		if results[0] != 1 {
			t.Errorf("expected top result 1, got %d", results[0])
		}
		if results[1] != 3 {
			t.Errorf("expected second result 3, got %d", results[1])
		}
	}
}

func TestStore_DimensionMismatch(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewStore(fs, "profiles.bin")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Add(1, []float32{1, 2, 3}); err == nil {
		t.Error("expected dimension mismatch error on Add")
	}
	if _, err := s.Search([]float32{1, 2, 3}, 1); err == nil {
		t.Error("expected dimension mismatch error on Search")
	}
}

func TestStore_FreshIndexIsEmpty(t *testing.T) {
	fs, err := mem.NewFS()
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(fs, "missing.bin")
	if err != nil {
		t.Fatal(err)
	}
	if s.Size() != 0 {
		t.Fatalf("expected empty index, got size %d", s.Size())
	}
}
