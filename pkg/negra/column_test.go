package negra

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSchema_Validation(t *testing.T) {
	if _, err := NewSchema(); err == nil {
		t.Error("empty schema should fail")
	}
	if _, err := NewSchema(ColumnWord, ColumnWord); err == nil {
		t.Error("duplicate column should fail")
	}
	if _, err := NewSchema(ColumnWord, ColumnKind(42)); err == nil {
		t.Error("invalid kind should fail")
	}
}

func TestSchema_Resolve(t *testing.T) {
	s, err := NewSchema(ColumnWord, ColumnPOS, ColumnParent)
	if err != nil {
		t.Fatal(err)
	}

	idx, err := s.Resolve(ColumnParent)
	if err != nil {
		t.Fatal(err)
	}
	if idx != 2 {
		t.Errorf("parent index: expected 2, got %d", idx)
	}

	if _, err := s.Resolve(ColumnLemma); !errors.Is(err, ErrUnsupportedColumn) {
		t.Errorf("undeclared column: expected ErrUnsupportedColumn, got %v", err)
	}
}

func TestSchema_Extract(t *testing.T) {
	s := DefaultSchema()
	g := gridOf(
		"The the DET -- -- 500 -- --",
		"house house N -- -- 500 -- --",
		"#500 -- NP -- -- 0 -- --",
	)

	leaves, err := s.Extract(g, ColumnWord, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"The", "house"}; !reflect.DeepEqual(leaves, want) {
		t.Errorf("leaves only: expected %v, got %v", want, leaves)
	}

	all, err := s.Extract(g, ColumnWord, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"The", "house", "#500"}; !reflect.DeepEqual(all, want) {
		t.Errorf("all rows: expected %v, got %v", want, all)
	}

	tags, err := s.Extract(g, ColumnPOS, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"DET", "N", "NP"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("pos column: expected %v, got %v", want, tags)
	}
}

func TestSchema_ExtractRaggedRow(t *testing.T) {
	s, err := NewSchema(ColumnWord, ColumnLemma, ColumnParent)
	if err != nil {
		t.Fatal(err)
	}
	// Second row lost everything past the word.
	g := gridOf(
		"The the 500",
		"house",
	)

	lemmas, err := s.Extract(g, ColumnLemma, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"the"}; !reflect.DeepEqual(lemmas, want) {
		t.Errorf("expected ragged row dropped, got %v", lemmas)
	}
}

func TestParseColumnKind(t *testing.T) {
	for k := ColumnWord; k < numColumnKinds; k++ {
		got, err := ParseColumnKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("round trip %s: got %s", k, got)
		}
	}
	if _, err := ParseColumnKind("chunk"); err == nil {
		t.Error("unknown column name should fail")
	}
}

func TestPairColumns(t *testing.T) {
	s, err := NewSchema(ColumnWord, ColumnLemma, ColumnPOS, ColumnParent)
	if err != nil {
		t.Fatal(err)
	}
	g := gridOf(
		"The the DET 500",
		"house house N 500",
		"#500 -- NP 0",
	)

	pairs, err := PairColumns(g, s, ColumnLemma)
	if err != nil {
		t.Fatal(err)
	}
	want := []Pair{{Word: "The", Value: "the"}, {Word: "house", Value: "house"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("expected %v, got %v", want, pairs)
	}
}

func TestPairColumns_LengthMismatch(t *testing.T) {
	s, err := NewSchema(ColumnWord, ColumnLemma, ColumnPOS, ColumnParent)
	if err != nil {
		t.Fatal(err)
	}
	// The bare word row has no lemma column left.
	g := gridOf(
		"The the DET 500",
		"house",
		"is be V 501",
	)

	_, err = PairColumns(g, s, ColumnLemma)
	var mismatch *LengthMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected *LengthMismatchError, got %v", err)
	}
	if mismatch.Words != 3 || mismatch.Values != 2 {
		t.Errorf("expected 3 words against 2 values, got %d/%d", mismatch.Words, mismatch.Values)
	}
	if mismatch.Kind != ColumnLemma {
		t.Errorf("expected lemma kind, got %s", mismatch.Kind)
	}
}

func TestPairColumns_UndeclaredKind(t *testing.T) {
	s, err := NewSchema(ColumnWord, ColumnPOS, ColumnParent)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := PairColumns(gridOf("a X 0"), s, ColumnMorph); !errors.Is(err, ErrUnsupportedColumn) {
		t.Errorf("expected ErrUnsupportedColumn, got %v", err)
	}
}
