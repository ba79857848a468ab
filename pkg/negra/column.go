package negra

import (
	"errors"
	"fmt"
	"strings"
)

// ColumnKind identifies one annotation column of the export format.
type ColumnKind int

const (
	ColumnWord ColumnKind = iota
	ColumnLemma
	ColumnPOS
	ColumnMorph
	ColumnEdge
	ColumnParent
	ColumnSecEdge
	ColumnComment

	numColumnKinds
)

var columnNames = [numColumnKinds]string{
	"word", "lemma", "pos", "morph", "edge", "parent", "secedge", "comment",
}

func (k ColumnKind) String() string {
	if k >= 0 && k < numColumnKinds {
		return columnNames[k]
	}
	return "unknown"
}

// ParseColumnKind parses a column name as used in column specs.
func ParseColumnKind(s string) (ColumnKind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range columnNames {
		if n == name {
			return ColumnKind(k), nil
		}
	}
	return 0, fmt.Errorf("negra: unknown column %q", s)
}

// Schema maps column kinds to their position within a row. It is
// built once from the caller's declared column order and never
// mutated afterwards.
type Schema struct {
	index [numColumnKinds]int // -1 = column absent from this corpus
	kinds []ColumnKind
}

// NewSchema builds a schema from the declared column order. Declaring
// an invalid or duplicate kind is a configuration error and fails
// here, not lazily.
func NewSchema(kinds ...ColumnKind) (*Schema, error) {
	if len(kinds) == 0 {
		return nil, errors.New("negra: schema declares no columns")
	}
	s := &Schema{kinds: kinds}
	for i := range s.index {
		s.index[i] = -1
	}
	for pos, k := range kinds {
		if k < 0 || k >= numColumnKinds {
			return nil, fmt.Errorf("negra: invalid column kind %d", int(k))
		}
		if s.index[k] != -1 {
			return nil, fmt.Errorf("negra: duplicate column %s", k)
		}
		s.index[k] = pos
	}
	return s, nil
}

// DefaultSchema returns the full eight-column export order: word,
// lemma, pos, morph, edge, parent, secedge, comment.
func DefaultSchema() *Schema {
	s, err := NewSchema(ColumnWord, ColumnLemma, ColumnPOS, ColumnMorph,
		ColumnEdge, ColumnParent, ColumnSecEdge, ColumnComment)
	if err != nil {
		panic(err) // static column list
	}
	return s
}

// Columns returns the declared column order.
func (s *Schema) Columns() []ColumnKind {
	out := make([]ColumnKind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Resolve returns the positional index of kind within a row.
func (s *Schema) Resolve(kind ColumnKind) (int, error) {
	if kind < 0 || kind >= numColumnKinds || s.index[kind] < 0 {
		return 0, fmt.Errorf("negra: %s: %w", kind, ErrUnsupportedColumn)
	}
	return s.index[kind], nil
}

// Extract returns the kind column of every row in file order. With
// leavesOnly set, internal-node rows (word field starting with '#')
// are dropped, restricting the result to terminal tokens. Rows too
// short to contain the resolved column contribute nothing, which is
// what makes the paired views' length check meaningful.
func (s *Schema) Extract(g Grid, kind ColumnKind, leavesOnly bool) ([]string, error) {
	idx, err := s.Resolve(kind)
	if err != nil {
		return nil, err
	}
	wordIdx := -1
	if leavesOnly {
		wordIdx, err = s.Resolve(ColumnWord)
		if err != nil {
			return nil, err
		}
	}
	out := make([]string, 0, len(g))
	for _, row := range g {
		if leavesOnly && strings.HasPrefix(row.Field(wordIdx), "#") {
			continue
		}
		if idx >= len(row) {
			continue
		}
		out = append(out, row[idx])
	}
	return out, nil
}
