package negra

// Pair couples a surface word with one other annotation value: its
// lemma, its morphology, or for tree leaves its tag.
type Pair struct {
	Word  string `json:"word"`
	Value string `json:"value"`
}

// PairColumns zips the word column against the kind column of one
// grid, terminal rows only. The two extractions are compared
// defensively: they can only diverge on corrupted rows, and a
// divergence fails this sentence alone with a *LengthMismatchError.
func PairColumns(g Grid, s *Schema, kind ColumnKind) ([]Pair, error) {
	words, err := s.Extract(g, ColumnWord, true)
	if err != nil {
		return nil, err
	}
	values, err := s.Extract(g, kind, true)
	if err != nil {
		return nil, err
	}
	if len(words) != len(values) {
		return nil, &LengthMismatchError{Kind: kind, Words: len(words), Values: len(values)}
	}
	pairs := make([]Pair, len(words))
	for i := range words {
		pairs[i] = Pair{Word: words[i], Value: values[i]}
	}
	return pairs, nil
}
