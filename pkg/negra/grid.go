package negra

// Row is one annotation line of a sentence block, split on whitespace.
type Row []string

// Field returns the column at idx, or "" when the row has fewer
// columns. Hand-edited exports occasionally carry ragged lines.
func (r Row) Field(idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return r[idx]
}

// Grid holds one sentence's rows in file order: leaf-token rows first,
// then internal-node rows (word field starting with '#') as a
// contiguous suffix.
type Grid []Row
