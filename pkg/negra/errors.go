package negra

import (
	"errors"
	"fmt"
)

// ErrUnsupportedColumn reports a request for a column kind the schema
// never declared. This is a configuration error: it surfaces on the
// first use of the affected view and is never recovered per sentence.
var ErrUnsupportedColumn = errors.New("unsupported column")

// MalformedSentenceError marks a single sentence whose grid cannot be
// reassembled into a tree. Recovery is sentence-local: the sentence
// yields no tree and the rest of the corpus keeps decoding.
type MalformedSentenceError struct {
	FileID string // corpus file, when known
	Sent   int    // 1-based sentence ordinal within the file, when known
	Reason string
}

func (e *MalformedSentenceError) Error() string {
	if e.FileID == "" {
		return fmt.Sprintf("negra: malformed sentence: %s", e.Reason)
	}
	return fmt.Sprintf("negra: %s sentence %d: %s", e.FileID, e.Sent, e.Reason)
}

// LengthMismatchError reports paired columns of unequal length within
// one sentence. Well-formed grids cannot produce it, since both
// columns come from the same rows; ragged hand-edited lines can.
// Sentence-local, never corpus-fatal.
type LengthMismatchError struct {
	Kind   ColumnKind // the column paired against the word column
	Words  int
	Values int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("negra: %d words against %d %s values", e.Words, e.Values, e.Kind)
}

// MalformedStreamError reports a begin-of-sentence marker that is
// never followed by a matching end marker before the stream ends.
// The trailing partial block is dropped, never returned as a grid.
type MalformedStreamError struct {
	FileID string // corpus file, when known
	Line   int    // 1-based line number of the unmatched begin marker
}

func (e *MalformedStreamError) Error() string {
	if e.FileID == "" {
		return fmt.Sprintf("negra: unterminated sentence block at line %d", e.Line)
	}
	return fmt.Sprintf("negra: %s: unterminated sentence block at line %d", e.FileID, e.Line)
}
