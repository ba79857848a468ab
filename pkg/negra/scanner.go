package negra

import (
	"bufio"
	"io"
	"strings"
)

// Default sentence block markers of the export format.
const (
	DefaultBeginMarker = "#BOS"
	DefaultEndMarker   = "#EOS"
)

// Encoding selects how raw corpus bytes are decoded. Historical
// exports ship as Latin-1; newer conversions as UTF-8.
type Encoding int

const (
	UTF8 Encoding = iota
	Latin1
)

func (e Encoding) decode(b []byte) string {
	if e == Latin1 {
		var sb strings.Builder
		sb.Grow(len(b))
		for _, c := range b {
			sb.WriteRune(rune(c))
		}
		return sb.String()
	}
	return string(b)
}

// ScanOptions configure block scanning. The zero value means UTF-8
// input with the standard #BOS/#EOS markers.
type ScanOptions struct {
	BeginMarker string   // line prefix opening a sentence block
	EndMarker   string   // line prefix closing a sentence block
	Encoding    Encoding // byte decoding for annotation lines
}

func (o ScanOptions) withDefaults() ScanOptions {
	if o.BeginMarker == "" {
		o.BeginMarker = DefaultBeginMarker
	}
	if o.EndMarker == "" {
		o.EndMarker = DefaultEndMarker
	}
	return o
}

// BlockScanner splits a raw corpus stream into one Grid per sentence.
// Marker lines are delimiters, never content: the begin marker's own
// annotation line is consumed with the marker, and every line strictly
// between the markers becomes one whitespace-split Row. Blank lines
// inside a block and anything outside the markers (format headers,
// comments) are ignored. Blocks with no rows left produce no Grid.
//
// Usage follows bufio.Scanner: Scan until false, then check Err.
// A begin marker never followed by its end marker makes Err report a
// *MalformedStreamError; the partial trailing block is dropped rather
// than returned as a fabricated grid.
type BlockScanner struct {
	sc    *bufio.Scanner
	opts  ScanOptions
	grid  Grid
	line  int
	err   error
	done  bool
}

// NewBlockScanner wraps r for sentence-block scanning. The scanner is
// single-pass; restartable iteration lives one level up, where the
// source can be reopened.
func NewBlockScanner(r io.Reader, opts ScanOptions) *BlockScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &BlockScanner{sc: sc, opts: opts.withDefaults()}
}

// Scan advances to the next non-empty sentence block. It returns false
// at end of stream or on error.
func (s *BlockScanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}
	var rows Grid
	inBlock := false
	beginLine := 0
	for s.sc.Scan() {
		s.line++
		text := s.opts.Encoding.decode(s.sc.Bytes())
		if !inBlock {
			if strings.HasPrefix(text, s.opts.BeginMarker) {
				inBlock = true
				beginLine = s.line
				rows = nil
			}
			continue
		}
		if strings.HasPrefix(text, s.opts.EndMarker) {
			if len(rows) == 0 {
				// Empty sentence block: skip, keep seeking.
				inBlock = false
				continue
			}
			s.grid = rows
			return true
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			rows = append(rows, Row(fields))
		}
	}
	s.done = true
	if err := s.sc.Err(); err != nil {
		s.err = err
	} else if inBlock {
		s.err = &MalformedStreamError{Line: beginLine}
	}
	return false
}

// Grid returns the sentence block read by the last successful Scan.
func (s *BlockScanner) Grid() Grid {
	return s.grid
}

// Err returns the first error hit by the scanner, nil on clean EOF.
func (s *BlockScanner) Err() error {
	return s.err
}
