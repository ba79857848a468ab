// Package negra reads corpora in the NEGRA export format: plain-text
// files whose sentences are #BOS/#EOS-delimited blocks of whitespace-
// separated annotation columns, with constituent structure encoded
// through integer parent pointers. The package splits the stream into
// per-sentence grids, projects paired word/lemma and word/morphology
// views, and reassembles each sentence's constituent tree.
//
// All corpus views are lazy and restartable: ranging a view opens the
// underlying files again and re-scans from the start, so one corpus
// can be iterated for vocabulary and again for trees without buffering
// either pass. Sentences are independent of each other; failures
// during decoding are local to the sentence that caused them.
package negra

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/hack-pad/hackpadfs"
)

// Reader exposes lazy views over one or more export files.
type Reader struct {
	open    func(fileid string) (io.ReadCloser, error)
	fileids []string
	schema  *Schema
	opts    ScanOptions
}

// NewReader reads the given fileids from fsys. The schema declares
// which columns the corpus carries, in order.
func NewReader(fsys hackpadfs.FS, fileids []string, schema *Schema, opts ScanOptions) *Reader {
	return &Reader{
		open: func(fileid string) (io.ReadCloser, error) {
			return fsys.Open(fileid)
		},
		fileids: fileids,
		schema:  schema,
		opts:    opts,
	}
}

// NewFileReader reads corpus files straight from disk paths.
func NewFileReader(paths []string, schema *Schema, opts ScanOptions) *Reader {
	return &Reader{
		open: func(fileid string) (io.ReadCloser, error) {
			return os.Open(fileid)
		},
		fileids: paths,
		schema:  schema,
		opts:    opts,
	}
}

// Schema returns the reader's column schema.
func (r *Reader) Schema() *Schema {
	return r.schema
}

// block is one grid located within the corpus.
type block struct {
	fileID string
	sent   int // 1-based ordinal within the file
	grid   Grid
}

// blocks scans all files in order. Stream-level failures (open errors,
// unterminated trailing blocks) are yielded as error elements; the
// iteration then moves to the next file.
func (r *Reader) blocks() iter.Seq2[block, error] {
	return func(yield func(block, error) bool) {
		for _, fileid := range r.fileids {
			if !r.scanFile(fileid, yield) {
				return
			}
		}
	}
}

func (r *Reader) scanFile(fileid string, yield func(block, error) bool) bool {
	f, err := r.open(fileid)
	if err != nil {
		return yield(block{fileID: fileid}, fmt.Errorf("negra: open %s: %w", fileid, err))
	}
	defer f.Close()
	sc := NewBlockScanner(f, r.opts)
	sent := 0
	for sc.Scan() {
		sent++
		if !yield(block{fileID: fileid, sent: sent, grid: sc.Grid()}, nil) {
			return false
		}
	}
	if err := sc.Err(); err != nil {
		var stream *MalformedStreamError
		if errors.As(err, &stream) {
			stream.FileID = fileid
		}
		return yield(block{fileID: fileid}, err)
	}
	return true
}

// isConfigErr separates setup mistakes, which end a sequence, from
// sentence-local data problems, which do not.
func isConfigErr(err error) bool {
	return errors.Is(err, ErrUnsupportedColumn)
}

// Grids returns the corpus sentence grids in file order.
func (r *Reader) Grids() iter.Seq2[Grid, error] {
	return func(yield func(Grid, error) bool) {
		for b, err := range r.blocks() {
			if !yield(b.grid, err) {
				return
			}
		}
	}
}

// Words returns every terminal word of the corpus, flattened.
func (r *Reader) Words() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if _, err := r.schema.Resolve(ColumnWord); err != nil {
			yield("", err)
			return
		}
		for b, err := range r.blocks() {
			if err != nil {
				if !yield("", err) {
					return
				}
				continue
			}
			words, err := r.schema.Extract(b.grid, ColumnWord, true)
			if err != nil {
				yield("", err)
				return
			}
			for _, w := range words {
				if !yield(w, nil) {
					return
				}
			}
		}
	}
}

// Sents returns the corpus sentences as word slices.
func (r *Reader) Sents() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		if _, err := r.schema.Resolve(ColumnWord); err != nil {
			yield(nil, err)
			return
		}
		for b, err := range r.blocks() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			words, err := r.schema.Extract(b.grid, ColumnWord, true)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(words, nil) {
				return
			}
		}
	}
}

// WordLemmas returns the corpus (word, lemma) pairs, flattened.
func (r *Reader) WordLemmas() iter.Seq2[Pair, error] {
	return r.flatPairs(ColumnLemma)
}

// WordLemmaSents returns per-sentence (word, lemma) pair slices.
func (r *Reader) WordLemmaSents() iter.Seq2[[]Pair, error] {
	return r.pairSents(ColumnLemma)
}

// WordMorphs returns the corpus (word, morphology) pairs, flattened.
func (r *Reader) WordMorphs() iter.Seq2[Pair, error] {
	return r.flatPairs(ColumnMorph)
}

// WordMorphSents returns per-sentence (word, morphology) pair slices.
func (r *Reader) WordMorphSents() iter.Seq2[[]Pair, error] {
	return r.pairSents(ColumnMorph)
}

// pairSents pairs the word column against kind, one slice per
// sentence. Configuration failures end the sequence on the first
// pull; a length mismatch fails only its own sentence and iteration
// continues.
func (r *Reader) pairSents(kind ColumnKind) iter.Seq2[[]Pair, error] {
	return func(yield func([]Pair, error) bool) {
		for _, k := range [2]ColumnKind{ColumnWord, kind} {
			if _, err := r.schema.Resolve(k); err != nil {
				yield(nil, err)
				return
			}
		}
		for b, err := range r.blocks() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			pairs, err := PairColumns(b.grid, r.schema, kind)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				if isConfigErr(err) {
					return
				}
				continue
			}
			if !yield(pairs, nil) {
				return
			}
		}
	}
}

func (r *Reader) flatPairs(kind ColumnKind) iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for pairs, err := range r.pairSents(kind) {
			if err != nil {
				if !yield(Pair{}, err) {
					return
				}
				continue
			}
			for _, p := range pairs {
				if !yield(p, nil) {
					return
				}
			}
		}
	}
}

// ParsedSents returns one constituent tree per sentence, in corpus
// order. A malformed sentence yields (nil, *MalformedSentenceError)
// and iteration continues with the next sentence; only configuration
// errors end the sequence.
func (r *Reader) ParsedSents() iter.Seq2[*Node, error] {
	return func(yield func(*Node, error) bool) {
		tb, err := NewTreeBuilder(r.schema)
		if err != nil {
			yield(nil, err)
			return
		}
		for b, err := range r.blocks() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			root, err := tb.Build(b.grid)
			if err != nil {
				var malformed *MalformedSentenceError
				if errors.As(err, &malformed) {
					malformed.FileID = b.fileID
					malformed.Sent = b.sent
				}
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !yield(root, nil) {
				return
			}
		}
	}
}

// TaggedSents returns per-sentence leaf (word, tag) pairs in tree
// order. Malformed sentences contribute no pairs; their errors pass
// through as error elements.
func (r *Reader) TaggedSents() iter.Seq2[[]Pair, error] {
	return func(yield func([]Pair, error) bool) {
		for root, err := range r.ParsedSents() {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				if isConfigErr(err) {
					return
				}
				continue
			}
			if !yield(root.TaggedWords(), nil) {
				return
			}
		}
	}
}

// TaggedWords returns the corpus leaf (word, tag) pairs, flattened
// across sentences in tree order.
func (r *Reader) TaggedWords() iter.Seq2[Pair, error] {
	return func(yield func(Pair, error) bool) {
		for pairs, err := range r.TaggedSents() {
			if err != nil {
				if !yield(Pair{}, err) {
					return
				}
				continue
			}
			for _, p := range pairs {
				if !yield(p, nil) {
					return
				}
			}
		}
	}
}
