// Package concord runs multi-word concordance queries over corpus
// sentences. Query forms are compiled into one Aho-Corasick automaton
// and every sentence is scanned in a single pass.
package concord

import (
	"fmt"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Hit is one automaton match inside a sentence.
type Hit struct {
	Start   int    // Byte offset start
	End     int    // Byte offset end
	Text    string // Original text slice
	Pattern int    // Index into the query forms
}

// Line is one keyword-in-context concordance line.
type Line struct {
	FileID string `json:"file_id"`
	SentNo int    `json:"sent_no"`
	Left   string `json:"left"`
	Hit    string `json:"hit"`
	Right  string `json:"right"`
	Word   string `json:"word"` // the query form that matched
}

// Searcher scans sentence text for a fixed set of word forms.
type Searcher struct {
	ac       ahocorasick.AhoCorasick
	patterns []string
}

// New compiles the query forms into an automaton. Matching is
// case-insensitive for ASCII and restricted to whole words.
func New(words []string) (*Searcher, error) {
	patterns := make([]string, 0, len(words))
	seen := make(map[string]bool)
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		patterns = append(patterns, w)
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no query forms")
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})

	return &Searcher{
		ac:       builder.Build(patterns),
		patterns: patterns,
	}, nil
}

// Patterns returns the compiled query forms in automaton order.
func (s *Searcher) Patterns() []string {
	return s.patterns
}

// Scan finds all query-form occurrences in text.
func (s *Searcher) Scan(text string) []Hit {
	matches := s.ac.FindAll(text)
	hits := make([]Hit, 0, len(matches))

	for _, m := range matches {
		hits = append(hits, Hit{
			Start:   m.Start(),
			End:     m.End(),
			Text:    text[m.Start():m.End()],
			Pattern: m.Pattern(),
		})
	}

	return hits
}

// DefaultWidth is the context window, in bytes, on each side of a hit.
const DefaultWidth = 30

// Concordance renders every hit in a sentence as a keyword-in-context
// line with width bytes of context on each side. width <= 0 uses
// DefaultWidth.
func (s *Searcher) Concordance(fileID string, sentNo int, text string, width int) []Line {
	if width <= 0 {
		width = DefaultWidth
	}

	hits := s.Scan(text)
	lines := make([]Line, 0, len(hits))

	for _, h := range hits {
		left := h.Start - width
		if left < 0 {
			left = 0
		}
		right := h.End + width
		if right > len(text) {
			right = len(text)
		}

		lines = append(lines, Line{
			FileID: fileID,
			SentNo: sentNo,
			Left:   text[left:h.Start],
			Hit:    h.Text,
			Right:  text[h.End:right],
			Word:   s.patterns[h.Pattern],
		})
	}

	return lines
}
