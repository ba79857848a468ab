// Package stats computes corpus-level summary metrics.
package stats

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// StopWords to filter out of the frequency ranking. Mixed German and
// English function words; the export format carries both.
var StopWords = map[string]bool{
	"der": true, "die": true, "das": true, "und": true, "in": true,
	"den": true, "von": true, "zu": true, "mit": true, "sich": true,
	"des": true, "auf": true, "ist": true, "im": true, "dem": true,
	"nicht": true, "ein": true, "eine": true, "als": true, "auch": true,
	"es": true, "an": true, "aus": true, "er": true, "hat": true,
	"sie": true, "nach": true, "bei": true, "um": true, "am": true,
	"sind": true, "noch": true, "wie": true, "so": true, "zum": true,
	"war": true, "nur": true, "oder": true, "aber": true, "vor": true,
	"zur": true, "bis": true, "durch": true, "man": true, "sein": true,
	"the": true, "of": true, "and": true, "a": true, "to": true,
	"on": true, "for": true, "at": true, "by": true,
	"is": true, "it": true, "as": true, "be": true, "was": true,
	"that": true, "this": true, "has": true, "have": true, "had": true,
}

// WordCount is one entry in the frequency ranking.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report holds the computed corpus metrics.
type Report struct {
	SentenceCount  int            `json:"sentCount"`
	TokenCount     int            `json:"tokenCount"`
	VocabSize      int            `json:"vocabSize"`
	AvgSentenceLen float64        `json:"avgSentenceLen"`
	TagCounts      map[string]int `json:"tagCounts"`
	TagEntropy     float64        `json:"tagEntropy"`
	TopWords       []WordCount    `json:"topWords"`
}

// Analyzer accumulates per-sentence counts and renders a Report.
type Analyzer struct {
	sentences int
	tokens    int
	words     map[string]int
	tags      map[string]int
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		words: make(map[string]int),
		tags:  make(map[string]int),
	}
}

// Add folds one sentence into the running counts. words and tags are
// position-aligned; a missing tag column may pass nil tags.
func (a *Analyzer) Add(words, tags []string) {
	a.sentences++
	for i, w := range words {
		a.tokens++
		a.words[strings.ToLower(w)]++
		if i < len(tags) && tags[i] != "" {
			a.tags[tags[i]]++
		}
	}
}

// Report computes the metrics over everything added so far. topN caps
// the frequency ranking; topN <= 0 means 10.
func (a *Analyzer) Report(topN int) Report {
	if topN <= 0 {
		topN = 10
	}

	avg := 0.0
	if a.sentences > 0 {
		avg = float64(a.tokens) / float64(a.sentences)
	}

	tagCounts := make(map[string]int, len(a.tags))
	for tag, n := range a.tags {
		tagCounts[tag] = n
	}

	return Report{
		SentenceCount:  a.sentences,
		TokenCount:     a.tokens,
		VocabSize:      len(a.words),
		AvgSentenceLen: avg,
		TagCounts:      tagCounts,
		TagEntropy:     entropy(a.tags),
		TopWords:       a.topWords(topN),
	}
}

// topWords ranks content words by count, highest first. Stop words
// and punctuation-only tokens are excluded.
func (a *Analyzer) topWords(n int) []WordCount {
	ranked := make([]WordCount, 0, len(a.words))
	for w, c := range a.words {
		if StopWords[w] || !hasLetter(w) {
			continue
		}
		ranked = append(ranked, WordCount{Word: w, Count: c})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// entropy computes the Shannon entropy of the tag distribution in
// nats: - sum p * ln(p).
func entropy(counts map[string]int) float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return 0.0
	}

	h := 0.0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log(p)
	}
	return h
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
