package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzer_Counts(t *testing.T) {
	a := NewAnalyzer()
	a.Add([]string{"The", "house", "is", "red", "."},
		[]string{"DET", "N", "V", "ADJ", "."})
	a.Add([]string{"The", "house"},
		[]string{"DET", "N"})

	r := a.Report(10)

	assert.Equal(t, 2, r.SentenceCount)
	assert.Equal(t, 7, r.TokenCount)
	// the, house, is, red, . -- case-folded forms
	assert.Equal(t, 5, r.VocabSize)
	assert.InDelta(t, 3.5, r.AvgSentenceLen, 1e-9)

	assert.Equal(t, 2, r.TagCounts["DET"])
	assert.Equal(t, 2, r.TagCounts["N"])
	assert.Equal(t, 1, r.TagCounts["ADJ"])
}

func TestAnalyzer_TopWordsFiltered(t *testing.T) {
	a := NewAnalyzer()
	a.Add([]string{"the", "house", "is", "red", ".", "house"}, nil)

	r := a.Report(10)

	// "the" and "is" are stop words, "." has no letters.
	assert.Equal(t, []WordCount{
		{Word: "house", Count: 2},
		{Word: "red", Count: 1},
	}, r.TopWords)
}

func TestAnalyzer_TopWordsLimit(t *testing.T) {
	a := NewAnalyzer()
	a.Add([]string{"alpha", "beta", "gamma", "delta"}, nil)

	r := a.Report(2)
	assert.Len(t, r.TopWords, 2)
	// Equal counts fall back to lexicographic order.
	assert.Equal(t, "alpha", r.TopWords[0].Word)
	assert.Equal(t, "beta", r.TopWords[1].Word)
}

func TestTagEntropy(t *testing.T) {
	a := NewAnalyzer()
	a.Add([]string{"a", "b"}, []string{"X", "Y"})

	r := a.Report(10)
	// Uniform over two tags: ln 2.
	assert.InDelta(t, math.Log(2), r.TagEntropy, 1e-9)
}

func TestTagEntropy_SingleTag(t *testing.T) {
	a := NewAnalyzer()
	a.Add([]string{"a", "b", "c"}, []string{"X", "X", "X"})

	r := a.Report(10)
	assert.Equal(t, 0.0, r.TagEntropy)
}

func TestAnalyzer_Empty(t *testing.T) {
	a := NewAnalyzer()
	r := a.Report(10)

	assert.Equal(t, 0, r.SentenceCount)
	assert.Equal(t, 0, r.TokenCount)
	assert.Equal(t, 0.0, r.AvgSentenceLen)
	assert.Equal(t, 0.0, r.TagEntropy)
	assert.Empty(t, r.TopWords)
}
