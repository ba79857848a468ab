package concord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsEmptyQuery(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]string{"", "  "})
	assert.Error(t, err)
}

func TestNew_DeduplicatesForms(t *testing.T) {
	s, err := New([]string{"house", "house", "red"})
	require.NoError(t, err)
	assert.Equal(t, []string{"house", "red"}, s.Patterns())
}

func TestScan_FindsWholeWords(t *testing.T) {
	s, err := New([]string{"house"})
	require.NoError(t, err)

	hits := s.Scan("the house near the houseboat")
	require.Len(t, hits, 1, "houseboat should not match")

	assert.Equal(t, 4, hits[0].Start)
	assert.Equal(t, 9, hits[0].End)
	assert.Equal(t, "house", hits[0].Text)
	assert.Equal(t, 0, hits[0].Pattern)
}

func TestScan_CaseInsensitive(t *testing.T) {
	s, err := New([]string{"the"})
	require.NoError(t, err)

	hits := s.Scan("The dog saw the cat")
	require.Len(t, hits, 2)
	assert.Equal(t, "The", hits[0].Text, "Hit keeps the original casing")
	assert.Equal(t, "the", hits[1].Text)
}

func TestScan_MultiplePatterns(t *testing.T) {
	s, err := New([]string{"house", "red"})
	require.NoError(t, err)

	hits := s.Scan("the house is red")
	require.Len(t, hits, 2)
	assert.Equal(t, "house", hits[0].Text)
	assert.Equal(t, 0, hits[0].Pattern)
	assert.Equal(t, "red", hits[1].Text)
	assert.Equal(t, 1, hits[1].Pattern)
}

func TestConcordance_Windows(t *testing.T) {
	s, err := New([]string{"red"})
	require.NoError(t, err)

	lines := s.Concordance("sample.export", 7, "the house is red today", 6)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, "sample.export", line.FileID)
	assert.Equal(t, 7, line.SentNo)
	assert.Equal(t, "se is ", line.Left)
	assert.Equal(t, "red", line.Hit)
	assert.Equal(t, " today", line.Right)
	assert.Equal(t, "red", line.Word)
}

func TestConcordance_WindowClampedAtEdges(t *testing.T) {
	s, err := New([]string{"red"})
	require.NoError(t, err)

	lines := s.Concordance("a.export", 1, "red", 10)
	require.Len(t, lines, 1)
	assert.Equal(t, "", lines[0].Left)
	assert.Equal(t, "red", lines[0].Hit)
	assert.Equal(t, "", lines[0].Right)
}
