package textsplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortText(t *testing.T) {
	s := NewSplitter(1000, 150)

	chunks := s.Split("a short document")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short document", chunks[0])
}

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(1000, 150)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewSplitter(100, 20)

	text := strings.Repeat("word ", 200)
	chunks := s.Split(text)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 100, "chunk %d exceeds size", i)
		assert.NotEmpty(t, chunk)
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(100, 10)

	para1 := strings.Repeat("a", 80)
	para2 := strings.Repeat("b", 80)
	chunks := s.Split(para1 + "\n\n" + para2)

	require.GreaterOrEqual(t, len(chunks), 2)
	assert.Equal(t, para1, chunks[0])
}

func TestSplitOverlapCarriesContext(t *testing.T) {
	s := NewSplitter(100, 30)

	text := strings.Repeat("sentence one. ", 50)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Consecutive chunks share text because of the overlap window.
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-10:]
		assert.Contains(t, text, tail)
	}
}

func TestSplitCoversAllContent(t *testing.T) {
	s := NewSplitter(50, 10)

	text := "The quick brown fox jumps over the lazy dog. " +
		"Pack my box with five dozen liquor jugs. " +
		"How vexingly quick daft zebras jump."
	chunks := s.Split(text)

	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(text) {
		assert.Contains(t, joined, strings.TrimSuffix(word, "."))
	}
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)
	assert.Equal(t, DefaultChunkSize, s.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.overlap)

	// Overlap larger than the chunk gets clamped.
	s = NewSplitter(40, 100)
	assert.Less(t, s.overlap, s.chunkSize)
}
