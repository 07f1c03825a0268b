// Package textsplit chunks extracted document text for embedding.
package textsplit

import "strings"

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// Splitter breaks text into overlapping chunks, preferring to split on
// paragraph and sentence boundaries before falling back to hard cuts.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewSplitter creates a splitter with the given chunk size and overlap.
// Non-positive values fall back to the defaults.
func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
		if overlap >= chunkSize {
			overlap = chunkSize / 4
		}
	}
	return &Splitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", ". ", " "},
	}
}

// Split breaks text into chunks of at most chunkSize characters with the
// configured overlap between consecutive chunks.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end >= len(text) {
			chunk := strings.TrimSpace(text[start:])
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := s.findCut(text, start, end)
		chunk := strings.TrimSpace(text[start:cut])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - s.overlap
		if next <= start {
			next = cut
		}
		start = next
	}
	return chunks
}

// findCut looks backwards from end for the best separator to split on,
// refusing cuts that would leave a chunk shorter than half the target size.
func (s *Splitter) findCut(text string, start, end int) int {
	minCut := start + s.chunkSize/2
	for _, sep := range s.separators {
		idx := strings.LastIndex(text[start:end], sep)
		if idx == -1 {
			continue
		}
		cut := start + idx + len(sep)
		if cut > minCut {
			return cut
		}
	}
	return end
}
