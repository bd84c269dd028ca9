package vectorstore

import "strings"

// Splitter breaks text into overlapping chunks along a separator. Pieces
// are merged greedily up to ChunkSize characters; when a chunk is emitted,
// a tail of up to Overlap characters carries over into the next chunk so
// context is not lost at boundaries.
type Splitter struct {
	Separator string
	ChunkSize int
	Overlap   int
}

// NewSplitter returns a splitter with sentence-oriented defaults.
func NewSplitter() *Splitter {
	return &Splitter{
		Separator: ".",
		ChunkSize: 1000,
		Overlap:   100,
	}
}

// Split breaks text into chunks. A piece longer than ChunkSize becomes a
// chunk on its own rather than being cut mid-piece.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= s.ChunkSize {
		return []string{text}
	}

	var parts []string
	for _, p := range strings.SplitAfter(text, s.Separator) {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}

	var chunks []string
	var cur []string
	curLen := 0

	for _, p := range parts {
		if curLen > 0 && curLen+len(p) > s.ChunkSize {
			chunks = append(chunks, strings.TrimSpace(strings.Join(cur, "")))

			// carry a tail of whole pieces as overlap
			var tail []string
			tailLen := 0
			for i := len(cur) - 1; i >= 0; i-- {
				if tailLen+len(cur[i]) > s.Overlap {
					break
				}
				tail = append([]string{cur[i]}, tail...)
				tailLen += len(cur[i])
			}
			cur = tail
			curLen = tailLen
		}
		cur = append(cur, p)
		curLen += len(p)
	}

	if curLen > 0 {
		chunks = append(chunks, strings.TrimSpace(strings.Join(cur, "")))
	}
	return chunks
}
