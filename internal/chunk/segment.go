package chunk

import (
	"strings"
	"unicode/utf8"
)

// Separator delimits paragraph chunks in editor text.
const Separator = "\n\n"

// Chunk is a paragraph-sized run of editor text.
type Chunk struct {
	// StartOffset is the character (rune) offset where Text begins in the source text.
	StartOffset int
	Text        string
}

// Segment splits text into ordered chunks at every non-overlapping occurrence of Separator.
//
// The scan is greedy: after a match at i it resumes at i+len(Separator), so "\n\n\n\n" counts as
// two separators with an empty chunk between them. The leading chunk is always present, even
// when text is empty. Empty chunks are kept; consumers drop them.
func Segment(text string) []Chunk {
	chunks := make([]Chunk, 0, strings.Count(text, Separator)+1)

	start := 0       // byte offset of the current chunk
	startOffset := 0 // rune offset of the current chunk
	for {
		i := strings.Index(text[start:], Separator)
		if i < 0 {
			break
		}
		end := start + i
		chunks = append(chunks, Chunk{StartOffset: startOffset, Text: text[start:end]})

		startOffset += utf8.RuneCountInString(text[start:end]) + utf8.RuneCountInString(Separator)
		start = end + len(Separator)
	}
	chunks = append(chunks, Chunk{StartOffset: startOffset, Text: text[start:]})

	return chunks
}
