// Package chunk splits text into fixed-size word windows so statistics can
// be reported per section of a long document. Chunks are slices of the
// original text: whitespace and line breaks inside a chunk are preserved.
package chunk

import (
	"unicode"
	"unicode/utf8"
)

// Chunker splits text into chunks of at most Size words.
type Chunker struct {
	Size int // words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 512 if size <= 0.
func New(size int) *Chunker {
	if size <= 0 {
		size = 512
	}
	return &Chunker{Size: size}
}

// Chunk splits text into consecutive chunks of at most Size words. Word
// boundaries match count.Words (runs of whitespace). Leading and trailing
// whitespace of each chunk is dropped; text with no words yields nil.
func (c *Chunker) Chunk(text string) []string {
	var (
		chunks []string
		start  = -1 // byte offset of the first word in the current chunk
		end    int  // byte offset just past the last word seen
		words  int
		inWord bool
	)

	for i, r := range text {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			inWord = true
			if words == c.Size {
				chunks = append(chunks, text[start:end])
				start, words = -1, 0
			}
			if start == -1 {
				start = i
			}
			words++
		}
		end = i + utf8.RuneLen(r)
	}

	if words > 0 {
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
