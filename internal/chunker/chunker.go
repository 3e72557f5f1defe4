package chunker

import (
	"strings"

	"github.com/dgallion1/docqa/internal/document"
)

// DefaultMaxWords is the chunk size used when none is configured.
const DefaultMaxWords = 512

// Chunk splits text on whitespace and groups the words into consecutive
// chunks of exactly maxWords, the last chunk holding the remainder.
// Text with no words yields no chunks.
func Chunk(text string, maxWords int) []document.Chunk {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]document.Chunk, 0, (len(words)+maxWords-1)/maxWords)
	for start := 0; start < len(words); start += maxWords {
		end := min(start+maxWords, len(words))
		chunks = append(chunks, document.Chunk{
			Index: len(chunks),
			Text:  strings.Join(words[start:end], " "),
			Words: end - start,
		})
	}
	return chunks
}

// Count returns how many chunks Chunk would produce for a text of words
// words, without building them.
func Count(words, maxWords int) int {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}
	if words <= 0 {
		return 0
	}
	return (words + maxWords - 1) / maxWords
}
