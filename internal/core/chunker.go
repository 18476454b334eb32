// ABOUTME: Chunker splits raw document text into retrievable units
// ABOUTME: Paragraph split on blank lines, short fragments discarded
package core

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinChunkLength is the trimmed length a segment must exceed to be kept.
const MinChunkLength = 20

// blank-line boundary: one or more newlines separated by optional whitespace
var paragraphSplitter = regexp.MustCompile(`\n\s*\n`)

// Chunker splits document text into paragraph chunks.
type Chunker struct {
	minLength int
}

// NewChunker creates a Chunker with the default length threshold.
func NewChunker() *Chunker {
	return &Chunker{minLength: MinChunkLength}
}

// Chunk splits text on blank-line boundaries, trims each segment and
// discards segments at or below the minimum length. Source order is
// preserved and the result is deterministic for identical input. Zero
// qualifying segments is a valid outcome, not an error.
func (c *Chunker) Chunk(text string) []string {
	var chunks []string
	for _, segment := range paragraphSplitter.Split(text, -1) {
		trimmed := strings.TrimSpace(segment)
		if utf8.RuneCountInString(trimmed) > c.minLength {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks
}
