// ABOUTME: Chunk is the immutable unit of retrievable document text
// ABOUTME: ScoredChunk extends it with a transient similarity score
package models

import "time"

// Chunk is a single retrievable piece of a processed document. The vector
// is produced once, at chunk creation, by the active embedding model and
// never mutated afterwards. All chunks in a store belong to the same
// embedding-model generation.
type Chunk struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Vector    []float64 `json:"vector" yaml:"vector"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ScoredChunk is a Chunk with its cosine similarity against a query
// vector. Scores live in [-1, 1] and are computed at query time only.
type ScoredChunk struct {
	Chunk
	Score float64 `json:"score"`
}
