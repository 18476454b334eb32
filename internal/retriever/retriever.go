// ABOUTME: Cosine similarity search over the chunk store
// ABOUTME: Brute-force scan, descending sort, stable tie-break by insertion order
package retriever

import (
	"math"
	"sort"

	"github.com/docsage/docsage/internal/models"
)

// ChunkSource is the read side of the chunk store.
type ChunkSource interface {
	GetAll() ([]models.Chunk, error)
}

// Retriever ranks stored chunks against a query vector.
type Retriever struct {
	source ChunkSource
}

// New creates a Retriever over the given chunk source.
func New(source ChunkSource) *Retriever {
	return &Retriever{source: source}
}

// Search returns up to topK chunks ranked by descending cosine similarity
// to queryVector. Ties keep the store's insertion order. An empty store
// yields an empty result, not an error.
func (r *Retriever) Search(queryVector []float64, topK int) ([]models.ScoredChunk, error) {
	chunks, err := r.source.GetAll()
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	scored := make([]models.ScoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = models.ScoredChunk{
			Chunk: chunk,
			Score: CosineSimilarity(queryVector, chunk.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Returns 0 when either vector has zero magnitude, guarding the
// divide-by-zero instead of propagating NaN.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
