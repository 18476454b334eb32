// ABOUTME: Embedder interface and model resolution with per-model caching
// ABOUTME: Model identifiers are "openai/<model>" or "ollama/<model>"
package embed

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

// Embedder converts text into a fixed-length, L2-normalized vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	// Dimension returns the vector length, known after resolution.
	Dimension() int
	// ModelID returns the full "provider/model" identifier.
	ModelID() string
}

// Resolver maps embedding-model identifiers to initialized embedders.
// Resolution is the slow one-time step: it constructs the client and runs
// a probe embedding to verify the model and learn its dimension. Resolved
// embedders are cached for the lifetime of the resolver.
type Resolver struct {
	mu    sync.Mutex
	cache map[string]Embedder
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]Embedder)}
}

// Resolve returns an initialized embedder for cfg.EmbeddingModel.
// Initialization failures are library-load faults, recoverable by a later
// Resolve call; missing credentials are configuration faults.
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config) (Embedder, error) {
	modelID := cfg.EmbeddingModel

	r.mu.Lock()
	if cached, ok := r.cache[modelID]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	provider, model, ok := strings.Cut(modelID, "/")
	if !ok || model == "" {
		return nil, &faults.ConfigurationFault{Field: "embedding model (want provider/model, got " + modelID + ")"}
	}

	var (
		embedder Embedder
		err      error
	)
	switch provider {
	case "openai":
		embedder, err = newOpenAIEmbedder(cfg, model)
	case "ollama":
		embedder, err = newOllamaEmbedder(cfg, model)
	default:
		return nil, &faults.ConfigurationFault{Field: "embedding model provider (" + provider + " is not supported)"}
	}
	if err != nil {
		return nil, err
	}

	// Probe embed: verifies the model loads and fixes the dimension.
	if _, err := embedder.Embed(ctx, "docsage embedding probe"); err != nil {
		return nil, &faults.LibraryLoadFault{Library: "embedding model " + modelID, Err: err}
	}

	r.mu.Lock()
	r.cache[modelID] = embedder
	r.mu.Unlock()

	return embedder, nil
}

// normalize scales vec to unit L2 length in place and returns it. A zero
// vector is returned unchanged.
func normalize(vec []float64) []float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return vec
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// float32sTo64 widens an API vector to the store's float64 representation.
func float32sTo64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
