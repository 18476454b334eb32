// ABOUTME: AnswerGenerator stitches retrieved context into a prompt
// ABOUTME: Embeds the query, retrieves top-K chunks, dispatches to the provider
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/docsage/docsage/internal/embed"
	"github.com/docsage/docsage/internal/faults"
	"github.com/docsage/docsage/internal/llm"
	"github.com/docsage/docsage/internal/models"
	"github.com/docsage/docsage/internal/retriever"
)

const (
	contextSeparator     = "\n\n---\n\n"
	noContextPlaceholder = "No relevant context found in the document."
)

// AnswerGenerator produces an answer for a user query from retrieved
// document context and the configured provider.
type AnswerGenerator struct {
	embedder  embed.Embedder
	retriever *retriever.Retriever
	generator llm.Generator
	topK      int
	// progress receives advisory status messages; may be nil
	progress func(message string)
}

// NewAnswerGenerator wires the retrieval pipeline to a provider adapter.
func NewAnswerGenerator(embedder embed.Embedder, r *retriever.Retriever, generator llm.Generator, topK int, progress func(string)) *AnswerGenerator {
	if topK <= 0 {
		topK = 3
	}
	return &AnswerGenerator{
		embedder:  embedder,
		retriever: r,
		generator: generator,
		topK:      topK,
		progress:  progress,
	}
}

// Generate answers the query using the most relevant stored chunks as
// context. The answer text is returned verbatim; rendering is the
// caller's concern.
func (g *AnswerGenerator) Generate(ctx context.Context, query string) (string, error) {
	if g.embedder == nil {
		return "", faults.ErrEmbeddingUnavailable
	}

	g.report("Searching relevant document chunks...")
	queryVector, err := g.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := g.retriever.Search(queryVector, g.topK)
	if err != nil {
		return "", fmt.Errorf("failed to search chunks: %w", err)
	}

	prompt := BuildPrompt(chunks, query)

	g.report(fmt.Sprintf("Sending query to %s...", g.generator.Name()))
	return g.generator.Generate(ctx, prompt)
}

// BuildPrompt renders the retrieved chunks and the literal user query into
// the fixed request prompt shared by all providers.
func BuildPrompt(chunks []models.ScoredChunk, query string) string {
	contextText := noContextPlaceholder
	if len(chunks) > 0 {
		snippets := make([]string, len(chunks))
		for i, chunk := range chunks {
			snippets[i] = fmt.Sprintf("Context Snippet %d:\n%s", i+1, chunk.Text)
		}
		contextText = strings.Join(snippets, contextSeparator)
	}

	return fmt.Sprintf(`Based on the following document context, please answer the query.
Context from document:
---
%s
---
User Query: %s

Your Answer (respond in markdown format):
`, contextText, query)
}

func (g *AnswerGenerator) report(message string) {
	if g.progress != nil {
		g.progress(message)
	}
}
