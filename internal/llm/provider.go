// ABOUTME: Provider abstraction for the interchangeable LLM backends
// ABOUTME: One adapter per provider; the answer generator never branches on provider names
package llm

import (
	"context"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

// SystemInstruction is the fixed assistant persona shared by all
// providers.
const SystemInstruction = "You are a helpful AI assistant. Answer questions based on provided documents. If the document doesn't contain the answer, say so and answer generally if possible. Format your response using markdown."

// Sampling parameters are fixed for reproducible tone across providers.
const (
	Temperature     float32 = 0.5
	MaxOutputTokens         = 1024
)

// Generator is the interface all LLM backends implement.
type Generator interface {
	// Generate sends the composed prompt and returns the answer text.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g. "openai", "ollama").
	Name() string
}

// NewGenerator builds the adapter for the configured provider. Each
// constructor validates its required credential, endpoint and model and
// returns a ConfigurationFault before any network use.
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return newGeminiGenerator(ctx, cfg)
	case config.ProviderOpenAI:
		return newOpenAIGenerator(cfg)
	case config.ProviderOllama:
		return newOllamaGenerator(cfg)
	default:
		return nil, &faults.ConfigurationFault{Field: "provider (" + cfg.Provider + " is not supported)"}
	}
}
