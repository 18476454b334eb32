// ABOUTME: Gemini generation adapter via the google.golang.org/genai SDK
// ABOUTME: SDK-level call with fixed sampling and system instruction
package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(ctx context.Context, cfg *config.Config) (*geminiGenerator, error) {
	if cfg.GeminiKey == "" {
		return nil, &faults.ConfigurationFault{Field: "GEMINI_API_KEY"}
	}
	if cfg.GenerationModel == "" {
		return nil, &faults.ConfigurationFault{Field: "generation model"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &faults.LibraryLoadFault{Library: "Google GenAI SDK", Err: err}
	}

	return &geminiGenerator{client: client, model: cfg.GenerationModel}, nil
}

func (g *geminiGenerator) Name() string { return config.ProviderGemini }

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](Temperature),
		TopP:              genai.Ptr[float32](0.95),
		TopK:              genai.Ptr[float32](64),
		MaxOutputTokens:   MaxOutputTokens,
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", &faults.ProviderError{Provider: "Gemini", Err: err}
	}

	var blockReason, blockMessage string
	if fb := resp.PromptFeedback; fb != nil {
		blockReason = string(fb.BlockReason)
		blockMessage = fb.BlockReasonMessage
	}
	return evaluateGeminiAnswer(resp.Text(), blockReason, blockMessage)
}

// evaluateGeminiAnswer turns the response text and optional block
// feedback into the adapter's result. An empty answer is an error; the
// provider-reported block reason is surfaced when present.
func evaluateGeminiAnswer(answer, blockReason, blockMessage string) (string, error) {
	if strings.TrimSpace(answer) != "" {
		return answer, nil
	}

	msg := "no answer from Gemini or answer was empty"
	if blockReason != "" {
		msg += fmt.Sprintf(" (blocked: %s", blockReason)
		if blockMessage != "" {
			msg += ", " + blockMessage
		}
		msg += ")"
	}
	return "", &faults.ProviderError{Provider: "Gemini", Err: fmt.Errorf("%s: %w", msg, faults.ErrEmptyAnswer)}
}
