// ABOUTME: OpenAI-compatible generation adapter
// ABOUTME: Chat-completions call via the go-openai SDK with fixed sampling
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

type openAIGenerator struct {
	client *openai.Client
	model  string
}

func newOpenAIGenerator(cfg *config.Config) (*openAIGenerator, error) {
	if cfg.OpenAIKey == "" {
		return nil, &faults.ConfigurationFault{Field: "OPENAI_API_KEY"}
	}
	if cfg.GenerationModel == "" {
		return nil, &faults.ConfigurationFault{Field: "generation model"}
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.GenerationModel,
	}, nil
}

func (g *openAIGenerator) Name() string { return config.ProviderOpenAI }

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: Temperature,
		MaxTokens:   MaxOutputTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &faults.ProviderError{Provider: "OpenAI", Status: apiErr.HTTPStatusCode, Err: err}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &faults.ProviderError{Provider: "OpenAI", Status: reqErr.HTTPStatusCode, Err: err}
		}
		return "", &faults.ProviderError{Provider: "OpenAI", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no completion choices: %w", faults.ErrEmptyAnswer)
	}
	answer := resp.Choices[0].Message.Content
	if strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("openai: %w", faults.ErrEmptyAnswer)
	}
	return answer, nil
}
