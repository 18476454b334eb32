// ABOUTME: OpenAI embedding backend with retry logic
// ABOUTME: Uses the go-openai SDK's embeddings endpoint
package embed

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
	"github.com/docsage/docsage/internal/util"
)

type openAIEmbedder struct {
	client     *openai.Client
	model      string
	dimension  int
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
}

func newOpenAIEmbedder(cfg *config.Config, model string) (*openAIEmbedder, error) {
	if cfg.OpenAIKey == "" {
		return nil, &faults.ConfigurationFault{Field: "OPENAI_API_KEY"}
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &openAIEmbedder{
		client:     openai.NewClientWithConfig(clientConfig),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    cfg.Timeout,
	}, nil
}

func (e *openAIEmbedder) ModelID() string { return "openai/" + e.model }

func (e *openAIEmbedder) Dimension() int { return e.dimension }

// Embed returns an L2-normalized embedding vector for the given text.
// Transient API failures are retried with exponential backoff.
func (e *openAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(e.retryDelay, attempt))
		}

		reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.client.CreateEmbeddings(reqCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(e.model),
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		vector := normalize(float32sTo64(resp.Data[0].Embedding))
		if e.dimension == 0 {
			e.dimension = len(vector)
		}
		return vector, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", e.maxRetries+1, lastErr)
}
