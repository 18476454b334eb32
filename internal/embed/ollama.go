// ABOUTME: Ollama embedding backend over the local HTTP API
// ABOUTME: POSTs to {baseUrl}/api/embeddings, no auth
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

type ollamaEmbedder struct {
	baseURL    string
	model      string
	dimension  int
	httpClient *http.Client
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func newOllamaEmbedder(cfg *config.Config, model string) (*ollamaEmbedder, error) {
	if cfg.OllamaBaseURL == "" {
		return nil, &faults.ConfigurationFault{Field: "OLLAMA_BASE_URL"}
	}

	return &ollamaEmbedder{
		baseURL:    strings.TrimSuffix(cfg.OllamaBaseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (e *ollamaEmbedder) ModelID() string { return "ollama/" + e.model }

func (e *ollamaEmbedder) Dimension() int { return e.dimension }

// Embed returns an L2-normalized embedding vector for the given text.
func (e *ollamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	reqBody, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama embeddings API error (status %d): %s", resp.StatusCode, body)
	}

	var embedResp ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&embedResp); err != nil {
		return nil, fmt.Errorf("failed to parse embeddings response: %w", err)
	}
	if len(embedResp.Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned for model %s", e.model)
	}

	vector := normalize(embedResp.Embedding)
	if e.dimension == 0 {
		e.dimension = len(vector)
	}
	return vector, nil
}
