// ABOUTME: Ollama generation adapter over the local HTTP API
// ABOUTME: Non-streaming POST to {baseUrl}/api/generate, no auth
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docsage/docsage/internal/config"
	"github.com/docsage/docsage/internal/faults"
)

type ollamaGenerator struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	System  string        `json:"system"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func newOllamaGenerator(cfg *config.Config) (*ollamaGenerator, error) {
	if cfg.OllamaBaseURL == "" {
		return nil, &faults.ConfigurationFault{Field: "OLLAMA_BASE_URL"}
	}
	if cfg.GenerationModel == "" {
		return nil, &faults.ConfigurationFault{Field: "generation model"}
	}

	return &ollamaGenerator{
		baseURL: strings.TrimSuffix(cfg.OllamaBaseURL, "/"),
		model:   cfg.GenerationModel,
		// Local generation can be slow on first load
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

func (g *ollamaGenerator) Name() string { return config.ProviderOllama }

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(ollamaGenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		System:  SystemInstruction,
		Stream:  false,
		Options: ollamaOptions{Temperature: Temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &faults.ProviderError{Provider: "Ollama", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &faults.ProviderError{
			Provider: "Ollama",
			Status:   resp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", &faults.ProviderError{Provider: "Ollama", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if strings.TrimSpace(genResp.Response) == "" {
		return "", fmt.Errorf("ollama: %w", faults.ErrEmptyAnswer)
	}
	return genResp.Response, nil
}
