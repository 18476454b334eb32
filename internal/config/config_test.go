// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Provider != ProviderOllama {
		t.Errorf("Provider = %s, want ollama", cfg.Provider)
	}
	if cfg.EmbeddingModel != "openai/text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s, want openai/text-embedding-3-small", cfg.EmbeddingModel)
	}
	if cfg.OllamaBaseURL != "http://localhost:11434" {
		t.Errorf("OllamaBaseURL = %s, want http://localhost:11434", cfg.OllamaBaseURL)
	}
	if cfg.TopK != 3 {
		t.Errorf("TopK = %d, want 3", cfg.TopK)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should default to a non-empty XDG path")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("DOCSAGE_PROVIDER", "openai")
	os.Setenv("DOCSAGE_GENERATION_MODEL", "gpt-4o-mini")
	os.Setenv("DOCSAGE_EMBEDDING_MODEL", "ollama/nomic-embed-text")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_BASE_URL", "http://localhost:8080/v1")
	os.Setenv("DOCSAGE_DB", "/tmp/docsage-test.db")
	os.Setenv("DOCSAGE_TOP_K", "5")
	os.Setenv("DOCSAGE_TIMEOUT", "60s")
	os.Setenv("DOCSAGE_MAX_RETRIES", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %s, want openai", cfg.Provider)
	}
	if cfg.GenerationModel != "gpt-4o-mini" {
		t.Errorf("GenerationModel = %s, want gpt-4o-mini", cfg.GenerationModel)
	}
	if cfg.EmbeddingModel != "ollama/nomic-embed-text" {
		t.Errorf("EmbeddingModel = %s, want ollama/nomic-embed-text", cfg.EmbeddingModel)
	}
	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.OpenAIBaseURL != "http://localhost:8080/v1" {
		t.Errorf("OpenAIBaseURL = %s, want http://localhost:8080/v1", cfg.OpenAIBaseURL)
	}
	if cfg.DBPath != "/tmp/docsage-test.db" {
		t.Errorf("DBPath = %s, want /tmp/docsage-test.db", cfg.DBPath)
	}
	if cfg.TopK != 5 {
		t.Errorf("TopK = %d, want 5", cfg.TopK)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{
		Provider:       "claude",
		EmbeddingModel: "openai/text-embedding-3-small",
		TopK:           3,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for an unknown provider")
	}
}

func TestValidate_EmptyEmbeddingModel(t *testing.T) {
	cfg := &Config{
		Provider: ProviderOllama,
		TopK:     3,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for an empty embedding model")
	}
}

func TestValidate_InvalidTopK(t *testing.T) {
	cfg := &Config{
		Provider:       ProviderOllama,
		EmbeddingModel: "openai/text-embedding-3-small",
		TopK:           0,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for TopK <= 0")
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	cfg := &Config{
		Provider:       ProviderOllama,
		EmbeddingModel: "openai/text-embedding-3-small",
		TopK:           3,
		MaxRetries:     15,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries > 10")
	}

	cfg.MaxRetries = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries < 0")
	}
}
