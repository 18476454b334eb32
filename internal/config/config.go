// ABOUTME: Centralized configuration for the docsage engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"

	"github.com/docsage/docsage/internal/faults"
)

// Provider identifiers form a closed set. Adding a provider means adding
// an adapter in internal/llm and extending this list.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config holds all configuration for one engine instance. It is an
// explicit value passed into the engine at initialize time; nothing here
// lives in package-level mutable state.
type Config struct {
	// Provider selects the generation backend: gemini, openai or ollama.
	Provider string
	// GenerationModel is the model identifier for the selected provider.
	GenerationModel string
	// EmbeddingModel is "openai/<model>" or "ollama/<model>". Changing it
	// between initializations invalidates the chunk store.
	EmbeddingModel string

	// Provider credentials and endpoints
	OpenAIKey     string
	OpenAIBaseURL string
	GeminiKey     string
	OllamaBaseURL string

	// Storage
	DBPath string

	// Retrieval
	TopK int

	// Embedding client behavior
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Provider:        getEnv("DOCSAGE_PROVIDER", ProviderOllama),
		GenerationModel: os.Getenv("DOCSAGE_GENERATION_MODEL"),
		EmbeddingModel:  getEnv("DOCSAGE_EMBEDDING_MODEL", "openai/text-embedding-3-small"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		DBPath:          getEnv("DOCSAGE_DB", DefaultDBPath()),
		TopK:            getEnvInt("DOCSAGE_TOP_K", 3),
		Timeout:         getEnvDuration("DOCSAGE_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("DOCSAGE_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("DOCSAGE_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges. It does not check provider credentials;
// those are validated per-provider when an adapter is constructed, so the
// missing field can be named precisely.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOllama:
	default:
		return &faults.ConfigurationFault{
			Field:  "DOCSAGE_PROVIDER",
			Reason: fmt.Sprintf("must be one of gemini, openai, ollama; got %q", c.Provider),
		}
	}
	if c.EmbeddingModel == "" {
		return &faults.ConfigurationFault{Field: "DOCSAGE_EMBEDDING_MODEL"}
	}
	if c.TopK <= 0 {
		return &faults.ConfigurationFault{
			Field:  "DOCSAGE_TOP_K",
			Reason: fmt.Sprintf("must be positive, got %d", c.TopK),
		}
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return &faults.ConfigurationFault{
			Field:  "DOCSAGE_MAX_RETRIES",
			Reason: fmt.Sprintf("must be 0-10, got %d", c.MaxRetries),
		}
	}
	return nil
}

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "docsage")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "docsage.db")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
