// ABOUTME: Tests for ask command
// ABOUTME: Runs ingest then ask against a fake Ollama backend

package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newOllamaServer serves both embeddings and generation.
func newOllamaServer(t *testing.T, answer string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embeddings":
			_ = json.NewEncoder(w).Encode(map[string]any{"embedding": []float64{0.1, 0.2, 0.3}})
		case "/api/generate":
			_ = json.NewEncoder(w).Encode(map[string]any{"response": answer, "done": true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewAskCmd(t *testing.T) {
	cmd := NewAskCmd()

	if cmd.Use != "ask <question>" {
		t.Errorf("Use = %q, want %q", cmd.Use, "ask <question>")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}
}

func TestAskCmd_AnswersFromIngestedDocument(t *testing.T) {
	srv := newOllamaServer(t, "The capital of France is Paris.")
	setupCLIEnv(t, srv.URL)

	if _, err := runCLI(t, "ingest", "Paris is the capital of France and its largest city."); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	output, err := runCLI(t, "ask", "What", "is", "the", "capital", "of", "France?")
	if err != nil {
		t.Fatalf("Execute() error = %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "The capital of France is Paris.") {
		t.Errorf("output = %q, want answer text", output)
	}
}

func TestAskCmd_RequiresIngestedDocument(t *testing.T) {
	srv := newOllamaServer(t, "unused")
	setupCLIEnv(t, srv.URL)

	if _, err := runCLI(t, "ask", "anything?"); err == nil {
		t.Error("Execute() should fail before any document is ingested")
	}
}
