// ABOUTME: Tests for chunk export functionality
// ABOUTME: Verifies YAML and JSON serialization of stored chunks
package store

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/docsage/docsage/internal/models"
)

func TestExportEmptyStore(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if data.Version != "1.0" {
		t.Errorf("Version = %s, want 1.0", data.Version)
	}
	if data.Tool != "docsage" {
		t.Errorf("Tool = %s, want docsage", data.Tool)
	}
	if len(data.Chunks) != 0 {
		t.Errorf("Chunks = %d, want 0", len(data.Chunks))
	}
}

func TestExportChunks(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetGeneration("openai/text-embedding-3-small"); err != nil {
		t.Fatalf("SetGeneration() error = %v", err)
	}
	if err := s.Put(models.Chunk{ID: "chunk_1", Text: "first chunk text", Vector: []float64{1, 2, 3}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(models.Chunk{ID: "chunk_2", Text: "second chunk text", Vector: []float64{4, 5, 6}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if data.EmbeddingModel != "openai/text-embedding-3-small" {
		t.Errorf("EmbeddingModel = %s", data.EmbeddingModel)
	}
	if len(data.Chunks) != 2 {
		t.Fatalf("Chunks = %d, want 2", len(data.Chunks))
	}
	if data.Chunks[0].ID != "chunk_1" || data.Chunks[1].ID != "chunk_2" {
		t.Errorf("chunk order = %s, %s", data.Chunks[0].ID, data.Chunks[1].ID)
	}
	if data.Chunks[0].Dimension != 3 {
		t.Errorf("Dimension = %d, want 3", data.Chunks[0].Dimension)
	}
}

func TestExportYAMLRoundTrip(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(models.Chunk{ID: "chunk_1", Text: "yaml chunk", Vector: []float64{1}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out, err := data.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	if !strings.Contains(string(out), "yaml chunk") {
		t.Errorf("YAML output missing chunk text:\n%s", out)
	}

	var parsed ExportData
	if err := yaml.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if len(parsed.Chunks) != 1 || parsed.Chunks[0].ID != "chunk_1" {
		t.Errorf("parsed chunks = %+v", parsed.Chunks)
	}
}

func TestExportJSON(t *testing.T) {
	s := newTestStore(t)
	if err := s.Put(models.Chunk{ID: "chunk_1", Text: "json chunk", Vector: []float64{1}}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out, err := data.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var parsed ExportData
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if len(parsed.Chunks) != 1 || parsed.Chunks[0].Text != "json chunk" {
		t.Errorf("parsed chunks = %+v", parsed.Chunks)
	}
}
