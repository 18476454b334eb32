// ABOUTME: Export functionality for stored chunk data
// ABOUTME: Supports YAML and JSON export formats
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version        string        `yaml:"version" json:"version"`
	ExportedAt     string        `yaml:"exported_at" json:"exported_at"`
	Tool           string        `yaml:"tool" json:"tool"`
	EmbeddingModel string        `yaml:"embedding_model,omitempty" json:"embedding_model,omitempty"`
	Chunks         []ExportChunk `yaml:"chunks,omitempty" json:"chunks,omitempty"`
}

// ExportChunk represents one stored chunk for export. Vectors are reduced
// to their dimension; the raw floats are not useful outside the store.
type ExportChunk struct {
	ID        string `yaml:"id" json:"id"`
	Text      string `yaml:"text" json:"text"`
	Dimension int    `yaml:"dimension" json:"dimension"`
	CreatedAt string `yaml:"created_at" json:"created_at"`
}

// Export collects all stored chunks into an exportable structure.
func (s *Store) Export() (*ExportData, error) {
	generation, err := s.Generation()
	if err != nil {
		return nil, fmt.Errorf("failed to read generation: %w", err)
	}

	chunks, err := s.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to scan chunks: %w", err)
	}

	data := &ExportData{
		Version:        "1.0",
		ExportedAt:     time.Now().Format(time.RFC3339),
		Tool:           "docsage",
		EmbeddingModel: generation,
	}
	for _, chunk := range chunks {
		data.Chunks = append(data.Chunks, ExportChunk{
			ID:        chunk.ID,
			Text:      chunk.Text,
			Dimension: len(chunk.Vector),
			CreatedAt: chunk.CreatedAt.Format(time.RFC3339),
		})
	}

	return data, nil
}

// ToYAML serializes export data as YAML
func (d *ExportData) ToYAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// ToJSON serializes export data as indented JSON
func (d *ExportData) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
