// ABOUTME: Chunk persistence operations for SQLite
// ABOUTME: Implements upsert by id, bulk clear, full scan and generation tracking
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/docsage/docsage/internal/faults"
	"github.com/docsage/docsage/internal/models"
)

const generationKey = "embedding_model"

// Store handles chunk persistence. It is exclusively owned by the engine;
// single-writer discipline comes from the engine's sequential command
// loop, not from locking here.
type Store struct {
	db *DB
}

// New creates a Store on an open database and records the schema version.
func New(db *DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.setMeta("schema_version", fmt.Sprintf("%d", SchemaVersion)); err != nil {
		return nil, &faults.StorageError{Op: "init", Err: err}
	}
	return s, nil
}

// Put upserts a chunk by id. Calling it twice with the same chunk is a
// no-op beyond the second write.
func (s *Store) Put(chunk models.Chunk) error {
	if chunk.ID == "" {
		return &faults.StorageError{Op: "put", Err: fmt.Errorf("chunk id must not be empty")}
	}
	createdAt := chunk.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO chunks (id, text, vector, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			vector = excluded.vector
	`, chunk.ID, chunk.Text, vectorToBlob(chunk.Vector), createdAt)
	if err != nil {
		return &faults.StorageError{Op: "put", Err: err}
	}
	return nil
}

// Clear removes all chunks. Safe to call on an already-empty store.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM chunks"); err != nil {
		return &faults.StorageError{Op: "clear", Err: err}
	}
	return nil
}

// GetAll returns every stored chunk in insertion order. Callers that need
// a ranking re-sort; the stable order here is what makes retrieval
// tie-breaks deterministic.
func (s *Store) GetAll() ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT id, text, vector, created_at
		FROM chunks
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, &faults.StorageError{Op: "scan", Err: err}
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.Chunk
	for rows.Next() {
		var (
			chunk models.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.Text, &blob, &chunk.CreatedAt); err != nil {
			return nil, &faults.StorageError{Op: "scan", Err: err}
		}
		chunk.Vector = blobToVector(blob)
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, &faults.StorageError{Op: "scan", Err: err}
	}

	return chunks, nil
}

// Count returns the number of stored chunks.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chunks").Scan(&count); err != nil {
		return 0, &faults.StorageError{Op: "count", Err: err}
	}
	return count, nil
}

// Generation returns the embedding-model identifier the stored vectors
// were produced by, or "" when the store has never held a generation.
func (s *Store) Generation() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", generationKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", &faults.StorageError{Op: "meta read", Err: err}
	}
	return value, nil
}

// SetGeneration records the active embedding-model identifier. The engine
// calls this only after clearing chunks produced by a different model, so
// all stored vectors always belong to one generation.
func (s *Store) SetGeneration(model string) error {
	if err := s.setMeta(generationKey, model); err != nil {
		return &faults.StorageError{Op: "meta write", Err: err}
	}
	return nil
}

func (s *Store) setMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
