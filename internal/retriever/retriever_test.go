// ABOUTME: Tests for cosine similarity search
// ABOUTME: Verifies score bounds, ordering, tie-breaks and empty-store behavior
package retriever

import (
	"errors"
	"math"
	"testing"

	"github.com/docsage/docsage/internal/models"
)

type fakeSource struct {
	chunks []models.Chunk
	err    error
}

func (f *fakeSource) GetAll() ([]models.Chunk, error) {
	return f.chunks, f.err
}

func TestCosineSimilarity_Bounds(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0.0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
			if got < -1.0-1e-9 || got > 1.0+1e-9 {
				t.Errorf("CosineSimilarity() = %v, outside [-1, 1]", got)
			}
		})
	}
}

func TestSearch_RanksByDescendingScore(t *testing.T) {
	r := New(&fakeSource{chunks: []models.Chunk{
		{ID: "far", Text: "far", Vector: []float64{0, 1}},
		{ID: "near", Text: "near", Vector: []float64{1, 0.01}},
		{ID: "mid", Text: "mid", Vector: []float64{1, 1}},
	}})

	results, err := r.Search([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search() returned %d results, want 3", len(results))
	}

	wantOrder := []string{"near", "mid", "far"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %s, want %s", i, results[i].ID, want)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted descending: %v then %v", results[i-1].Score, results[i].Score)
		}
	}
}

func TestSearch_StableTieBreak(t *testing.T) {
	// Identical vectors produce identical scores; insertion order must win.
	r := New(&fakeSource{chunks: []models.Chunk{
		{ID: "first", Vector: []float64{1, 0}},
		{ID: "second", Vector: []float64{1, 0}},
		{ID: "third", Vector: []float64{1, 0}},
	}})

	results, err := r.Search([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %s, want %s", i, results[i].ID, want)
		}
	}
}

func TestSearch_TopKLimitsResults(t *testing.T) {
	r := New(&fakeSource{chunks: []models.Chunk{
		{ID: "a", Vector: []float64{1, 0}},
		{ID: "b", Vector: []float64{0.9, 0.1}},
		{ID: "c", Vector: []float64{0, 1}},
	}})

	results, err := r.Search([]float64{1, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search(topK=2) returned %d results", len(results))
	}

	// topK larger than the store returns everything
	results, err = r.Search([]float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search(topK=10) returned %d results, want 3", len(results))
	}
}

func TestSearch_EmptyStoreReturnsEmpty(t *testing.T) {
	r := New(&fakeSource{})

	results, err := r.Search([]float64{1, 0}, 3)
	if err != nil {
		t.Fatalf("Search() on empty store error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() on empty store returned %d results", len(results))
	}
}

func TestSearch_PropagatesSourceError(t *testing.T) {
	wantErr := errors.New("disk gone")
	r := New(&fakeSource{err: wantErr})

	_, err := r.Search([]float64{1, 0}, 3)
	if !errors.Is(err, wantErr) {
		t.Errorf("Search() error = %v, want %v", err, wantErr)
	}
}

func benchmarkSource(n, dim int) *fakeSource {
	chunks := make([]models.Chunk, n)
	for i := range chunks {
		vector := make([]float64, dim)
		for j := range vector {
			vector[j] = float64((i*31+j*17)%100) / 100.0
		}
		chunks[i] = models.Chunk{ID: "c", Vector: vector}
	}
	return &fakeSource{chunks: chunks}
}

func BenchmarkSearch1kChunks(b *testing.B) {
	r := New(benchmarkSource(1000, 384))
	query := make([]float64, 384)
	for j := range query {
		query[j] = float64(j%100) / 100.0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Search(query, 3); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCosineSimilarity(b *testing.B) {
	x := make([]float64, 384)
	y := make([]float64, 384)
	for j := range x {
		x[j] = float64(j) / 384.0
		y[j] = float64(383-j) / 384.0
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CosineSimilarity(x, y)
	}
}
