// ABOUTME: Tests for paragraph chunking
// ABOUTME: Verifies splitting, trimming, length filtering and determinism
package core

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestChunk_SplitsOnBlankLines(t *testing.T) {
	c := NewChunker()

	text := "Paris is the capital of France.\n\nBananas are yellow fruit."
	chunks := c.Chunk(text)

	want := []string{"Paris is the capital of France.", "Bananas are yellow fruit."}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Chunk() = %v, want %v", chunks, want)
	}
}

func TestChunk_BlankLinesWithWhitespace(t *testing.T) {
	c := NewChunker()

	// Blank line containing spaces/tabs still separates paragraphs
	text := "First paragraph with enough text.\n  \t\nSecond paragraph with enough text."
	chunks := c.Chunk(text)
	if len(chunks) != 2 {
		t.Fatalf("Chunk() returned %d chunks, want 2: %v", len(chunks), chunks)
	}
}

func TestChunk_DiscardsShortSegments(t *testing.T) {
	c := NewChunker()

	chunks := c.Chunk("ab\n\ncdefghijklmnopqrstuvwxy")
	if len(chunks) != 1 {
		t.Fatalf("Chunk() returned %d chunks, want 1: %v", len(chunks), chunks)
	}
	if chunks[0] != "cdefghijklmnopqrstuvwxy" {
		t.Errorf("Chunk()[0] = %q", chunks[0])
	}

	for _, chunk := range chunks {
		if utf8.RuneCountInString(chunk) < MinChunkLength {
			t.Errorf("chunk %q shorter than %d", chunk, MinChunkLength)
		}
	}
}

func TestChunk_AllShortFragmentsYieldNothing(t *testing.T) {
	c := NewChunker()

	chunks := c.Chunk("short\n\ntiny\n\nalso small")
	if len(chunks) != 0 {
		t.Errorf("Chunk() = %v, want no chunks", chunks)
	}
}

func TestChunk_TrimsSegments(t *testing.T) {
	c := NewChunker()

	chunks := c.Chunk("   Paris is the capital of France.   \n\n\t Bananas are yellow fruit. ")
	want := []string{"Paris is the capital of France.", "Bananas are yellow fruit."}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("Chunk() = %v, want %v", chunks, want)
	}
}

func TestChunk_PreservesSourceOrder(t *testing.T) {
	c := NewChunker()

	text := "zebra paragraph comes first here.\n\nalpha paragraph comes second here.\n\nmiddle paragraph comes third here."
	chunks := c.Chunk(text)
	if len(chunks) != 3 {
		t.Fatalf("Chunk() returned %d chunks, want 3", len(chunks))
	}
	if chunks[0][0] != 'z' || chunks[1][0] != 'a' || chunks[2][0] != 'm' {
		t.Errorf("Chunk() order = %v, want source order", chunks)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c := NewChunker()
	text := "First paragraph with enough text.\n\nSecond paragraph with enough text.\n\nshort"

	first := c.Chunk(text)
	for i := 0; i < 10; i++ {
		if got := c.Chunk(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("Chunk() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c := NewChunker()

	for _, text := range []string{"", "   ", "\n\n\n", "\n \n \n"} {
		if chunks := c.Chunk(text); len(chunks) != 0 {
			t.Errorf("Chunk(%q) = %v, want no chunks", text, chunks)
		}
	}
}
