package chunker

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func words(n int) string {
	w := make([]string, n)
	for i := range w {
		w[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(w, " ")
}

func TestChunk_ThousandWords(t *testing.T) {
	chunks := Chunk(words(1000), 512)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Words != 512 {
		t.Errorf("chunk 0: expected 512 words, got %d", chunks[0].Words)
	}
	if chunks[1].Words != 488 {
		t.Errorf("chunk 1: expected 488 words, got %d", chunks[1].Words)
	}
	if !strings.HasPrefix(chunks[1].Text, "w512 ") {
		t.Errorf("chunk 1 should start at word 512, got %q", chunks[1].Text[:20])
	}
}

func TestChunk_ReproducesWordSequence(t *testing.T) {
	inputs := []string{
		"one",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\nmixed   spacing here",
		words(37),
		words(1024),
	}
	for _, text := range inputs {
		for _, n := range []int{1, 2, 5, 16, 512} {
			chunks := Chunk(text, n)

			var got []string
			for i, c := range chunks {
				if c.Index != i {
					t.Errorf("n=%d: chunk %d has index %d", n, i, c.Index)
				}
				got = append(got, strings.Fields(c.Text)...)
			}
			if !slices.Equal(got, strings.Fields(text)) {
				t.Errorf("n=%d: word sequence not reproduced for %q", n, text)
			}
		}
	}
}

func TestChunk_SizeBounds(t *testing.T) {
	for _, total := range []int{1, 9, 10, 11, 99, 100} {
		const n = 10
		chunks := Chunk(words(total), n)
		for i, c := range chunks {
			got := len(strings.Fields(c.Text))
			if got != c.Words {
				t.Errorf("total=%d chunk %d: Words=%d but text has %d", total, i, c.Words, got)
			}
			last := i == len(chunks)-1
			if !last && got != n {
				t.Errorf("total=%d chunk %d: expected exactly %d words, got %d", total, i, n, got)
			}
			if last && (got < 1 || got > n) {
				t.Errorf("total=%d last chunk: expected 1..%d words, got %d", total, n, got)
			}
		}
	}
}

func TestChunk_SingleSpaceSeparators(t *testing.T) {
	chunks := Chunk("a\n\nb\t c", 512)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a b c" {
		t.Errorf("expected %q, got %q", "a b c", chunks[0].Text)
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		if chunks := Chunk(text, 512); len(chunks) != 0 {
			t.Errorf("text=%q: expected 0 chunks, got %d", text, len(chunks))
		}
	}
}

func TestChunk_Idempotent(t *testing.T) {
	text := words(1300)
	a := Chunk(text, 512)
	b := Chunk(text, 512)
	if !slices.Equal(a, b) {
		t.Error("expected identical chunk sequences on repeated runs")
	}
}

func TestChunk_DefaultMaxWordsFallback(t *testing.T) {
	chunks := Chunk(words(600), 0)
	if len(chunks) != 2 || chunks[0].Words != DefaultMaxWords {
		t.Errorf("expected default max words %d to apply, got %d chunks", DefaultMaxWords, len(chunks))
	}
}

func TestEstimateTokens(t *testing.T) {
	if EstimateTokens("") != 0 {
		t.Error("expected 0 tokens for empty text")
	}
	if got := EstimateTokens(words(100)); got != 133 {
		t.Errorf("expected 133 tokens, got %d", got)
	}
	if got := EstimateTokens("   "); got != 1 {
		t.Errorf("expected non-empty text to count as at least 1 token, got %d", got)
	}
}

func TestCount_MatchesChunk(t *testing.T) {
	for _, n := range []int{0, 1, 511, 512, 513, 1000, 1024} {
		for _, maxWords := range []int{0, 1, 7, 512} {
			if got, want := Count(n, maxWords), len(Chunk(words(n), maxWords)); got != want {
				t.Errorf("Count(%d, %d) = %d, want %d", n, maxWords, got, want)
			}
		}
	}
}
