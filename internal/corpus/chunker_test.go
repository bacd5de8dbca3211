package corpus

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantSizes []int
	}{
		{
			name:      "empty input",
			text:      "",
			wantSizes: nil,
		},
		{
			name:      "whitespace only",
			text:      "   \n\t  ",
			wantSizes: nil,
		},
		{
			name:      "short document fits one chunk",
			text:      "one two three",
			wantSizes: []int{3},
		},
		{
			name:      "exact window boundary",
			text:      words(ChunkWords),
			wantSizes: []int{ChunkWords},
		},
		{
			name:      "900 words split 400/400/100",
			text:      words(900),
			wantSizes: []int{400, 400, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitChunks(tt.text)

			if len(chunks) != len(tt.wantSizes) {
				t.Fatalf("SplitChunks() produced %d chunks, want %d", len(chunks), len(tt.wantSizes))
			}
			for i, chunk := range chunks {
				got := len(strings.Fields(chunk.Text))
				if got != tt.wantSizes[i] {
					t.Errorf("chunk %d has %d words, want %d", i, got, tt.wantSizes[i])
				}
				if strings.TrimSpace(chunk.Text) == "" {
					t.Errorf("chunk %d is empty after trimming", i)
				}
			}
		})
	}
}

func TestSplitChunks_PreservesWordSequence(t *testing.T) {
	text := words(1234)

	var rejoined []string
	for _, chunk := range SplitChunks(text) {
		rejoined = append(rejoined, strings.Fields(chunk.Text)...)
	}

	original := strings.Fields(text)
	if len(rejoined) != len(original) {
		t.Fatalf("got %d words after rejoining, want %d", len(rejoined), len(original))
	}
	for i := range original {
		if rejoined[i] != original[i] {
			t.Fatalf("word %d = %q, want %q", i, rejoined[i], original[i])
		}
	}
}

// words builds a synthetic document of n distinct words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}
