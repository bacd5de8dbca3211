package corpus

import (
	"regexp"
	"strings"
)

// sentenceBoundary matches sentence-terminal punctuation followed by
// whitespace. The terminal punctuation stays with the preceding sentence.
var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Sentences splits chunk text into sentences on terminal punctuation
// (".", "!", "?") followed by whitespace. Each sentence is trimmed of
// surrounding whitespace; sentences that are empty after trimming are
// dropped.
//
// This is a punctuation heuristic, not a grammar-aware segmenter:
// abbreviations ("Dr. Smith") and decimal-then-space sequences can produce
// spurious splits. Callers relying on exact sentence boundaries should treat
// the output as best-effort.
func Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// loc[0] is the punctuation rune; keep it with the sentence.
		end := loc[0] + 1
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
