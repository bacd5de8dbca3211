package corpus

import "strings"

// ChunkWords is the window size, in whitespace-delimited words, used when
// splitting a document body into chunks.
const ChunkWords = 400

// SplitChunks splits text into consecutive windows of at most ChunkWords
// words, in source order and without overlap. The final chunk may hold fewer
// than ChunkWords words. Blank input yields no chunks. Windows are cut on
// word boundaries only, so concatenating the chunks' words reproduces the
// original word sequence exactly.
func SplitChunks(text string) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(words)+ChunkWords-1)/ChunkWords)
	for start := 0; start < len(words); start += ChunkWords {
		end := start + ChunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, Chunk{Text: strings.Join(words[start:end], " ")})
	}
	return chunks
}
