package pipeline

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// sentenceSeparators are tried in order when no paragraph break is
// available inside the window.
var sentenceSeparators = []string{". ", "! ", "? ", "\n"}

// RecursiveChunker creates a chunker that splits text into chunks of at
// most maxChunkSize characters, preferring to break at paragraph
// boundaries, then sentence boundaries, then word boundaries, and only as
// a last resort at an arbitrary character. Each chunk after the first
// starts with the last overlap characters of the preceding chunk, so
// context spanning a split point is present in both chunks.
func RecursiveChunker(maxChunkSize int, overlap int) ChunkFunc {
	return func(text string) ([]string, error) {
		if maxChunkSize <= 0 {
			return nil, fmt.Errorf("max chunk size must be positive")
		}
		if overlap < 0 || overlap >= maxChunkSize {
			return nil, fmt.Errorf("overlap must be non-negative and smaller than max chunk size")
		}

		// Handle empty or whitespace-only text
		if strings.TrimSpace(text) == "" {
			return []string{}, nil
		}

		var chunks []string
		start := 0

		for start < len(text) {
			end := start + maxChunkSize
			if end >= len(text) {
				chunks = append(chunks, text[start:])
				break
			}

			end = splitPoint(text, start, end)
			chunks = append(chunks, text[start:end])

			next := runeStart(text, end-overlap)
			if next <= start {
				// Window too small to carry the full overlap, advance anyway.
				next = end
			}
			start = next
		}

		return chunks, nil
	}
}

// splitPoint picks the best break position in text[start:end]. A boundary
// is only accepted in the second half of the window, so chunks never
// shrink below half the configured size.
func splitPoint(text string, start int, end int) int {
	window := text[start:end]
	floor := len(window) / 2

	if idx := strings.LastIndex(window, "\n\n"); idx >= 0 && idx+2 > floor {
		return start + idx + 2
	}

	best := -1
	for _, sep := range sentenceSeparators {
		if idx := strings.LastIndex(window, sep); idx >= 0 && idx+len(sep) > floor && idx+len(sep) > best {
			best = idx + len(sep)
		}
	}
	if best > 0 {
		return start + best
	}

	if idx := strings.LastIndex(window, " "); idx >= 0 && idx+1 > floor {
		return start + idx + 1
	}

	// Arbitrary cut, moved back so it never lands inside a rune.
	if cut := runeStart(text, end); cut > start {
		return cut
	}
	return end
}

// runeStart backs pos off to the nearest rune boundary at or before it.
func runeStart(text string, pos int) int {
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

// ParagraphChunker creates a chunker that splits text at blank lines,
// one paragraph per chunk, without a size bound.
func ParagraphChunker() ChunkFunc {
	return func(text string) ([]string, error) {
		paragraphs := strings.Split(text, "\n\n")

		chunks := make([]string, 0, len(paragraphs))
		for _, para := range paragraphs {
			para = strings.TrimSpace(para)
			if para == "" {
				continue
			}
			chunks = append(chunks, para)
		}

		return chunks, nil
	}
}
