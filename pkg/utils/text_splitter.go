package utils

import (
	"strings"
	"unicode"
)

// SplitText splits a long string into chunks of approximately chunkSize runes,
// repeating overlap runes at each boundary to preserve context. A chunk ends
// at the last whitespace in its second half when there is one, so words are
// not cut in half. Text that fits in one chunk is returned unchanged.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)
	if chunkSize <= 0 || totalLen <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var chunks []string
	for start := 0; start < totalLen; {
		end := start + chunkSize
		if end >= totalLen {
			end = totalLen
		} else {
			end = breakPoint(runes, start, end)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == totalLen {
			break
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

func breakPoint(runes []rune, start, end int) int {
	min := start + (end-start)/2
	for i := end; i > min; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
