package utils

import (
	"strings"
	"unicode"
)

// SplitText cuts text into chunks of at most chunkSize runes, each chunk
// overlapping the previous one by overlap runes. A cut is moved back to the
// last whitespace of the chunk when there is one in its second half.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if chunkSize <= 0 || len(runes) <= chunkSize {
		return []string{text}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}

	var chunks []string
	for start := 0; start < len(runes); {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		end = breakPoint(runes, start, end)
		chunks = append(chunks, string(runes[start:end]))

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// Truncate returns text cut to at most max runes on a word boundary, with an
// ellipsis appended when something was dropped. Paragraph breaks are
// preferred as cut points.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if max <= 0 || len(runes) <= max {
		return text
	}

	head := string(runes[:max])
	if i := strings.LastIndex(head, "\n\n"); i > len(head)/2 {
		return strings.TrimRightFunc(head[:i], unicode.IsSpace) + "\n\n…"
	}
	end := breakPoint(runes, 0, max)
	return strings.TrimRightFunc(string(runes[:end]), unicode.IsSpace) + "…"
}

func breakPoint(runes []rune, start, end int) int {
	for i := end; i > start+(end-start)/2; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i
		}
	}
	return end
}
