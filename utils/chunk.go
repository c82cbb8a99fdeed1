package utils

import (
	"strings"
	"unicode"
)

// SplitMessage splits text into chunks of at most maxLen characters, cutting
// on paragraph boundaries first and whitespace second. Lengths are counted
// in runes, not bytes, so scripts like Khmer fill the full transport limit
// and a hard cut never lands inside a character. Paragraphs that share a
// chunk are rejoined with a blank line. A run longer than maxLen without any
// whitespace is hard-cut at exactly maxLen. Empty input yields no chunks;
// callers show their own "nothing to show" message instead.
func SplitMessage(text string, maxLen int) []string {
	if text == "" {
		return nil
	}

	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = nil
		}
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		runes := []rune(paragraph)
		for len(runes) > maxLen {
			flush()
			splitPos := lastSpace(runes[:maxLen])
			if splitPos == -1 {
				splitPos = maxLen
			}
			chunks = append(chunks, string(runes[:splitPos]))
			runes = trimLeadingSpace(runes[splitPos:])
		}

		if len(current)+len(runes)+2 > maxLen {
			flush()
			current = runes
		} else {
			if len(current) > 0 {
				current = append(current, '\n', '\n')
			}
			current = append(current, runes...)
		}
	}

	flush()
	return chunks
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

func trimLeadingSpace(runes []rune) []rune {
	for len(runes) > 0 && unicode.IsSpace(runes[0]) {
		runes = runes[1:]
	}
	return runes
}
