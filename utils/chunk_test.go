package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessageEmpty(t *testing.T) {
	if chunks := SplitMessage("", 4096); len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestSplitMessageShortText(t *testing.T) {
	chunks := SplitMessage("hello world", 4096)
	if len(chunks) != 1 || chunks[0] != "hello world" {
		t.Fatalf("expected single untouched chunk, got %q", chunks)
	}
}

func TestSplitMessageKeepsParagraphsTogether(t *testing.T) {
	text := "first paragraph\n\nsecond paragraph"
	chunks := SplitMessage(text, 4096)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("expected paragraphs rejoined with blank line, got %q", chunks[0])
	}
}

func TestSplitMessageFlushesBeforeOversizedJoin(t *testing.T) {
	a := strings.Repeat("a", 30)
	b := strings.Repeat("b", 30)
	chunks := SplitMessage(a+"\n\n"+b, 40)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != a || chunks[1] != b {
		t.Errorf("expected paragraphs in separate chunks, got %q", chunks)
	}
}

func TestSplitMessageLongParagraphCutsAtWhitespace(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 1800)) // 8999 chars, one paragraph
	chunks := SplitMessage(text, 4096)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 4096 {
			t.Errorf("chunk %d exceeds limit: %d chars", i, len(chunk))
		}
		if strings.HasPrefix(chunk, " ") || strings.HasSuffix(chunk, " ") {
			t.Errorf("chunk %d has ragged whitespace: %q...", i, chunk[:10])
		}
	}

	// Nothing lost: concatenating the words reproduces the input.
	rejoined := strings.Join(chunks, " ")
	if rejoined != text {
		t.Error("chunks do not reassemble into the original text")
	}
}

func TestSplitMessageHardCutWithoutWhitespace(t *testing.T) {
	chunks := SplitMessage(strings.Repeat("a", 10), 4)
	want := []string{"aaaa", "aaaa", "aa"}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestSplitMessageCutsOnRuneBoundaries(t *testing.T) {
	// Khmer output has no ASCII spaces, so the hard-cut path must never
	// land inside a rune.
	text := strings.Repeat("ក", 5000)
	chunks := SplitMessage(text, 4096)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Errorf("chunk %d is not valid UTF-8", i)
		}
		if n := utf8.RuneCountInString(chunk); n > 4096 {
			t.Errorf("chunk %d has %d characters, want at most 4096", i, n)
		}
	}
	if chunks[0]+chunks[1] != text {
		t.Error("chunks do not reassemble into the original text")
	}
}

func TestSplitMessageCountsCharactersNotBytes(t *testing.T) {
	word := strings.Repeat("នំ", 1000) // 2000 runes, 6000 bytes
	text := word + " " + word + " " + word

	chunks := SplitMessage(text, 4096)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if n := utf8.RuneCountInString(chunks[0]); n != 4001 {
		t.Errorf("expected the first two words in one chunk (4001 characters), got %d", n)
	}
	if len(chunks[0]) <= 4096 {
		t.Errorf("expected the first chunk to exceed 4096 bytes while staying under the character limit, got %d bytes", len(chunks[0]))
	}
	if chunks[1] != word {
		t.Error("expected the last word alone in the final chunk")
	}
}

func TestSplitMessageFirstChunkNeverEmpty(t *testing.T) {
	chunks := SplitMessage("\n\nleading blank paragraph", 4096)
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}
	if chunks[0] == "" {
		t.Error("first chunk is empty for non-empty input")
	}
}
