package gemini

import "testing"

func TestSplitPair(t *testing.T) {
	a, b, ok := splitPair("Großartig!||| Hallo {user_mention}! ")
	if !ok {
		t.Fatal("expected pair to parse")
	}
	if a != "Großartig!" {
		t.Errorf("unexpected first part: %q", a)
	}
	if b != "Hallo {user_mention}!" {
		t.Errorf("unexpected second part: %q", b)
	}
}

func TestSplitPairWrongPartCount(t *testing.T) {
	if _, _, ok := splitPair("no separator at all"); ok {
		t.Error("expected parse failure without separator")
	}
	if _, _, ok := splitPair("a|||b|||c"); ok {
		t.Error("expected parse failure with three parts")
	}
}
