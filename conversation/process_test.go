package conversation

import (
	"context"
	"errors"
	"testing"
)

type stubBackend struct {
	text   string
	err    error
	calls  int
	blocks []Block
}

func (b *stubBackend) Generate(_ context.Context, blocks []Block) (string, error) {
	b.calls++
	b.blocks = blocks
	return b.text, b.err
}

func TestProcessAppendsExchange(t *testing.T) {
	backend := &stubBackend{text: "It looks like Blast disease."}
	state := State{
		History: []Turn{
			{Role: RoleUser, Content: "(Image attached)"},
			{Role: RoleModel, Content: "Report 01"},
			{Role: RoleUser, Content: "Is it treatable?"},
			{Role: RoleModel, Content: "Yes."},
			{Role: RoleUser, Content: "Thanks"},
			{Role: RoleModel, Content: "You're welcome."},
		},
		Language:      "English",
		ReportCounter: 1,
	}
	reportID := 2
	in := Input{
		Question: "What disease is this?",
		Image:    &Image{Data: []byte{0x89}, MimeType: "image/jpeg"},
		Language: "English",
		ReportID: &reportID,
	}

	next, outcome := Process(context.Background(), state, in, testTemplate, backend)

	if backend.calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", backend.calls)
	}
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if outcome.Text != "It looks like Blast disease." {
		t.Errorf("unexpected text: %q", outcome.Text)
	}
	if len(next.History) != 8 {
		t.Fatalf("expected 8 history entries, got %d", len(next.History))
	}
	userEntry := next.History[6]
	if userEntry.Role != RoleUser || userEntry.Content != "What disease is this?\n(Image attached)" {
		t.Errorf("unexpected user entry: %+v", userEntry)
	}
	assistantEntry := next.History[7]
	if assistantEntry.Role != RoleModel || assistantEntry.Content != "It looks like Blast disease." {
		t.Errorf("unexpected assistant entry: %+v", assistantEntry)
	}

	// Original state is untouched.
	if len(state.History) != 6 {
		t.Errorf("input state mutated, history now %d entries", len(state.History))
	}
}

func TestProcessBackendFailureRecordsFallback(t *testing.T) {
	backend := &stubBackend{err: errors.New("connection reset")}
	state := NewState()

	next, outcome := Process(context.Background(), state, Input{Question: "hello", Language: "English"}, testTemplate, backend)

	if outcome.Err == nil {
		t.Fatal("expected outcome to carry the backend error")
	}
	if outcome.Text != FallbackText {
		t.Errorf("expected fallback text, got %q", outcome.Text)
	}
	if len(next.History) != 2 {
		t.Fatalf("expected history to advance by 2, got %d entries", len(next.History))
	}
	if next.History[1].Content != FallbackText {
		t.Errorf("expected fallback as assistant turn, got %q", next.History[1].Content)
	}
}

func TestProcessImageWithoutCaption(t *testing.T) {
	backend := &stubBackend{text: "Report"}
	next, _ := Process(context.Background(), NewState(), Input{
		Image:    &Image{Data: []byte{1}, MimeType: "image/png"},
		Language: "English",
	}, testTemplate, backend)

	if next.History[0].Content != ImageAttachedMarker {
		t.Errorf("expected marker alone, got %q", next.History[0].Content)
	}
}

func TestProcessTextTurnKeepsQuestionVerbatim(t *testing.T) {
	backend := &stubBackend{text: "Answer"}
	next, _ := Process(context.Background(), NewState(), Input{
		Question: "How do I prevent Blast?",
		Language: "English",
	}, testTemplate, backend)

	if next.History[0].Content != "How do I prevent Blast?" {
		t.Errorf("unexpected user entry: %q", next.History[0].Content)
	}
}
