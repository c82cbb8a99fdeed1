package conversation

import (
	"strings"
	"testing"
)

const testTemplate = "You are a rice disease assistant. This is report #{report_id}."

func TestBuildPromptSystemBlock(t *testing.T) {
	reportID := 3
	blocks := BuildPrompt(testTemplate, PromptParams{Language: "Vietnamese", ReportID: &reportID}, nil, "hi", nil)

	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	system := blocks[0]
	if system.Role != RoleSystem {
		t.Errorf("expected system role, got %q", system.Role)
	}
	text := system.Parts[0].Text
	if !strings.HasPrefix(text, "IMPORTANT: You must provide your answer in Vietnamese.\n\n") {
		t.Errorf("missing language directive, got %q", text)
	}
	if !strings.Contains(text, "report #03.") {
		t.Errorf("expected zero-padded report id substitution, got %q", text)
	}
}

func TestBuildPromptNilReportIDKeepsPlaceholder(t *testing.T) {
	blocks := BuildPrompt(testTemplate, PromptParams{Language: "English"}, nil, "hi", nil)
	if !strings.Contains(blocks[0].Parts[0].Text, ReportIDPlaceholder) {
		t.Errorf("expected placeholder to stay literal, got %q", blocks[0].Parts[0].Text)
	}
}

func TestBuildPromptEmptyLanguageFallsBack(t *testing.T) {
	blocks := BuildPrompt(testTemplate, PromptParams{}, nil, "hi", nil)
	if !strings.Contains(blocks[0].Parts[0].Text, "in "+DefaultLanguage+".") {
		t.Errorf("expected default language directive, got %q", blocks[0].Parts[0].Text)
	}
}

func TestBuildPromptReplaysHistoryInOrder(t *testing.T) {
	history := []Turn{
		{Role: RoleUser, Content: "first"},
		{Role: RoleModel, Content: "second"},
		{Role: RoleUser, Content: "third"},
	}
	blocks := BuildPrompt(testTemplate, PromptParams{Language: "English"}, history, "fourth", nil)

	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(blocks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if blocks[i+1].Parts[0].Text != want {
			t.Errorf("block %d: expected %q, got %q", i+1, want, blocks[i+1].Parts[0].Text)
		}
	}
	if blocks[4].Parts[0].Text != "fourth" {
		t.Errorf("expected new user block last, got %q", blocks[4].Parts[0].Text)
	}
}

func TestBuildPromptWithImage(t *testing.T) {
	image := &Image{Data: []byte{0xff, 0xd8}, MimeType: "image/jpeg"}
	blocks := BuildPrompt(testTemplate, PromptParams{Language: "English"}, nil, "what is this?", image)

	user := blocks[len(blocks)-1]
	if user.Role != RoleUser {
		t.Fatalf("expected user role, got %q", user.Role)
	}
	if len(user.Parts) != 2 {
		t.Fatalf("expected text + image parts, got %d", len(user.Parts))
	}
	if user.Parts[0].Text != "what is this?" {
		t.Errorf("expected question first, got %q", user.Parts[0].Text)
	}
	if user.Parts[1].MimeType != "image/jpeg" || len(user.Parts[1].Data) == 0 {
		t.Errorf("expected inline image part, got %+v", user.Parts[1])
	}
}

func TestBuildPromptEmptyQuestionStillProducesUserBlock(t *testing.T) {
	blocks := BuildPrompt(testTemplate, PromptParams{Language: "English"}, nil, "", nil)
	user := blocks[len(blocks)-1]
	if user.Role != RoleUser {
		t.Fatalf("expected user block, got %q", user.Role)
	}
	if len(user.Parts) != 1 || user.Parts[0].Text != "" {
		t.Errorf("expected single empty text part, got %+v", user.Parts)
	}
}
