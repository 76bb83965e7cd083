package export

import (
	"strings"
	"testing"

	"github.com/iksnae/deepseek-export/internal"
)

func TestTextRenderer(t *testing.T) {
	chats := sampleChats()
	stats := internal.ExportStats{OriginalChats: 2, OriginalMessages: 2, FilteredChats: 2, FilteredMessages: 2}

	artifact, err := (&TextRenderer{}).Render(chats, "all", nil, stats)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if artifact.MIMEType != "text/plain; charset=utf-8" {
		t.Errorf("MIMEType = %q", artifact.MIMEType)
	}

	out := string(artifact.Content)
	for _, want := range []string{
		"DEEPSEEK CHAT EXPORT",
		"Export type: all",
		"Total chats: 2",
		"Total messages: 2",
		"CHAT: Go questions",
		"👤 USER:",
		"how do goroutines work?",
		"🤖 DEEPSEEK:",
		"They are lightweight threads.",
		"CHAT: Empty chat",
		"End of document",
		"Generated by DeepSeek Exporter",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// No filter flags means no filter section.
	if strings.Contains(out, "FILTER PARAMETERS:") {
		t.Error("filter block rendered without active criteria")
	}

	// Chats are divided by the pin separator, once per boundary.
	if got := strings.Count(out, strings.Repeat("📌", 20)); got != 1 {
		t.Errorf("chat separator count = %d, want 1", got)
	}
}

func TestTextRendererFilterBlock(t *testing.T) {
	criteria := &internal.FilterCriteria{
		SearchText:    "goroutines",
		FilterMode:    internal.FilterModeWholeChat,
		MessageType:   internal.MessageTypeUser,
		CaseSensitive: true,
	}

	artifact, err := (&TextRenderer{}).Render(nil, "filtered", criteria, internal.ExportStats{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(artifact.Content)
	for _, want := range []string{
		"FILTER PARAMETERS:",
		"Mode: Whole chat",
		`Search: "goroutines"`,
		"Message type: User only",
		"Case sensitive: Yes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestTextRendererEmptyContentLabel(t *testing.T) {
	chats := []internal.Chat{{
		ID:    "chat1",
		Title: "sparse",
		Messages: []internal.Message{
			{ID: "m1", Role: internal.RoleUser, Content: ""},
		},
	}}

	artifact, err := (&TextRenderer{}).Render(chats, "all", nil, internal.ExportStats{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(artifact.Content), EmptyContentLabel) {
		t.Errorf("empty message not substituted with %q", EmptyContentLabel)
	}
}
