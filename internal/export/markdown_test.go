package export

import (
	"strings"
	"testing"

	"github.com/iksnae/deepseek-export/internal"
)

func TestMarkdownRenderer(t *testing.T) {
	chats := sampleChats()
	stats := internal.ExportStats{FilteredChats: 2, FilteredMessages: 2}

	artifact, err := (&MarkdownRenderer{}).Render(chats, "all", nil, stats)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if artifact.MIMEType != "text/markdown; charset=utf-8" {
		t.Errorf("MIMEType = %q", artifact.MIMEType)
	}
	if !strings.HasSuffix(artifact.Filename, ".md") {
		t.Errorf("Filename = %q", artifact.Filename)
	}

	out := string(artifact.Content)
	for _, want := range []string{
		"# DeepSeek Chat Export",
		"**Export type:** all",
		"**Stats:** Chats: 2 | Messages: 2",
		"## Go questions",
		"### 👤 **USER**",
		"### 🤖 **DEEPSEEK**",
		"## Empty chat",
		"\\newpage",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	// No criteria pointer, no filter metadata.
	if strings.Contains(out, "**Filter mode:**") {
		t.Error("filter metadata rendered without criteria")
	}
}

func TestMarkdownRendererEscapesContent(t *testing.T) {
	chats := []internal.Chat{{
		ID:    "chat1",
		Title: "markup",
		Messages: []internal.Message{
			{ID: "m1", Role: internal.RoleUser, Content: "use *stars* and _underscores_"},
		},
	}}

	artifact, err := (&MarkdownRenderer{}).Render(chats, "all", nil, internal.ExportStats{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(artifact.Content)
	if !strings.Contains(out, `use \*stars\* and \_underscores\_`) {
		t.Errorf("content not escaped:\n%s", out)
	}
}

func TestMarkdownRendererFilterMetadata(t *testing.T) {
	criteria := &internal.FilterCriteria{
		SearchText:  "stars",
		FilterMode:  internal.FilterModeMessageOnly,
		MessageType: internal.MessageTypeAssistant,
	}

	artifact, err := (&MarkdownRenderer{}).Render(nil, "filtered", criteria, internal.ExportStats{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := string(artifact.Content)
	for _, want := range []string{
		"**Filter mode:** Messages only",
		`**Search query:** "stars"`,
		"**Message type:** Assistant only",
		"**Case sensitive:** No",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
