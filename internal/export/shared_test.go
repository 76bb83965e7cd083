package export

import (
	"strings"
	"testing"

	"github.com/iksnae/deepseek-export/internal"
)

func TestSlugifySearch(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"forbidden chars and whitespace runs", "a/b:c  d", "abc-d"},
		{"plain word", "golang", "golang"},
		{"truncated to thirty characters", strings.Repeat("x", 40), strings.Repeat("x", 30)},
		{"windows reserved characters", `<>:"/\|?*`, ""},
		{"tabs and newlines collapse", "a\t\nb", "a-b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugifySearch(tt.text); got != tt.want {
				t.Errorf("SlugifySearch(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	t.Run("no criteria", func(t *testing.T) {
		got := Filename("all", "json", nil)
		if !strings.HasPrefix(got, "deepseek-all-") || !strings.HasSuffix(got, ".json") {
			t.Errorf("Filename = %q", got)
		}
	})

	t.Run("whole-chat search uses full prefix", func(t *testing.T) {
		criteria := &internal.FilterCriteria{SearchText: "a/b:c  d", FilterMode: internal.FilterModeWholeChat}
		got := Filename("filtered", "txt", criteria)
		if !strings.HasPrefix(got, "deepseek-full-abc-d-") || !strings.HasSuffix(got, ".txt") {
			t.Errorf("Filename = %q", got)
		}
	})

	t.Run("message-only search uses filtered prefix", func(t *testing.T) {
		criteria := &internal.FilterCriteria{SearchText: "hello", FilterMode: internal.FilterModeMessageOnly}
		got := Filename("filtered", "md", criteria)
		if !strings.HasPrefix(got, "deepseek-filtered-hello-") {
			t.Errorf("Filename = %q", got)
		}
	})

	t.Run("criteria without search text keeps kind", func(t *testing.T) {
		criteria := &internal.FilterCriteria{MessageType: internal.MessageTypeUser}
		got := Filename("all", "doc", criteria)
		if !strings.HasPrefix(got, "deepseek-all-") {
			t.Errorf("Filename = %q", got)
		}
	})
}

func TestRoleLabel(t *testing.T) {
	if got := RoleLabel(internal.RoleUser); got != "👤 USER" {
		t.Errorf("RoleLabel(user) = %q", got)
	}
	if got := RoleLabel(internal.RoleAssistant); got != "🤖 DEEPSEEK" {
		t.Errorf("RoleLabel(assistant) = %q", got)
	}
}

func TestFilterModeLabel(t *testing.T) {
	if got := FilterModeLabel(internal.FilterModeWholeChat); got != "Whole chat" {
		t.Errorf("FilterModeLabel(whole-chat) = %q", got)
	}
	if got := FilterModeLabel(internal.FilterModeMessageOnly); got != "Messages only" {
		t.Errorf("FilterModeLabel(message-only) = %q", got)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"plain text", "plain text"},
		{"*bold*", `\*bold\*`},
		{"a_b", `a\_b`},
		{"`code`", "\\`code\\`"},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeMarkdown(tt.text); got != tt.want {
			t.Errorf("escapeMarkdown(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(0); got != "Unknown date" {
		t.Errorf("formatTime(0) = %q", got)
	}
	if got := formatTime(1700000000000); got == "Unknown date" || got == "" {
		t.Errorf("formatTime(ms) = %q", got)
	}
}

func TestNewRenderer(t *testing.T) {
	for _, format := range Formats {
		r, err := NewRenderer(format)
		if err != nil {
			t.Fatalf("NewRenderer(%q) error = %v", format, err)
		}
		if r.Format() != format {
			t.Errorf("Format() = %q, want %q", r.Format(), format)
		}
	}

	r, err := NewRenderer("md")
	if err != nil {
		t.Fatalf("NewRenderer(md) error = %v", err)
	}
	if r.Format() != "markdown" {
		t.Errorf("md alias Format() = %q, want markdown", r.Format())
	}

	if _, err := NewRenderer("pdf"); err == nil {
		t.Error("NewRenderer(pdf) should fail")
	}
}
