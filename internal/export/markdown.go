package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/iksnae/deepseek-export/internal"
)

// MarkdownRenderer produces the markup artifact: one heading per chat, one
// sub-heading per message, with markdown control characters escaped.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats) (Artifact, error) {
	var b strings.Builder

	b.WriteString("# DeepSeek Chat Export\n\n")
	fmt.Fprintf(&b, "**Export date:** %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Export type:** %s\n", kind)

	if criteria != nil {
		fmt.Fprintf(&b, "**Filter mode:** %s\n", FilterModeLabel(criteria.FilterMode))
		fmt.Fprintf(&b, "**Search query:** %q\n", criteria.SearchText)
		fmt.Fprintf(&b, "**Message type:** %s\n", MessageTypeLabel(criteria.MessageType))
		fmt.Fprintf(&b, "**Case sensitive:** %s\n", yesNo(criteria.CaseSensitive))
	}

	fmt.Fprintf(&b, "**Stats:** Chats: %d | Messages: %d\n\n", stats.FilteredChats, stats.FilteredMessages)
	b.WriteString("---\n\n")

	for i := range chats {
		chat := &chats[i]
		fmt.Fprintf(&b, "## %s\n\n", chat.Title)
		fmt.Fprintf(&b, "**Created:** %s  \n", formatTime(chat.CreateTime))
		fmt.Fprintf(&b, "**Messages:** %d\n\n", len(chat.Messages))

		for _, msg := range chat.Messages {
			fmt.Fprintf(&b, "### %s\n\n", markdownRoleLabel(msg.Role))
			fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(contentOrLabel(msg.Content)))
			b.WriteString("---\n\n")
		}

		b.WriteString("\\newpage\n\n")
	}

	return Artifact{
		Format:   r.Format(),
		Filename: Filename(kind, "md", criteria),
		MIMEType: "text/markdown; charset=utf-8",
		Content:  []byte(b.String()),
	}, nil
}

func markdownRoleLabel(role internal.Role) string {
	if role == internal.RoleUser {
		return "👤 **USER**"
	}
	return "🤖 **DEEPSEEK**"
}

func (r *MarkdownRenderer) Format() string {
	return "markdown"
}
