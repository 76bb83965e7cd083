package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/iksnae/deepseek-export/internal"
)

// TextRenderer produces the plain-text artifact with a deterministic section
// layout: header, optional filter parameters, stats, then one section per
// chat in the already-sorted order.
type TextRenderer struct{}

func (r *TextRenderer) Render(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats) (Artifact, error) {
	var b strings.Builder
	now := time.Now().Format("2006-01-02 15:04:05")

	b.WriteString("DEEPSEEK CHAT EXPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&b, "Export date: %s\n", now)
	fmt.Fprintf(&b, "Export type: %s\n\n", kind)

	if criteria.Active() {
		b.WriteString("FILTER PARAMETERS:\n")
		b.WriteString(strings.Repeat("-", 30) + "\n")
		fmt.Fprintf(&b, "Mode: %s\n", FilterModeLabel(criteria.FilterMode))
		search := criteria.SearchText
		if search == "" {
			search = "not set"
		}
		fmt.Fprintf(&b, "Search: %q\n", search)
		fmt.Fprintf(&b, "Message type: %s\n", MessageTypeLabel(criteria.MessageType))
		fmt.Fprintf(&b, "Case sensitive: %s\n\n", yesNo(criteria.CaseSensitive))
	}

	b.WriteString("EXPORT STATS:\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "Total chats: %d\n", stats.FilteredChats)
	fmt.Fprintf(&b, "Total messages: %d\n\n", stats.FilteredMessages)

	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i := range chats {
		chat := &chats[i]
		fmt.Fprintf(&b, "CHAT: %s\n", chat.Title)
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Created: %s\n", formatTime(chat.CreateTime))
		fmt.Fprintf(&b, "Messages: %d\n\n", len(chat.Messages))

		for _, msg := range chat.Messages {
			fmt.Fprintf(&b, "%s:\n", RoleLabel(msg.Role))
			fmt.Fprintf(&b, "%s\n\n", contentOrLabel(msg.Content))
			b.WriteString(strings.Repeat("―", 30) + "\n\n")
		}

		if i < len(chats)-1 {
			b.WriteString(strings.Repeat("📌", 20) + "\n\n")
		}
	}

	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("End of document\n")
	fmt.Fprintf(&b, "Generated by DeepSeek Exporter • %s\n", now)

	return Artifact{
		Format:   r.Format(),
		Filename: Filename(kind, "txt", criteria),
		MIMEType: "text/plain; charset=utf-8",
		Content:  []byte(b.String()),
	}, nil
}

func (r *TextRenderer) Format() string {
	return "txt"
}
