package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/iksnae/deepseek-export/internal"
)

// Server-busy sentinels, one variant per locale. Messages containing either
// are excluded from this renderer only; the other formats keep them.
const (
	busySentinelEN = "The server is busy. Please try again later."
	busySentinelRU = "Сервер перегружен"
)

// DocRenderer produces a self-contained styled HTML document served with a
// word-processor MIME type. User content is HTML-escaped; assistant content
// gets lightweight inline formatting (code blocks, inline code, line breaks).
type DocRenderer struct{}

const docStyles = `        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            margin: 0 auto;
            padding: 20px;
            background: white;
            color: #1f2937;
            font-size: 14px;
            max-width: 900px;
        }
        .container { width: 100%; margin: 0 auto; }
        .header {
            margin-bottom: 30px;
            padding-bottom: 20px;
            border-bottom: 2px solid #e5e7eb;
            text-align: center;
        }
        .chat-section { margin-bottom: 40px; page-break-inside: avoid; }
        .message-container {
            margin: 20px 0;
            display: flex;
            align-items: flex-start;
            clear: both;
            width: 100%;
        }
        .user-message { justify-content: flex-end; }
        .assistant-message { justify-content: flex-start; }
        .message-avatar {
            width: 36px;
            height: 36px;
            border-radius: 8px;
            text-align: center;
            line-height: 36px;
            font-size: 14px;
            font-weight: bold;
            flex-shrink: 0;
            margin: 0 12px;
        }
        .avatar-user { background: #10a37f; color: white; }
        .avatar-assistant { background: #6b7280; color: white; }
        .message-content {
            position: relative;
            padding: 12px 16px;
            border-radius: 12px;
            line-height: 1.5;
            white-space: pre-wrap;
            word-wrap: break-word;
            font-family: inherit;
            text-align: left;
            max-width: 70%;
        }
        .content-user {
            background: #b7c8fe;
            color: #1f2937;
            border-bottom-right-radius: 4px;
        }
        .content-assistant {
            background: transparent;
            color: #1f2937;
            border-bottom-left-radius: 4px;
            max-width: 85% !important;
            border-left: 3px solid #10a37f;
            padding-left: 20px;
            margin-left: 0;
        }
        .assistant-text { font-family: inherit; line-height: 1.6; }
        .code-block {
            background: #f8f9fa;
            border: 1px solid #e5e7eb;
            border-radius: 8px;
            padding: 16px;
            margin: 12px 0;
            overflow-x: auto;
            font-family: 'Courier New', Monaco, Menlo, monospace;
            font-size: 13px;
            line-height: 1.4;
            color: #1f2937;
        }
        .inline-code {
            background: #f3f4f6;
            padding: 2px 6px;
            border-radius: 4px;
            font-family: 'Courier New', Monaco, Menlo, monospace;
            font-size: 13px;
            color: #dc2626;
        }
        .metadata {
            font-size: 14px;
            color: #6b7280;
            margin-bottom: 20px;
            padding: 16px;
            background: #f9fafb;
            border-radius: 8px;
            border-left: 4px solid #10a37f;
        }
        .chat-header {
            margin-bottom: 20px;
            padding-bottom: 15px;
            border-bottom: 1px solid #e5e7eb;
        }
        .chat-title {
            font-size: 20px;
            font-weight: 600;
            color: #1f2937;
            margin-bottom: 8px;
            text-decoration: none;
            display: block;
        }
        .chat-link { font-size: 12px; color: #6b7280; word-break: break-all; }
        .separator { height: 1px; background: #e5e7eb; margin: 30px 0; }
        @media print {
            body { padding: 10px; }
            .chat-section { page-break-inside: avoid; }
            .message-container { page-break-inside: avoid; }
        }`

func (r *DocRenderer) Render(chats []internal.Chat, kind string, criteria *internal.FilterCriteria, stats internal.ExportStats) (Artifact, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"UTF-8\">\n    <style>\n")
	b.WriteString(docStyles)
	b.WriteString("\n    </style>\n</head>\n<body>\n    <div class=\"container\">\n")

	b.WriteString("        <div class=\"header\">\n")
	b.WriteString("            <h1 style=\"font-size: 28px; margin-bottom: 12px; color: #10a37f;\">DeepSeek Chat Export</h1>\n")
	fmt.Fprintf(&b, "            <div class=\"metadata\">\n                <strong>Export date:</strong> %s • \n                <strong>Chats:</strong> %d • \n                <strong>Messages:</strong> %d\n            </div>\n",
		time.Now().Format("2006-01-02 15:04:05"), stats.FilteredChats, stats.FilteredMessages)

	if criteria.Active() {
		search := criteria.SearchText
		if search == "" {
			search = "not set"
		}
		fmt.Fprintf(&b, "            <div class=\"metadata\">\n                <strong>Filter parameters:</strong><br>\n                • Mode: %s<br>\n                • Search: %q<br>\n                • Message type: %s<br>\n                • Case sensitive: %s\n            </div>\n",
			FilterModeLabel(criteria.FilterMode), html.EscapeString(search),
			MessageTypeLabel(criteria.MessageType), yesNo(criteria.CaseSensitive))
	}
	b.WriteString("        </div>\n")

	rendered := 0
	for i := range chats {
		chat := &chats[i]
		messages := dropBusyMessages(chat.Messages)
		if len(messages) == 0 {
			continue
		}
		if rendered > 0 {
			b.WriteString("        <div class=\"separator\"></div>\n")
		}
		rendered++

		b.WriteString("        <div class=\"chat-section\">\n")
		b.WriteString("            <div class=\"chat-header\">\n                <div>\n")
		fmt.Fprintf(&b, "                    <a href=%q target=\"_blank\" class=\"chat-title\">%s</a>\n", chat.URL, html.EscapeString(chat.Title))
		fmt.Fprintf(&b, "                    <div class=\"chat-link\">%s</div>\n", html.EscapeString(chat.URL))
		b.WriteString("                </div>\n            </div>\n")
		fmt.Fprintf(&b, "            <div class=\"metadata\">\n                <strong>Created:</strong> %s • \n                <strong>Messages:</strong> %d\n            </div>\n",
			formatTime(chat.CreateTime), len(messages))

		for _, msg := range messages {
			isUser := msg.Role == internal.RoleUser
			avatarClass, contentClass, messageClass, avatarSymbol := "avatar-assistant", "content-assistant", "assistant-message", "AI"
			if isUser {
				avatarClass, contentClass, messageClass, avatarSymbol = "avatar-user", "content-user", "user-message", "U"
			}

			content := contentOrLabel(msg.Content)
			if isUser {
				content = strings.ReplaceAll(html.EscapeString(content), "\n", "<br>")
			} else {
				content = formatAssistantContent(content)
			}

			fmt.Fprintf(&b, "            <div class=\"message-container %s\">\n                <div class=\"message-avatar %s\">%s</div>\n                <div class=\"message-content %s\">%s</div>\n            </div>\n",
				messageClass, avatarClass, avatarSymbol, contentClass, content)
		}

		b.WriteString("        </div>\n")
	}

	b.WriteString("    </div>\n</body>\n</html>\n")

	return Artifact{
		Format:   r.Format(),
		Filename: Filename(kind, "doc", criteria),
		MIMEType: "application/msword",
		Content:  []byte(b.String()),
	}, nil
}

// dropBusyMessages filters out server-busy placeholder messages.
func dropBusyMessages(messages []internal.Message) []internal.Message {
	kept := make([]internal.Message, 0, len(messages))
	for _, msg := range messages {
		if strings.Contains(msg.Content, busySentinelEN) ||
			strings.Contains(msg.Content, busySentinelRU) {
			continue
		}
		kept = append(kept, msg)
	}
	return kept
}

// formatAssistantContent applies lightweight inline formatting to assistant
// messages: fenced code blocks, inline code spans, and visual line breaks.
func formatAssistantContent(content string) string {
	formatted := html.EscapeString(content)

	formatted = fencedCode.ReplaceAllStringFunc(formatted, func(match string) string {
		groups := fencedCode.FindStringSubmatch(match)
		return `<div class="code-block">` + strings.TrimSpace(groups[2]) + `</div>`
	})

	formatted = inlineCode.ReplaceAllString(formatted, `<code class="inline-code">$1</code>`)
	formatted = strings.ReplaceAll(formatted, "\n", "<br>")

	return `<div class="assistant-text">` + formatted + `</div>`
}

func (r *DocRenderer) Format() string {
	return "doc"
}
