package export

import (
	"regexp"
	"time"

	"github.com/iksnae/deepseek-export/internal"
)

// EmptyContentLabel is rendered in place of blank message content, identical
// across formats.
const EmptyContentLabel = "(empty message)"

var (
	forbiddenChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	markdownChars  = regexp.MustCompile("([*_`~\\\\])")
	fencedCode     = regexp.MustCompile("(?s)```(\\w+)?\n(.*?)```")
	inlineCode     = regexp.MustCompile("`([^`]+)`")
)

// Filename builds the artifact filename: deepseek-{kind}-{date}.{ext}, or
// with an active search filter deepseek-{full|filtered}-{slug}-{date}.{ext}.
func Filename(kind, ext string, criteria *internal.FilterCriteria) string {
	date := time.Now().Format("2006-01-02")

	if criteria != nil && criteria.SearchText != "" {
		mode := "filtered"
		if criteria.FilterMode == internal.FilterModeWholeChat {
			mode = "full"
		}
		return "deepseek-" + mode + "-" + SlugifySearch(criteria.SearchText) + "-" + date + "." + ext
	}

	return "deepseek-" + kind + "-" + date + "." + ext
}

// SlugifySearch turns search text into a filename-safe slug: the first 30
// characters with filesystem-forbidden characters stripped and whitespace
// runs collapsed to a hyphen.
func SlugifySearch(text string) string {
	runes := []rune(text)
	if len(runes) > 30 {
		text = string(runes[:30])
	}
	text = forbiddenChars.ReplaceAllString(text, "")
	return whitespaceRuns.ReplaceAllString(text, "-")
}

// RoleLabel returns the display label for a message role.
func RoleLabel(role internal.Role) string {
	if role == internal.RoleUser {
		return "👤 USER"
	}
	return "🤖 DEEPSEEK"
}

// MessageTypeLabel returns the display label for a message-type filter.
func MessageTypeLabel(messageType string) string {
	switch messageType {
	case internal.MessageTypeAll:
		return "All messages"
	case internal.MessageTypeUser:
		return "User only"
	case internal.MessageTypeAssistant:
		return "Assistant only"
	default:
		return messageType
	}
}

// FilterModeLabel returns the display label for a filter mode.
func FilterModeLabel(mode string) string {
	if mode == internal.FilterModeWholeChat {
		return "Whole chat"
	}
	return "Messages only"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// contentOrLabel substitutes the shared placeholder for empty content.
func contentOrLabel(content string) string {
	if content == "" {
		return EmptyContentLabel
	}
	return content
}

// formatTime renders a millisecond timestamp for human-readable formats.
func formatTime(ms int64) string {
	if ms == 0 {
		return "Unknown date"
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

// escapeMarkdown escapes markdown control characters with a backslash.
func escapeMarkdown(text string) string {
	return markdownChars.ReplaceAllString(text, `\$1`)
}
