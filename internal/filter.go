package internal

import "strings"

// FilterResult is the outcome of applying filter criteria to a chat set.
type FilterResult struct {
	Chats []Chat
	Stats ExportStats
}

// FilterChats applies the criteria to the aggregated chat set.
//
// With no search text and message type "all" the input is returned unchanged
// (same backing slice, no copies). Otherwise chats are retained according to
// the filter mode: whole-chat keeps matched chats with all their messages,
// message-only keeps copies holding only the matching messages and drops
// chats that end up empty. Original counts always cover the full input.
func FilterChats(chats []Chat, criteria FilterCriteria) FilterResult {
	if criteria.SearchText == "" && (criteria.MessageType == "" || criteria.MessageType == MessageTypeAll) {
		total := CountMessages(chats)
		return FilterResult{
			Chats: chats,
			Stats: ExportStats{
				OriginalChats:    len(chats),
				OriginalMessages: total,
				FilteredChats:    len(chats),
				FilteredMessages: total,
			},
		}
	}

	searchText := criteria.SearchText
	if !criteria.CaseSensitive {
		searchText = strings.ToLower(searchText)
	}

	mode := criteria.FilterMode
	if mode == "" {
		mode = FilterModeWholeChat
	}

	stats := ExportStats{
		OriginalChats:    len(chats),
		OriginalMessages: CountMessages(chats),
	}

	if mode == FilterModeWholeChat {
		var retained []Chat
		for i := range chats {
			chat := chats[i]
			if chatMatches(chat, searchText, criteria) {
				stats.FilteredMessages += len(chat.Messages)
				retained = append(retained, chat)
			}
		}
		stats.FilteredChats = len(retained)
		return FilterResult{Chats: retained, Stats: stats}
	}

	var retained []Chat
	for i := range chats {
		chat := chats[i]
		var matching []Message
		for _, msg := range chat.Messages {
			if matchesFilter(msg, searchText, criteria) {
				matching = append(matching, msg)
			}
		}
		if len(matching) == 0 {
			continue
		}
		stats.FilteredMessages += len(matching)

		copied := chat
		copied.Messages = matching
		copied.Filtered = true
		copied.OriginalMessageCount = len(chat.Messages)
		copied.FilteredMessageCount = len(matching)
		retained = append(retained, copied)
	}
	stats.FilteredChats = len(retained)
	return FilterResult{Chats: retained, Stats: stats}
}

func chatMatches(chat Chat, searchText string, criteria FilterCriteria) bool {
	for _, msg := range chat.Messages {
		if matchesFilter(msg, searchText, criteria) {
			return true
		}
	}
	return false
}

// matchesFilter reports whether a message passes both active filters. The
// search text must already be case-folded per the criteria.
func matchesFilter(msg Message, searchText string, criteria FilterCriteria) bool {
	if criteria.MessageType != "" && criteria.MessageType != MessageTypeAll {
		if !strings.EqualFold(string(msg.Role), criteria.MessageType) {
			return false
		}
	}

	if criteria.SearchText != "" {
		content := msg.Content
		if !criteria.CaseSensitive {
			content = strings.ToLower(content)
		}
		return strings.Contains(content, searchText)
	}

	return true
}
