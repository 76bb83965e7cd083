package internal

// RawRecord is one decoded entry from the history-message store. The shape is
// only probabilistically known, so it stays an untyped map and all field
// access goes through the normalizer's extraction strategies.
type RawRecord map[string]any

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Filter modes.
const (
	FilterModeWholeChat   = "whole-chat"
	FilterModeMessageOnly = "message-only"
)

// Message type filters.
const (
	MessageTypeAll       = "all"
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
)

// Sort orders.
const (
	SortNewestFirst = "newest-first"
	SortOldestFirst = "oldest-first"
)

// Message is a normalized chat message. Content is never empty for a stored
// message; candidates without content are dropped during normalization.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// Chat is a normalized conversation with time-ordered messages.
//
// The underscore-prefixed fields are only set on copies produced by the
// filter engine in message-only mode, matching the exported JSON shape.
type Chat struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	URL                  string    `json:"url"`
	CreateTime           int64     `json:"createTime"` // Unix milliseconds
	Messages             []Message `json:"messages"`
	Filtered             bool      `json:"_filtered,omitempty"`
	OriginalMessageCount int       `json:"_originalMessageCount,omitempty"`
	FilteredMessageCount int       `json:"_filteredMessageCount,omitempty"`
}

// MessageCount returns the number of messages in the chat.
func (c *Chat) MessageCount() int {
	return len(c.Messages)
}

// FilterCriteria describes a user-defined filter request.
type FilterCriteria struct {
	SearchText    string `json:"searchText"`
	CaseSensitive bool   `json:"caseSensitive"`
	MessageType   string `json:"messageType"` // all, user, assistant
	FilterMode    string `json:"filterMode"`  // whole-chat, message-only
	SortOrder     string `json:"sortOrder"`   // newest-first, oldest-first
}

// Active reports whether the criteria restrict the result set at all.
func (c *FilterCriteria) Active() bool {
	if c == nil {
		return false
	}
	return c.SearchText != "" || (c.MessageType != "" && c.MessageType != MessageTypeAll)
}

// ExportStats summarizes an export relative to the pre-filter aggregated set.
type ExportStats struct {
	OriginalChats    int `json:"originalChats"`
	OriginalMessages int `json:"originalMessages"`
	FilteredChats    int `json:"filteredChats"`
	FilteredMessages int `json:"filteredMessages"`
}

// CountMessages sums the message counts of all chats.
func CountMessages(chats []Chat) int {
	total := 0
	for i := range chats {
		total += len(chats[i].Messages)
	}
	return total
}
