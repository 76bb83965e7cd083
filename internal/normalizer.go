package internal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Normalizer converts one raw record into a canonical Chat. Records have no
// guaranteed shape, so every field is resolved through an ordered list of
// named extraction strategies; the first one that produces a value wins.
type Normalizer struct {
	now func() int64 // Unix milliseconds
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: func() int64 { return time.Now().UnixMilli() }}
}

// fieldStrategy resolves one string field from a raw record.
type fieldStrategy struct {
	name    string
	extract func(record RawRecord) (string, bool)
}

// contentStrategy resolves message content from a raw message object.
type contentStrategy struct {
	name    string
	extract func(msg map[string]any) (string, bool)
}

// titleStrategies locate a chat title, in priority order.
var titleStrategies = []fieldStrategy{
	{"session-title", func(r RawRecord) (string, bool) {
		return nonBlank(getString(getMap(r, "data", "chat_session"), "title"))
	}},
	{"session-chat-title", func(r RawRecord) (string, bool) {
		return nonBlank(getString(getMap(r, "data", "chat_session"), "chat_title"))
	}},
	{"data-title", func(r RawRecord) (string, bool) {
		return nonBlank(getString(getMap(r, "data"), "title"))
	}},
	{"record-title", func(r RawRecord) (string, bool) {
		return nonBlank(getString(map[string]any(r), "title"))
	}},
}

// contentStrategies locate message content, in priority order.
var contentStrategies = []contentStrategy{
	{"fragment-content", func(m map[string]any) (string, bool) {
		frag := firstFragment(m)
		if frag == nil {
			return "", false
		}
		content := getString(frag, "content")
		return content, content != ""
	}},
	{"message-content", func(m map[string]any) (string, bool) {
		content := getString(m, "content")
		return content, content != ""
	}},
	{"data-content", func(m map[string]any) (string, bool) {
		content := getString(getMap(m, "data"), "content")
		return content, content != ""
	}},
}

// Normalize converts a raw record into a Chat. It never fails: a record that
// yields no messages still produces a Chat with an empty message list, and
// any panic while probing a malformed record degrades the same way.
func (n *Normalizer) Normalize(record RawRecord) Chat {
	id := ChatID(record)
	messages := n.extractMessages(record)

	return Chat{
		ID:         id,
		Title:      n.extractTitle(record, id, messages),
		URL:        fmt.Sprintf("https://chat.deepseek.com/a/chat/s/%s", id),
		CreateTime: n.extractCreateTime(record),
		Messages:   messages,
	}
}

// ChatID resolves the record's chat identifier. Empty means the record is
// malformed and should be skipped by the caller.
func ChatID(record RawRecord) string {
	for _, key := range []string{"chat_id", "conversation_id", "key"} {
		if id := getString(map[string]any(record), key); id != "" {
			return id
		}
	}
	return ""
}

// extractTitle runs the title strategies, then falls back to the first user
// message and finally to a placeholder derived from the chat id.
func (n *Normalizer) extractTitle(record RawRecord, id string, messages []Message) string {
	for _, s := range titleStrategies {
		if title, ok := s.extract(record); ok {
			return title
		}
	}

	for _, msg := range messages {
		if msg.Role != RoleUser {
			continue
		}
		if title := titleFromContent(msg.Content); title != "" {
			return title
		}
		break
	}

	return "Chat " + truncateRunes(id, 8)
}

// titleFromContent derives a title from message content: the first line of
// the first 50 characters, with an ellipsis when the cap was hit.
func titleFromContent(content string) string {
	title := truncateRunes(content, 50)
	if i := strings.IndexByte(title, '\n'); i >= 0 {
		title = title[:i]
	}
	if len([]rune(title)) >= 50 {
		title = truncateRunes(title, 47) + "..."
	}
	return title
}

// extractMessages pulls all messages out of a record. The primary path walks
// data.chat_messages; the secondary path scans data for anything that looks
// like a message. Malformed records recover to an empty list.
func (n *Normalizer) extractMessages(record RawRecord) (messages []Message) {
	defer func() {
		if r := recover(); r != nil {
			LogDebug("record inspection panicked, degrading to empty messages: %v", r)
			messages = nil
		}
	}()

	recordTS := getInt64(map[string]any(record), "timestamp")
	data := getMap(record, "data")

	if chatMessages := getMap(record, "data", "chat_messages"); chatMessages != nil {
		for _, key := range sortedKeys(chatMessages) {
			msg := asMap(chatMessages[key])
			if msg == nil {
				continue
			}

			content := extractContent(msg)
			if content == "" {
				continue
			}

			id := getString(msg, "id")
			if id == "" {
				id = key
			}

			frag := firstFragment(msg)
			ts := getInt64(msg, "timestamp")
			if ts == 0 && frag != nil {
				ts = getInt64(frag, "timestamp")
			}
			if ts == 0 {
				ts = recordTS
			}
			if ts == 0 {
				ts = n.now()
			}

			messages = append(messages, Message{
				ID:        id,
				Role:      resolveRole(msg, frag),
				Content:   content,
				Timestamp: ts,
			})
		}
	}

	if len(messages) == 0 && data != nil {
		for _, key := range sortedKeys(data) {
			item := asMap(data[key])
			if item == nil {
				continue
			}
			content := getString(item, "content")
			if content == "" {
				continue
			}

			ts := getInt64(item, "timestamp")
			if ts == 0 {
				ts = recordTS
			}
			if ts == 0 {
				ts = n.now()
			}

			messages = append(messages, Message{
				ID:        key,
				Role:      normalizeRole(getString(item, "role")),
				Content:   content,
				Timestamp: ts,
			})
		}
	}

	return messages
}

func (n *Normalizer) extractCreateTime(record RawRecord) int64 {
	if ts := getInt64(map[string]any(record), "create_time"); ts != 0 {
		return ts
	}
	if ts := getInt64(map[string]any(record), "timestamp"); ts != 0 {
		return ts
	}
	return n.now()
}

// extractContent runs the content strategies against a raw message object.
func extractContent(msg map[string]any) string {
	for _, s := range contentStrategies {
		if content, ok := s.extract(msg); ok {
			return content
		}
	}
	return ""
}

// resolveRole resolves a message role with priority: explicit fragment role,
// explicit message role, keyword scan of the fragment content, default user.
// The keyword scan is inherently unreliable but preserved as a last resort.
func resolveRole(msg, frag map[string]any) Role {
	if frag != nil {
		if role := getString(frag, "role"); role != "" {
			return normalizeRole(role)
		}
	}
	if role := getString(msg, "role"); role != "" {
		return normalizeRole(role)
	}
	if frag != nil {
		if content := getString(frag, "content"); content != "" {
			return sniffRole(content)
		}
	}
	return RoleUser
}

// normalizeRole folds a raw role string into the closed role enumeration.
func normalizeRole(role string) Role {
	if strings.ToLower(role) == string(RoleAssistant) {
		return RoleAssistant
	}
	return RoleUser
}

// sniffRole guesses a role from content keywords.
func sniffRole(content string) Role {
	for _, token := range []string{"assistant", "AI", "DeepSeek"} {
		if strings.Contains(content, token) {
			return RoleAssistant
		}
	}
	return RoleUser
}

// firstFragment returns the first entry of the message's fragments list.
func firstFragment(msg map[string]any) map[string]any {
	fragments, ok := msg["fragments"].([]any)
	if !ok || len(fragments) == 0 {
		return nil
	}
	return asMap(fragments[0])
}

// Generic accessors over decoded JSON.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// getMap walks nested maps by key, returning nil if any level is missing.
func getMap(record RawRecord, keys ...string) map[string]any {
	current := map[string]any(record)
	for _, key := range keys {
		current = asMap(current[key])
		if current == nil {
			return nil
		}
	}
	return current
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// getInt64 reads a numeric field. JSON decoding produces float64; fixtures
// and tests may carry native integers.
func getInt64(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func nonBlank(s string) (string, bool) {
	return s, strings.TrimSpace(s) != ""
}

// sortedKeys keeps map iteration deterministic so extraction order is stable.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
