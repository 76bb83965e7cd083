package internal

import "testing"

func chatWith(id string, messages ...Message) Chat {
	return Chat{ID: id, Title: "Chat " + id, Messages: messages}
}

func TestFilterFastPath(t *testing.T) {
	// Scenario: no search text, all message types — input passes through
	// untouched with stats equal to totals.
	chats := []Chat{
		chatWith("a",
			Message{Role: RoleUser, Content: "1"}, Message{Role: RoleAssistant, Content: "2"},
			Message{Role: RoleUser, Content: "3"}, Message{Role: RoleAssistant, Content: "4"},
			Message{Role: RoleUser, Content: "5"}),
		chatWith("b"),
		chatWith("c", Message{Role: RoleUser, Content: "6"}, Message{Role: RoleAssistant, Content: "7"}),
	}

	result := FilterChats(chats, FilterCriteria{MessageType: MessageTypeAll})

	want := ExportStats{OriginalChats: 3, OriginalMessages: 7, FilteredChats: 3, FilteredMessages: 7}
	if result.Stats != want {
		t.Errorf("Stats = %+v, want %+v", result.Stats, want)
	}
	if &result.Chats[0] != &chats[0] {
		t.Error("fast path must return the input slice without copying")
	}
}

func TestFilterWholeChatMode(t *testing.T) {
	// Whole-chat mode retains matched chats in full.
	chatA := chatWith("a",
		Message{Role: RoleUser, Content: "Hello world"},
		Message{Role: RoleAssistant, Content: "unrelated"})
	chatB := chatWith("b", Message{Role: RoleUser, Content: "nothing here"})

	result := FilterChats([]Chat{chatA, chatB}, FilterCriteria{
		SearchText: "hello",
		FilterMode: FilterModeWholeChat,
	})

	if len(result.Chats) != 1 || result.Chats[0].ID != "a" {
		t.Fatalf("got %d chats, want only chat a", len(result.Chats))
	}
	if len(result.Chats[0].Messages) != 2 {
		t.Errorf("whole-chat mode must keep all messages, got %d", len(result.Chats[0].Messages))
	}
	if result.Stats.FilteredChats != 1 {
		t.Errorf("FilteredChats = %d, want 1", result.Stats.FilteredChats)
	}
	if result.Stats.FilteredMessages != 2 {
		t.Errorf("FilteredMessages = %d, want whole message count 2", result.Stats.FilteredMessages)
	}
}

func TestFilterMessageOnlyMode(t *testing.T) {
	chat := chatWith("a",
		Message{Role: RoleUser, Content: "question one"},
		Message{Role: RoleUser, Content: "question two"},
		Message{Role: RoleAssistant, Content: "the answer"})

	result := FilterChats([]Chat{chat}, FilterCriteria{
		MessageType: MessageTypeAssistant,
		FilterMode:  FilterModeMessageOnly,
	})

	if len(result.Chats) != 1 {
		t.Fatalf("got %d chats, want 1", len(result.Chats))
	}
	got := result.Chats[0]
	if len(got.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(got.Messages))
	}
	if !got.Filtered {
		t.Error("filtered copy must be annotated")
	}
	if got.OriginalMessageCount != 3 || got.FilteredMessageCount != 1 {
		t.Errorf("counts = %d/%d, want 3/1", got.OriginalMessageCount, got.FilteredMessageCount)
	}
	// The input chat is untouched.
	if len(chat.Messages) != 3 || chat.Filtered {
		t.Error("message-only mode must not mutate the input chat")
	}
}

func TestFilterMessageOnlyDropsEmptyChats(t *testing.T) {
	chats := []Chat{
		chatWith("a", Message{Role: RoleUser, Content: "hit me"}),
		chatWith("b", Message{Role: RoleUser, Content: "miss"}),
	}

	result := FilterChats(chats, FilterCriteria{
		SearchText: "hit",
		FilterMode: FilterModeMessageOnly,
	})

	if len(result.Chats) != 1 {
		t.Fatalf("got %d chats, want 1", len(result.Chats))
	}
	for _, chat := range result.Chats {
		if len(chat.Messages) == 0 {
			t.Error("no retained chat may have zero messages")
		}
	}
	if result.Stats.OriginalChats != 2 {
		t.Errorf("OriginalChats = %d, want 2", result.Stats.OriginalChats)
	}
}

func TestMatchesFilterBothFiltersActive(t *testing.T) {
	criteria := FilterCriteria{
		SearchText:  "hello",
		MessageType: MessageTypeUser,
	}

	tests := []struct {
		name string
		msg  Message
		want bool
	}{
		{"role and text match", Message{Role: RoleUser, Content: "well hello"}, true},
		{"wrong role", Message{Role: RoleAssistant, Content: "well hello"}, false},
		{"wrong text", Message{Role: RoleUser, Content: "goodbye"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesFilter(tt.msg, "hello", criteria); got != tt.want {
				t.Errorf("matchesFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterCaseSensitivity(t *testing.T) {
	chats := []Chat{chatWith("a", Message{Role: RoleUser, Content: "Hello World"})}

	insensitive := FilterChats(chats, FilterCriteria{SearchText: "hello"})
	if len(insensitive.Chats) != 1 {
		t.Error("case-insensitive search should match Hello")
	}

	sensitive := FilterChats(chats, FilterCriteria{SearchText: "hello", CaseSensitive: true})
	if len(sensitive.Chats) != 0 {
		t.Error("case-sensitive search should not match Hello")
	}
}

func TestFilterCriteriaActive(t *testing.T) {
	tests := []struct {
		name     string
		criteria *FilterCriteria
		want     bool
	}{
		{"nil", nil, false},
		{"empty", &FilterCriteria{}, false},
		{"type all", &FilterCriteria{MessageType: MessageTypeAll}, false},
		{"search text", &FilterCriteria{SearchText: "x"}, true},
		{"message type", &FilterCriteria{MessageType: MessageTypeUser}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}
