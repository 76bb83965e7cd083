package internal

import "sort"

// Aggregator merges normalized chats from a batch of raw records.
type Aggregator struct {
	normalizer *Normalizer
}

// NewAggregator creates a new Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{normalizer: NewNormalizer()}
}

// Aggregate normalizes all records and merges them by chat id. The first
// record seen for an id wins; later records with the same id are discarded
// entirely, messages included — duplicates are never merged. Records without
// any resolvable id are skipped as malformed. Each chat's messages end up
// sorted ascending by timestamp (stable, ties keep extraction order), and
// chats come back in insertion order.
func (a *Aggregator) Aggregate(records []RawRecord) []Chat {
	seen := make(map[string]struct{}, len(records))
	chats := make([]Chat, 0, len(records))

	for _, record := range records {
		id := ChatID(record)
		if id == "" {
			LogWarn("skipping record without chat id")
			continue
		}
		if _, ok := seen[id]; ok {
			LogDebug("skipping duplicate record for chat %s", id)
			continue
		}
		seen[id] = struct{}{}

		chat := a.normalizer.Normalize(record)
		sort.SliceStable(chat.Messages, func(i, j int) bool {
			return chat.Messages[i].Timestamp < chat.Messages[j].Timestamp
		})
		chats = append(chats, chat)
	}

	return chats
}
