package internal

import "sort"

// SortChats orders chats by creation time without mutating the input slice.
// "newest-first" sorts descending, anything else ascending; a missing
// CreateTime sorts as zero.
func SortChats(chats []Chat, order string) []Chat {
	sorted := make([]Chat, len(chats))
	copy(sorted, chats)

	if order == SortNewestFirst {
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreateTime > sorted[j].CreateTime
		})
	} else {
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].CreateTime < sorted[j].CreateTime
		})
	}

	return sorted
}
