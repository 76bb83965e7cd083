package internal

import (
	"reflect"
	"testing"
)

func TestSortChats(t *testing.T) {
	chats := []Chat{
		{ID: "b", CreateTime: 2000},
		{ID: "c", CreateTime: 3000},
		{ID: "a", CreateTime: 1000},
	}

	newest := SortChats(chats, SortNewestFirst)
	if newest[0].ID != "c" || newest[2].ID != "a" {
		t.Errorf("newest-first order = %s, %s, %s", newest[0].ID, newest[1].ID, newest[2].ID)
	}

	oldest := SortChats(chats, SortOldestFirst)
	if oldest[0].ID != "a" || oldest[2].ID != "c" {
		t.Errorf("oldest-first order = %s, %s, %s", oldest[0].ID, oldest[1].ID, oldest[2].ID)
	}
}

func TestSortChatsDoesNotMutateInput(t *testing.T) {
	chats := []Chat{
		{ID: "b", CreateTime: 2000},
		{ID: "a", CreateTime: 1000},
	}

	_ = SortChats(chats, SortOldestFirst)

	if chats[0].ID != "b" {
		t.Error("input slice was reordered")
	}
}

func TestSortChatsMissingCreateTime(t *testing.T) {
	chats := []Chat{
		{ID: "with", CreateTime: 1000},
		{ID: "without"},
	}

	newest := SortChats(chats, SortNewestFirst)
	if newest[len(newest)-1].ID != "without" {
		t.Error("missing createTime must sort as zero (last in newest-first)")
	}
}

func TestSortChatsIdempotent(t *testing.T) {
	chats := []Chat{
		{ID: "b", CreateTime: 2000},
		{ID: "a", CreateTime: 1000},
		{ID: "c", CreateTime: 3000},
	}

	for _, order := range []string{SortNewestFirst, SortOldestFirst} {
		once := SortChats(chats, order)
		twice := SortChats(once, order)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("sort(%s) is not idempotent", order)
		}
	}
}
