package testutil

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Record builds a minimal raw DeepSeek record with the primary message
// layout (data -> chat_messages -> fragments -> content).
func Record(chatID, title string, createTime int64, messages map[string]any) map[string]any {
	return map[string]any{
		"chat_id":     chatID,
		"create_time": createTime,
		"data": map[string]any{
			"chat_session":  map[string]any{"title": title},
			"chat_messages": messages,
		},
	}
}

// FragmentMessage builds one raw message carrying its content in the first
// fragment.
func FragmentMessage(id, role, content string, timestamp int64) map[string]any {
	return map[string]any{
		"id":        id,
		"timestamp": timestamp,
		"fragments": []any{
			map[string]any{"role": role, "content": content},
		},
	}
}

// CreateRecordDB creates a history_message SQLite fixture seeded with the
// given records (keyed by row key). Extra non-JSON rows can be added by the
// caller through the returned path.
func CreateRecordDB(t *testing.T, records map[string]map[string]any) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "deepseek-chat.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS history_message (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	for key, record := range records {
		value, err := json.Marshal(record)
		if err != nil {
			t.Fatalf("Failed to marshal record %s: %v", key, err)
		}
		if _, err := db.Exec("INSERT INTO history_message (key, value) VALUES (?, ?)", key, string(value)); err != nil {
			t.Fatalf("Failed to insert record %s: %v", key, err)
		}
	}

	return dbPath
}

// InsertRawRow inserts a raw value (possibly invalid JSON) into a fixture
// database.
func InsertRawRow(t *testing.T, dbPath, key, value string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec("INSERT INTO history_message (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert raw row: %v", err)
	}
}

// WriteFile writes a file fixture, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}
