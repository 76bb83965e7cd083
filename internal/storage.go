package internal

import (
	"context"
	"database/sql"
	"encoding/json"
)

// RecordSource supplies raw conversation records to the pipeline. The SQLite
// store is the only production implementation; tests substitute their own.
type RecordSource interface {
	ReadAllRecords(ctx context.Context) ([]RawRecord, error)
}

// Storage reads raw DeepSeek records from the history-message table.
type Storage struct {
	db   *sql.DB
	path string
}

// NewStorage creates a Storage over an open database handle.
func NewStorage(db *sql.DB, path string) *Storage {
	return &Storage{db: db, path: path}
}

// ReadAllRecords loads every record from the store. Rows with invalid JSON
// are skipped with a warning; a failing query is fatal.
func (s *Storage) ReadAllRecords(ctx context.Context) ([]RawRecord, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, &StorageError{Path: s.path, Op: "open", Err: err}
	}

	pairs, err := QueryRecords(s.db)
	if err != nil {
		return nil, &StorageError{Path: s.path, Op: "query", Err: err}
	}

	records := make([]RawRecord, 0, len(pairs))
	for _, pair := range pairs {
		var record RawRecord
		if err := json.Unmarshal([]byte(pair.Value), &record); err != nil {
			LogWarn("%v", &ParseError{Key: pair.Key, Err: err})
			continue
		}
		// The store key doubles as the chat id of last resort.
		if _, ok := record["key"]; !ok {
			record["key"] = pair.Key
		}
		records = append(records, record)
	}

	return records, nil
}
