package internal

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// RecordTable is the key-value table holding raw DeepSeek records. It mirrors
// the browser's IndexedDB layout: deepseek-chat -> history-message, dumped as
// one row per record with the record JSON in the value column.
const RecordTable = "history_message"

// OpenDatabase opens a SQLite record store in read-only mode.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// KeyValuePair is one raw row from the record table.
type KeyValuePair struct {
	Key   string
	Value string
}

// QueryRecords returns all key-value rows from the record table.
func QueryRecords(db *sql.DB) ([]KeyValuePair, error) {
	rows, err := db.Query("SELECT key, value FROM " + RecordTable + " WHERE value IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pairs []KeyValuePair
	for rows.Next() {
		var pair KeyValuePair
		var value sql.NullString
		if err := rows.Scan(&pair.Key, &value); err != nil {
			return nil, err
		}
		if value.Valid {
			pair.Value = value.String
			pairs = append(pairs, pair)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pairs, nil
}

// TableExists reports whether the record table is present in the store.
func TableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountRecords returns the number of rows in the record table.
func CountRecords(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM " + RecordTable).Scan(&count)
	return count, err
}
