package internal

import (
	"errors"
	"fmt"
)

// ErrNothingToExport is returned when filtering or selection leaves zero
// chats. It is a distinct outcome, not a failure: callers report it as
// "nothing to export" and exit cleanly.
var ErrNothingToExport = errors.New("no chats to export")

// StorageError represents a failure to open or read the record store.
// Storage errors are fatal and abort the whole pipeline.
type StorageError struct {
	Path string
	Op   string // "open", "query"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents a malformed record row. Parse errors are recovered
// locally: the row is skipped and the batch continues.
type ParseError struct {
	Key string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RenderError represents a failure in one export format. Other formats still
// complete; their artifacts are not retracted.
type RenderError struct {
	Format string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error [%s]: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
