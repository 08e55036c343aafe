package db

import "errors"

var (
	ErrClosed           = errors.New("kv-store: database is closed")
	ErrNotFound         = errors.New("kv-store: key not found")
	ErrBatchDone        = errors.New("kv-store: batch already committed or closed")
	ErrIteratorInvalid  = errors.New("kv-store: iterator is not positioned on an entry")
	ErrSnapshotReleased = errors.New("kv-store: snapshot has been released")
	ErrUnsupported      = errors.New("kv-store: operation not supported by this engine")
	ErrNotDatabase      = errors.New("kv-store: directory does not hold a database")
)

// Format strings shared by the engines when wrapping native errors.
const (
	ErrInIteratorCreation = "failed to create iterator: %w"
	ErrIteratorValue      = "failed to read iterator value: %w"
	ErrInSnapshotCreation = "failed to create snapshot: %w"
	ErrOpen               = "failed to open database at %q: %w"
	ErrBatchCommit        = "failed to commit batch: %w"
)
