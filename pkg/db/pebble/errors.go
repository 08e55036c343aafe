package pebble

import "github.com/eigerco/ldb/pkg/db"

var (
	ErrClosed           = db.ErrClosed
	ErrNotFound         = db.ErrNotFound
	ErrBatchDone        = db.ErrBatchDone
	ErrIteratorInvalid  = db.ErrIteratorInvalid
	ErrSnapshotReleased = db.ErrSnapshotReleased
)

const (
	ErrInIteratorCreation = db.ErrInIteratorCreation
	ErrIteratorValue      = db.ErrIteratorValue
)
