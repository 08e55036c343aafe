package store

import (
	"errors"

	"github.com/eigerco/ldb/pkg/db"
)

var (
	// ErrNotFound is returned for a key that is absent or whose stored value
	// does not decode as the database's value type.
	ErrNotFound = db.ErrNotFound
	ErrClosed   = errors.New("store: database is closed")
)
