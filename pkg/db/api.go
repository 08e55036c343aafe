package db

// KVStore represents a key-value storage interface providing basic operations
// for data manipulation, iteration and point-in-time snapshots. Keys are
// ordered bytewise.
type KVStore interface {
	Writer
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	NewBatch() Batch
	// NewIterator iterates the live database over [start, end). A nil bound
	// is unbounded.
	NewIterator(start, end []byte) (Iterator, error)
	NewSnapshot() (Snapshot, error)
	// EstimateSize approximates the on-disk size of the keys in [start, end).
	EstimateSize(start, end []byte) (uint64, error)
	Close() error
}

type Writer interface {
	Put(key []byte, value []byte) error
}

// Snapshot is a consistent read-only view of a KVStore at the moment it was
// taken. Writes made after that moment are never observed through it.
type Snapshot interface {
	Get(key []byte, ro ReadOptions) ([]byte, error)
	NewIterator(ro ReadOptions) (Iterator, error)
	// Close releases the engine snapshot. Calling it more than once is a no-op.
	Close() error
}

// Batch represents an atomic batch of operations.
// All operations in a batch are performed atomically.
type Batch interface {
	Writer
	Delete(key []byte) error
	Len() int
	Commit(sync bool) error
	Close() error
}

// Iterator provides sequential access over a range of key-value pairs.
// Iterators must be closed after use and are not safe for concurrent use.
//
// A fresh iterator is unpositioned: Next behaves like First and Prev like
// Last. Once exhausted in either direction it stays invalid until it is
// repositioned with First, Last or Seek.
type Iterator interface {
	First() bool
	Last() bool
	// Seek moves to the first key greater than or equal to key.
	Seek(key []byte) bool
	Next() bool
	Prev() bool
	// Key returns a copy of the current key, nil when invalid.
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	// Error reports an engine failure encountered while moving.
	Error() error
	Close() error
}
