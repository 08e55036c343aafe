package goleveldb

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/log"
)

// KVStore is a db.KVStore backed by the pure Go LevelDB port.
type KVStore struct {
	db        *leveldb.DB
	path      string
	wo        *opt.WriteOptions
	closed    bool
	mu        sync.RWMutex
	snapshots map[*Snapshot]struct{}
}

// NewKVStore opens a fresh in-memory store.
func NewKVStore() (*KVStore, error) {
	o := db.Default()
	ldb, err := leveldb.Open(storage.NewMemStorage(), options(o))
	if err != nil {
		return nil, fmt.Errorf(db.ErrOpen, "memory", err)
	}
	return newKVStore(ldb, "memory", o), nil
}

// Open opens the store at path on disk.
func Open(path string, o db.Options) (*KVStore, error) {
	ldb, err := leveldb.OpenFile(path, options(o))
	if err != nil {
		return nil, fmt.Errorf(db.ErrOpen, path, err)
	}
	return newKVStore(ldb, path, o), nil
}

func newKVStore(ldb *leveldb.DB, path string, o db.Options) *KVStore {
	log.Engine.Debug().Str("engine", "goleveldb").Str("path", path).Msg("opened")
	return &KVStore{
		db:        ldb,
		path:      path,
		wo:        &opt.WriteOptions{Sync: o.Sync},
		snapshots: make(map[*Snapshot]struct{}),
	}
}

func options(o db.Options) *opt.Options {
	opts := &opt.Options{
		ErrorIfMissing:         !o.CreateIfMissing,
		ErrorIfExist:           o.ErrorIfExists,
		BlockCacheCapacity:     o.CacheCapacity,
		WriteBuffer:            o.WriteBufferSize,
		BlockSize:              o.BlockSize,
		BlockRestartInterval:   o.BlockRestartInterval,
		OpenFilesCacheCapacity: o.MaxOpenFiles,
		Compression:            opt.SnappyCompression,
	}
	if o.Compression == db.NoCompression {
		opts.Compression = opt.NoCompression
	}
	if o.BloomFilterBits > 0 {
		opts.Filter = filter.NewBloomFilter(o.BloomFilterBits)
	}
	if o.ParanoidChecks {
		opts.Strict = opt.StrictAll
	}
	return opts
}

func readOptions(ro db.ReadOptions) *opt.ReadOptions {
	o := &opt.ReadOptions{DontFillCache: ro.DontFillCache}
	if ro.VerifyChecksums {
		o.Strict = opt.StrictBlockChecksum
	}
	return o
}

// Destroy removes the LevelDB files at path, and path itself once empty.
// Other files are left alone; a directory without a CURRENT file is
// refused with db.ErrNotDatabase.
func Destroy(path string) error {
	return db.RemoveDatabaseDir(path, db.IsLevelDBMarker, db.IsLevelDBFile)
}

// Repair rebuilds the manifest of the database at path from its tables.
func Repair(path string, o db.Options) error {
	ldb, err := leveldb.RecoverFile(path, options(o))
	if err != nil {
		return fmt.Errorf("failed to repair database at %q: %w", path, err)
	}
	log.Engine.Info().Str("engine", "goleveldb").Str("path", path).Msg("repaired")
	return ldb.Close()
}

func (s *KVStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	return get(s.db, key, nil)
}

type reader interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
}

func get(r reader, key []byte, ro *opt.ReadOptions) ([]byte, error) {
	value, err := r.Get(key, ro)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *KVStore) Put(key, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}
	return s.db.Put(key, value, s.wo)
}

func (s *KVStore) Delete(key []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}
	return s.db.Delete(key, s.wo)
}

func (s *KVStore) EstimateSize(start, end []byte) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, db.ErrClosed
	}
	if end == nil {
		iter := s.db.NewIterator(nil, nil)
		if iter.Last() {
			end = append(bytes.Clone(iter.Key()), 0)
		}
		iter.Release()
		if end == nil {
			return 0, nil
		}
	}
	if start != nil && bytes.Compare(start, end) >= 0 {
		return 0, nil
	}
	sizes, err := s.db.SizeOf([]util.Range{{Start: start, Limit: end}})
	if err != nil {
		return 0, err
	}
	return uint64(sizes.Sum()), nil
}

// Close releases every snapshot still open and closes the database.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for snap := range s.snapshots {
		log.Engine.Warn().Str("engine", "goleveldb").Str("path", s.path).Msg("releasing leaked snapshot")
		snap.release()
	}
	s.snapshots = nil
	return s.db.Close()
}
