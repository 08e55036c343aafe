// Package cleveldb binds the C API of the reference LevelDB library at run
// time. Every native handle is owned by exactly one Go value and destroyed
// exactly once.
package cleveldb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/google/uuid"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/log"
)

type KVStore struct {
	db        uintptr
	options   *nativeOptions
	ro        uintptr
	wo        uintptr
	sync      bool
	path      string
	temporary bool
	closed    bool
	mu        sync.RWMutex
	snapshots map[*Snapshot]struct{}
	iterators map[*Iterator]struct{}
}

// NewKVStore opens a fresh database in a temporary directory that is
// destroyed when the store is closed.
func NewKVStore() (*KVStore, error) {
	path := filepath.Join(os.TempDir(), "ldb-"+uuid.NewString())
	o := db.Default()
	o.ErrorIfExists = true
	s, err := Open(path, o)
	if err != nil {
		return nil, err
	}
	s.temporary = true
	return s, nil
}

// Open opens the database at path.
func Open(path string, o db.Options) (*KVStore, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	opts := newNativeOptions(o)

	var handle uintptr
	err := call(func(errptr unsafe.Pointer) {
		handle = leveldbOpen(opts.options, path, errptr)
	})
	if err != nil {
		opts.destroy()
		return nil, fmt.Errorf(db.ErrOpen, path, err)
	}
	log.Engine.Debug().Str("engine", "cleveldb").Str("path", path).Msg("opened")

	wo := leveldbWriteoptionsCreate()
	leveldbWriteoptionsSetSync(wo, cbool(o.Sync))
	return &KVStore{
		db:        handle,
		options:   opts,
		ro:        leveldbReadoptionsCreate(),
		wo:        wo,
		sync:      o.Sync,
		path:      path,
		snapshots: make(map[*Snapshot]struct{}),
		iterators: make(map[*Iterator]struct{}),
	}, nil
}

// Destroy removes the database at path. LevelDB deletes only its own files
// and the directory once empty; a directory without a CURRENT file is
// refused with db.ErrNotDatabase.
func Destroy(path string) error {
	if err := db.CheckDatabaseDir(path, db.IsLevelDBMarker); err != nil {
		return err
	}
	return withOptions(db.Default(), func(o uintptr) error {
		return call(func(errptr unsafe.Pointer) {
			leveldbDestroyDB(o, path, errptr)
		})
	})
}

// Repair salvages as much data as possible from a corrupted database.
func Repair(path string, opts db.Options) error {
	return withOptions(opts, func(o uintptr) error {
		return call(func(errptr unsafe.Pointer) {
			leveldbRepairDB(o, path, errptr)
		})
	})
}

func withOptions(opts db.Options, fn func(o uintptr) error) error {
	if err := Load(); err != nil {
		return err
	}
	o := newNativeOptions(opts)
	defer o.destroy()
	return fn(o.options)
}

func (s *KVStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	return get(s.db, s.ro, key)
}

func get(handle, ro uintptr, key []byte) ([]byte, error) {
	var (
		value  unsafe.Pointer
		length uintptr
	)
	err := call(func(errptr unsafe.Pointer) {
		value = leveldbGet(handle, ro, bytesPtr(key), uintptr(len(key)), unsafe.Pointer(&length), errptr)
	})
	runtime.KeepAlive(key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, db.ErrNotFound
	}
	defer leveldbFree(value)
	return goBytes(value, length), nil
}

func (s *KVStore) Put(key, value []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}
	err := call(func(errptr unsafe.Pointer) {
		leveldbPut(s.db, s.wo, bytesPtr(key), uintptr(len(key)), bytesPtr(value), uintptr(len(value)), errptr)
	})
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	return err
}

func (s *KVStore) Delete(key []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return db.ErrClosed
	}
	err := call(func(errptr unsafe.Pointer) {
		leveldbDelete(s.db, s.wo, bytesPtr(key), uintptr(len(key)), errptr)
	})
	runtime.KeepAlive(key)
	return err
}

// EstimateSize asks the engine for the approximate file system space used
// by [start, end). A nil end extends the range past the last key.
func (s *KVStore) EstimateSize(start, end []byte) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, db.ErrClosed
	}
	if end == nil {
		it := leveldbCreateIterator(s.db, s.ro)
		leveldbIterSeekToLast(it)
		if leveldbIterValid(it) != 0 {
			var n uintptr
			end = append(goBytes(leveldbIterKey(it, unsafe.Pointer(&n)), n), 0)
		}
		leveldbIterDestroy(it)
		if end == nil {
			return 0, nil
		}
	}
	if bytes.Compare(start, end) >= 0 {
		return 0, nil
	}

	starts := []unsafe.Pointer{bytesPtr(start)}
	startLens := []uintptr{uintptr(len(start))}
	limits := []unsafe.Pointer{bytesPtr(end)}
	limitLens := []uintptr{uintptr(len(end))}
	sizes := make([]uint64, 1)
	leveldbApproximateSizes(s.db, 1,
		unsafe.Pointer(&starts[0]), unsafe.Pointer(&startLens[0]),
		unsafe.Pointer(&limits[0]), unsafe.Pointer(&limitLens[0]),
		unsafe.Pointer(&sizes[0]))
	runtime.KeepAlive(start)
	runtime.KeepAlive(end)
	return sizes[0], nil
}

// Close destroys every iterator and snapshot still open, then the database
// and its options. Temporary databases are removed from disk.
func (s *KVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for it := range s.iterators {
		log.Engine.Warn().Str("engine", "cleveldb").Str("path", s.path).Msg("destroying leaked iterator")
		it.destroy()
	}
	for snap := range s.snapshots {
		log.Engine.Warn().Str("engine", "cleveldb").Str("path", s.path).Msg("releasing leaked snapshot")
		snap.release()
	}
	s.iterators, s.snapshots = nil, nil

	leveldbClose(s.db)
	leveldbReadoptionsDestroy(s.ro)
	leveldbWriteoptionsDestroy(s.wo)
	s.options.destroy()

	if s.temporary {
		return Destroy(s.path)
	}
	return nil
}
