package pebble

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/uuid"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/log"
)

// KVStore is a db.KVStore backed by pebble.
type KVStore struct {
	db        *pebble.DB
	path      string
	sync      bool
	closed    bool
	mu        sync.RWMutex
	snapshots map[*Snapshot]struct{}
}

// NewKVStore opens a fresh in-memory store.
func NewKVStore() (*KVStore, error) {
	return open(uuid.NewString(), db.Default(), vfs.NewMem())
}

// Open opens the store at path on disk.
func Open(path string, o db.Options) (*KVStore, error) {
	return open(path, o, vfs.Default)
}

func open(path string, o db.Options, fs vfs.FS) (*KVStore, error) {
	opts := options(path, o, fs)
	if opts.Cache != nil {
		defer opts.Cache.Unref()
	}

	pdb, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf(db.ErrOpen, path, err)
	}
	log.Engine.Debug().Str("engine", "pebble").Str("path", path).Msg("opened")

	return &KVStore{
		db:        pdb,
		path:      path,
		sync:      o.Sync,
		snapshots: make(map[*Snapshot]struct{}),
	}, nil
}

// options maps o onto pebble. WriteBufferSize sizes the memtable. pebble
// always verifies the checksums of the blocks it reads and has no
// stricter mode, so ParanoidChecks adds nothing. The caller owns the
// returned cache reference.
func options(path string, o db.Options, fs vfs.FS) *pebble.Options {
	opts := &pebble.Options{
		FS:               fs,
		ErrorIfExists:    o.ErrorIfExists,
		ErrorIfNotExists: !o.CreateIfMissing,
		Logger:           newLogger(path),
	}
	if o.MaxOpenFiles > 0 {
		opts.MaxOpenFiles = o.MaxOpenFiles
	}
	if o.WriteBufferSize > 0 {
		opts.MemTableSize = uint64(o.WriteBufferSize)
	}
	if o.CacheCapacity > 0 {
		opts.Cache = pebble.NewCache(int64(o.CacheCapacity))
	}

	level := pebble.LevelOptions{
		BlockSize:            o.BlockSize,
		BlockRestartInterval: o.BlockRestartInterval,
		Compression:          pebble.SnappyCompression,
	}
	if o.Compression == db.NoCompression {
		level.Compression = pebble.NoCompression
	}
	if o.BloomFilterBits > 0 {
		level.FilterPolicy = bloom.FilterPolicy(o.BloomFilterBits)
	}
	opts.Levels = []pebble.LevelOptions{level}
	opts.EnsureDefaults()
	return opts
}

// Destroy removes the pebble files at path, and path itself once empty.
// Other files are left alone; a directory without a CURRENT, OPTIONS or
// MANIFEST file is refused with db.ErrNotDatabase.
func Destroy(path string) error {
	return db.RemoveDatabaseDir(path, isMarker, isPebbleFile)
}

func isMarker(name string) bool {
	return name == "CURRENT" ||
		strings.HasPrefix(name, "OPTIONS-") ||
		strings.HasPrefix(name, "MANIFEST-") ||
		strings.HasPrefix(name, "marker.manifest.")
}

func isPebbleFile(name string) bool {
	switch {
	case name == "LOCK", isMarker(name):
		return true
	case strings.HasPrefix(name, "marker."), strings.HasSuffix(name, ".dbtmp"):
		return true
	}
	return db.IsNumberedFile(name, ".sst", ".log")
}

// Repair is not offered by pebble.
func Repair(string, db.Options) error {
	return db.ErrUnsupported
}

func (p *KVStore) writeOptions() *pebble.WriteOptions {
	if p.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

func (p *KVStore) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrClosed
	}
	return get(p.db, key)
}

type reader interface {
	Get(key []byte) ([]byte, io.Closer, error)
}

func get(r reader, key []byte) ([]byte, error) {
	value, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close() //nolint:errcheck

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

func (p *KVStore) Put(key, value []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	return p.db.Set(key, value, p.writeOptions())
}

func (p *KVStore) Delete(key []byte) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}

	return p.db.Delete(key, p.writeOptions())
}

// EstimateSize approximates the disk space used by [start, end). A nil end
// extends the range past the last key.
func (p *KVStore) EstimateSize(start, end []byte) (uint64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrClosed
	}
	if end == nil {
		last, err := p.lastKey()
		if err != nil {
			return 0, err
		}
		if last == nil {
			return 0, nil
		}
		end = append(last, 0)
	}
	if start != nil && bytes.Compare(start, end) >= 0 {
		return 0, nil
	}
	if start == nil {
		start = []byte{}
	}
	return p.db.EstimateDiskUsage(start, end)
}

func (p *KVStore) lastKey() ([]byte, error) {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return nil, fmt.Errorf(ErrInIteratorCreation, err)
	}
	defer iter.Close() //nolint:errcheck
	if !iter.Last() {
		return nil, iter.Error()
	}
	return bytes.Clone(iter.Key()), nil
}

// Close releases every snapshot still open and closes the database.
func (p *KVStore) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	for snap := range p.snapshots {
		log.Engine.Warn().Str("engine", "pebble").Str("path", p.path).Msg("releasing leaked snapshot")
		snap.release()
	}
	p.snapshots = nil
	return p.db.Close()
}
