package cleveldb

import (
	"sync"
	"sync/atomic"

	"github.com/eigerco/ldb/pkg/db"
)

type Snapshot struct {
	store    *KVStore
	snapshot uintptr
	released atomic.Bool
	once     sync.Once
}

func (s *KVStore) NewSnapshot() (db.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	snap := &Snapshot{store: s, snapshot: leveldbCreateSnapshot(s.db)}
	s.snapshots[snap] = struct{}{}
	return snap, nil
}

func (sn *Snapshot) Get(key []byte, ro db.ReadOptions) ([]byte, error) {
	sn.store.mu.RLock()
	defer sn.store.mu.RUnlock()

	if sn.released.Load() {
		return nil, db.ErrSnapshotReleased
	}
	r := newReadOptions(ro, sn.snapshot)
	defer leveldbReadoptionsDestroy(r)
	return get(sn.store.db, r, key)
}

// NewIterator ignores the bounds in ro; LevelDB iterators are unbounded.
func (sn *Snapshot) NewIterator(ro db.ReadOptions) (db.Iterator, error) {
	sn.store.mu.Lock()
	defer sn.store.mu.Unlock()

	if sn.released.Load() {
		return nil, db.ErrSnapshotReleased
	}
	r := newReadOptions(ro, sn.snapshot)
	defer leveldbReadoptionsDestroy(r)
	return sn.store.newIterator(r), nil
}

func (sn *Snapshot) Close() error {
	sn.store.mu.Lock()
	defer sn.store.mu.Unlock()

	if sn.store.snapshots != nil {
		delete(sn.store.snapshots, sn)
	}
	sn.release()
	return nil
}

// release must be called with the store lock held.
func (sn *Snapshot) release() {
	sn.once.Do(func() {
		sn.released.Store(true)
		leveldbReleaseSnapshot(sn.store.db, sn.snapshot)
	})
}
