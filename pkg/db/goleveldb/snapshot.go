package goleveldb

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/eigerco/ldb/pkg/db"
)

type Snapshot struct {
	store    *KVStore
	snap     *leveldb.Snapshot
	released atomic.Bool
	once     sync.Once
}

func (s *KVStore) NewSnapshot() (db.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf(db.ErrInSnapshotCreation, err)
	}
	sn := &Snapshot{store: s, snap: snap}
	s.snapshots[sn] = struct{}{}
	return sn, nil
}

func (sn *Snapshot) Get(key []byte, ro db.ReadOptions) ([]byte, error) {
	sn.store.mu.RLock()
	defer sn.store.mu.RUnlock()

	if sn.released.Load() {
		return nil, db.ErrSnapshotReleased
	}
	return get(sn.snap, key, readOptions(ro))
}

func (sn *Snapshot) NewIterator(ro db.ReadOptions) (db.Iterator, error) {
	sn.store.mu.RLock()
	defer sn.store.mu.RUnlock()

	if sn.released.Load() {
		return nil, db.ErrSnapshotReleased
	}
	var slice *util.Range
	if ro.LowerBound != nil || ro.UpperBound != nil {
		slice = &util.Range{Start: ro.LowerBound, Limit: ro.UpperBound}
	}
	return &Iterator{iter: sn.snap.NewIterator(slice, readOptions(ro))}, nil
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
		sn.snap.Release()
	})
}
