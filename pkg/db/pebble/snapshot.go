package pebble

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ldb/pkg/db"
)

// Snapshot is a pebble snapshot owned by its KVStore until closed.
type Snapshot struct {
	store    *KVStore
	snap     *pebble.Snapshot
	released atomic.Bool
	once     sync.Once
}

func (p *KVStore) NewSnapshot() (db.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}
	s := &Snapshot{store: p, snap: p.db.NewSnapshot()}
	p.snapshots[s] = struct{}{}
	return s, nil
}

// Get ignores the read options: pebble always verifies block checksums and
// has no per-read cache control.
func (s *Snapshot) Get(key []byte, _ db.ReadOptions) ([]byte, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if s.released.Load() {
		return nil, ErrSnapshotReleased
	}
	return get(s.snap, key)
}

func (s *Snapshot) NewIterator(ro db.ReadOptions) (db.Iterator, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if s.released.Load() {
		return nil, ErrSnapshotReleased
	}
	iter, err := s.snap.NewIter(&pebble.IterOptions{
		LowerBound: ro.LowerBound,
		UpperBound: ro.UpperBound,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrInIteratorCreation, err)
	}
	return &Iterator{iter: iter}, nil
}

func (s *Snapshot) Close() error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.snapshots != nil {
		delete(s.store.snapshots, s)
	}
	return s.release()
}

// release must be called with the store lock held.
func (s *Snapshot) release() error {
	var err error
	s.once.Do(func() {
		s.released.Store(true)
		err = s.snap.Close()
	})
	return err
}
