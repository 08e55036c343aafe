package pebble

import (
	"fmt"
	"sync/atomic"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ldb/pkg/db"
)

type Batch struct {
	store *KVStore
	batch *pebble.Batch
	count int
	done  atomic.Bool
}

func (p *KVStore) NewBatch() db.Batch {
	return &Batch{
		store: p,
		batch: p.db.NewBatch(),
	}
}

func (b *Batch) Put(key, value []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	b.count++
	return b.batch.Set(key, value, nil)
}

func (b *Batch) Delete(key []byte) error {
	if b.done.Load() {
		return ErrBatchDone
	}
	b.count++
	return b.batch.Delete(key, nil)
}

func (b *Batch) Len() int {
	return b.count
}

func (b *Batch) Commit(sync bool) error {
	if b.done.Load() {
		return ErrBatchDone
	}

	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	if b.store.closed {
		return ErrClosed
	}

	opts := pebble.NoSync
	if sync || b.store.sync {
		opts = pebble.Sync
	}
	if err := b.batch.Commit(opts); err != nil {
		return fmt.Errorf(db.ErrBatchCommit, err)
	}
	b.done.Store(true)
	return b.batch.Close()
}

func (b *Batch) Close() error {
	if !b.done.CompareAndSwap(false, true) {
		return nil
	}
	return b.batch.Close()
}
