package goleveldb

import (
	"fmt"
	"sync/atomic"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/eigerco/ldb/pkg/db"
)

type Batch struct {
	store *KVStore
	batch *leveldb.Batch
	done  atomic.Bool
}

func (s *KVStore) NewBatch() db.Batch {
	return &Batch{
		store: s,
		batch: new(leveldb.Batch),
	}
}

func (b *Batch) Put(key, value []byte) error {
	if b.done.Load() {
		return db.ErrBatchDone
	}
	b.batch.Put(key, value)
	return nil
}

func (b *Batch) Delete(key []byte) error {
	if b.done.Load() {
		return db.ErrBatchDone
	}
	b.batch.Delete(key)
	return nil
}

func (b *Batch) Len() int {
	return b.batch.Len()
}

func (b *Batch) Commit(sync bool) error {
	if b.done.Load() {
		return db.ErrBatchDone
	}

	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	if b.store.closed {
		return db.ErrClosed
	}

	wo := &opt.WriteOptions{Sync: sync || b.store.wo.Sync}
	if err := b.store.db.Write(b.batch, wo); err != nil {
		return fmt.Errorf(db.ErrBatchCommit, err)
	}
	b.done.Store(true)
	return nil
}

func (b *Batch) Close() error {
	if b.done.CompareAndSwap(false, true) {
		b.batch.Reset()
	}
	return nil
}
