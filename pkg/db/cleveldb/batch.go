package cleveldb

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/eigerco/ldb/pkg/db"
)

type Batch struct {
	store *KVStore
	batch uintptr
	count int
	done  atomic.Bool
}

func (s *KVStore) NewBatch() db.Batch {
	b := &Batch{store: s}
	if err := Load(); err == nil {
		b.batch = leveldbWritebatchCreate()
	} else {
		b.done.Store(true)
	}
	return b
}

func (b *Batch) Put(key, value []byte) error {
	if b.done.Load() {
		return db.ErrBatchDone
	}
	leveldbWritebatchPut(b.batch, bytesPtr(key), uintptr(len(key)), bytesPtr(value), uintptr(len(value)))
	runtime.KeepAlive(key)
	runtime.KeepAlive(value)
	b.count++
	return nil
}

func (b *Batch) Delete(key []byte) error {
	if b.done.Load() {
		return db.ErrBatchDone
	}
	leveldbWritebatchDelete(b.batch, bytesPtr(key), uintptr(len(key)))
	runtime.KeepAlive(key)
	b.count++
	return nil
}

func (b *Batch) Len() int {
	return b.count
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

	wo := b.store.wo
	if sync && !b.store.sync {
		wo = leveldbWriteoptionsCreate()
		leveldbWriteoptionsSetSync(wo, 1)
		defer leveldbWriteoptionsDestroy(wo)
	}
	err := call(func(errptr unsafe.Pointer) {
		leveldbWrite(b.store.db, wo, b.batch, errptr)
	})
	if err != nil {
		return fmt.Errorf(db.ErrBatchCommit, err)
	}
	b.done.Store(true)
	leveldbWritebatchDestroy(b.batch)
	return nil
}

func (b *Batch) Close() error {
	if b.done.CompareAndSwap(false, true) {
		leveldbWritebatchDestroy(b.batch)
	}
	return nil
}
