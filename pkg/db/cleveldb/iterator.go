package cleveldb

import (
	"runtime"
	"unsafe"

	"github.com/eigerco/ldb/pkg/db"
)

// Iterator wraps a leveldb_iterator_t. The native cursor must only be moved
// while valid; the unpositioned and exhausted states are tracked here.
type Iterator struct {
	store      *KVStore
	iter       uintptr
	positioned bool
	destroyed  bool
}

// NewIterator returns an iterator over the live database. The native
// iterator is unbounded, so keys outside [start, end) are skipped here.
func (s *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	if start == nil && end == nil {
		return s.newIterator(s.ro), nil
	}
	return &rangeIterator{Iterator: s.newIterator(s.ro), start: start, end: end}, nil
}

// newIterator must be called with the store lock held.
func (s *KVStore) newIterator(ro uintptr) *Iterator {
	it := &Iterator{store: s, iter: leveldbCreateIterator(s.db, ro)}
	s.iterators[it] = struct{}{}
	return it
}

func (it *Iterator) First() bool {
	if it.destroyed {
		return false
	}
	it.positioned = true
	leveldbIterSeekToFirst(it.iter)
	return it.Valid()
}

func (it *Iterator) Last() bool {
	if it.destroyed {
		return false
	}
	it.positioned = true
	leveldbIterSeekToLast(it.iter)
	return it.Valid()
}

func (it *Iterator) Seek(key []byte) bool {
	if it.destroyed {
		return false
	}
	it.positioned = true
	leveldbIterSeek(it.iter, bytesPtr(key), uintptr(len(key)))
	runtime.KeepAlive(key)
	return it.Valid()
}

func (it *Iterator) Next() bool {
	if !it.positioned {
		return it.First()
	}
	if !it.Valid() {
		return false
	}
	leveldbIterNext(it.iter)
	return it.Valid()
}

func (it *Iterator) Prev() bool {
	if !it.positioned {
		return it.Last()
	}
	if !it.Valid() {
		return false
	}
	leveldbIterPrev(it.iter)
	return it.Valid()
}

func (it *Iterator) Valid() bool {
	return !it.destroyed && it.positioned && leveldbIterValid(it.iter) != 0
}

func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	var n uintptr
	p := leveldbIterKey(it.iter, unsafe.Pointer(&n))
	return goBytes(p, n)
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.Valid() {
		return nil, db.ErrIteratorInvalid
	}
	var n uintptr
	p := leveldbIterValue(it.iter, unsafe.Pointer(&n))
	return goBytes(p, n), nil
}

func (it *Iterator) Error() error {
	if it.destroyed {
		return nil
	}
	return call(func(errptr unsafe.Pointer) {
		leveldbIterGetError(it.iter, errptr)
	})
}

func (it *Iterator) Close() error {
	it.store.mu.Lock()
	defer it.store.mu.Unlock()

	if it.destroyed {
		return nil
	}
	err := it.Error()
	if it.store.iterators != nil {
		delete(it.store.iterators, it)
	}
	it.destroy()
	return err
}

// destroy must be called with the store lock held.
func (it *Iterator) destroy() {
	if it.destroyed {
		return
	}
	it.destroyed = true
	leveldbIterDestroy(it.iter)
}
