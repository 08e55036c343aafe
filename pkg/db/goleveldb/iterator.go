package goleveldb

import (
	"bytes"

	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/eigerco/ldb/pkg/db"
)

type Iterator struct {
	iter       iterator.Iterator
	positioned bool
}

func (s *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, db.ErrClosed
	}
	return &Iterator{iter: s.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)}, nil
}

func (it *Iterator) First() bool {
	it.positioned = true
	return it.iter.First()
}

func (it *Iterator) Last() bool {
	it.positioned = true
	return it.iter.Last()
}

func (it *Iterator) Seek(key []byte) bool {
	it.positioned = true
	return it.iter.Seek(key)
}

func (it *Iterator) Next() bool {
	if !it.positioned {
		return it.First()
	}
	if !it.iter.Valid() {
		return false
	}
	return it.iter.Next()
}

func (it *Iterator) Prev() bool {
	if !it.positioned {
		return it.Last()
	}
	if !it.iter.Valid() {
		return false
	}
	return it.iter.Prev()
}

func (it *Iterator) Key() []byte {
	if !it.iter.Valid() {
		return nil
	}
	return bytes.Clone(it.iter.Key())
}

func (it *Iterator) Value() ([]byte, error) {
	if !it.iter.Valid() {
		return nil, db.ErrIteratorInvalid
	}
	return bytes.Clone(it.iter.Value()), nil
}

func (it *Iterator) Valid() bool {
	return it.iter.Valid()
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	err := it.iter.Error()
	it.iter.Release()
	return err
}
