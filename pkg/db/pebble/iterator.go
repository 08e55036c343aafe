package pebble

import (
	"bytes"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/eigerco/ldb/pkg/db"
)

type Iterator struct {
	iter       *pebble.Iterator
	positioned bool
}

func (p *KVStore) NewIterator(start, end []byte) (db.Iterator, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrClosed
	}
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, fmt.Errorf(ErrInIteratorCreation, err)
	}
	return &Iterator{iter: iter}, nil
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
	return it.iter.SeekGE(key)
}

func (it *Iterator) Next() bool {
	// If the iterator is un-positioned, position it at the first key
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
		return nil, ErrIteratorInvalid
	}

	val, err := it.iter.ValueAndErr()
	if err != nil {
		return nil, fmt.Errorf(ErrIteratorValue, err)
	}

	result := make([]byte, len(val))
	copy(result, val)
	return result, nil
}

func (it *Iterator) Valid() bool {
	return it.iter.Valid()
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	return it.iter.Close()
}
