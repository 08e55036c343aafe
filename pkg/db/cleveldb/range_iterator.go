package cleveldb

import (
	"bytes"

	"github.com/eigerco/ldb/pkg/db"
)

// rangeIterator restricts an Iterator to [start, end). A nil bound is
// unbounded.
type rangeIterator struct {
	*Iterator
	start, end []byte
	// out is set once the cursor has left the range.
	out bool
}

func (r *rangeIterator) check(ok bool) bool {
	if !ok {
		return false
	}
	key := r.Iterator.Key()
	r.out = (r.start != nil && bytes.Compare(key, r.start) < 0) ||
		(r.end != nil && bytes.Compare(key, r.end) >= 0)
	return !r.out
}

func (r *rangeIterator) First() bool {
	if r.start == nil {
		return r.check(r.Iterator.First())
	}
	return r.check(r.Iterator.Seek(r.start))
}

func (r *rangeIterator) Last() bool {
	if r.end == nil {
		return r.check(r.Iterator.Last())
	}
	if !r.Iterator.Seek(r.end) {
		return r.check(r.Iterator.Last())
	}
	return r.check(r.Iterator.Prev())
}

func (r *rangeIterator) Seek(key []byte) bool {
	if r.start != nil && bytes.Compare(key, r.start) < 0 {
		key = r.start
	}
	return r.check(r.Iterator.Seek(key))
}

func (r *rangeIterator) Next() bool {
	if !r.Iterator.positioned {
		return r.First()
	}
	if !r.Valid() {
		return false
	}
	return r.check(r.Iterator.Next())
}

func (r *rangeIterator) Prev() bool {
	if !r.Iterator.positioned {
		return r.Last()
	}
	if !r.Valid() {
		return false
	}
	return r.check(r.Iterator.Prev())
}

func (r *rangeIterator) Valid() bool {
	return !r.out && r.Iterator.Valid()
}

func (r *rangeIterator) Key() []byte {
	if !r.Valid() {
		return nil
	}
	return r.Iterator.Key()
}

func (r *rangeIterator) Value() ([]byte, error) {
	if r.out {
		return nil, db.ErrIteratorInvalid
	}
	return r.Iterator.Value()
}
