package store

import (
	"bytes"
	"fmt"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/interval"
	"github.com/eigerco/ldb/pkg/log"
)

// Iterator walks a Snapshot view one pair at a time. Entries whose key or
// value does not decode are skipped. It must not be used from more than one
// goroutine and must be closed.
type Iterator[K, V any] struct {
	snap    Snapshot[K, V]
	it      db.Iterator
	key     K
	value   V
	skipped int
	err     error
	done    bool
}

// NewIterator positions a cursor at the first bound of the view in its
// iteration direction.
func (s Snapshot[K, V]) NewIterator() (*Iterator[K, V], error) {
	if s.handle == nil {
		return nil, db.ErrSnapshotReleased
	}
	it := &Iterator[K, V]{snap: s}
	if s.interval.IsEmpty() {
		it.done = true
		return it, nil
	}

	ro := s.ro
	ro.LowerBound, ro.UpperBound = interval.EngineBounds(s.interval)
	if ro.LowerBound != nil && ro.UpperBound != nil && bytes.Compare(ro.LowerBound, ro.UpperBound) >= 0 {
		it.done = true
		return it, nil
	}
	cursor, err := s.handle.engine.snap.NewIterator(ro)
	if err != nil {
		return nil, fmt.Errorf("snapshot iterator: %w", err)
	}
	it.it = cursor

	if s.reversed {
		it.seekEnd()
	} else {
		it.seekStart()
	}
	return it, nil
}

func (it *Iterator[K, V]) seekStart() {
	iv := it.snap.interval
	start := iv.Start()
	switch {
	case start.IsLowest():
		it.it.First()
	case start.IsHighest():
		it.done = true
	default:
		key, _ := start.Key()
		if it.it.Seek(key) && !iv.StartInclusive() && bytes.Equal(it.it.Key(), key) {
			it.it.Next()
		}
	}
}

func (it *Iterator[K, V]) seekEnd() {
	iv := it.snap.interval
	end := iv.End()
	switch {
	case end.IsHighest():
		it.it.Last()
	case end.IsLowest():
		it.done = true
	default:
		key, _ := end.Key()
		if !it.it.Seek(key) {
			if it.it.Error() == nil {
				it.it.Last()
			}
			return
		}
		switch c := bytes.Compare(it.it.Key(), key); {
		case c > 0, c == 0 && !iv.EndInclusive():
			it.it.Prev()
		}
	}
}

// Next advances to the next decodable pair within the view. It returns
// false once the view is exhausted or the engine fails; see Err.
func (it *Iterator[K, V]) Next() bool {
	if it.done {
		return false
	}
	iv := it.snap.interval
	for it.it.Valid() {
		raw := it.it.Key()
		bound := interval.Exact(raw)
		if it.snap.reversed {
			if iv.Below(bound) {
				break
			}
			if iv.Above(bound) {
				panic(fmt.Sprintf("store: engine returned key %x after the end of %v", raw, iv))
			}
		} else {
			if iv.Above(bound) {
				break
			}
			if iv.Below(bound) {
				panic(fmt.Sprintf("store: engine returned key %x before the start of %v", raw, iv))
			}
		}

		data, err := it.it.Value()
		if err != nil {
			it.err = err
			break
		}
		key, okKey := it.snap.keys.Decode(raw)
		value, okValue := it.snap.values.Decode(data)
		it.step()
		if okKey && okValue {
			it.key, it.value = key, value
			return true
		}
		it.skipped++
		log.Store.Debug().Hex("key", raw).Bool("key_ok", okKey).Bool("value_ok", okValue).Msg("skipping undecodable entry")
	}

	it.done = true
	if it.err == nil {
		it.err = it.it.Error()
	}
	var (
		zeroKey   K
		zeroValue V
	)
	it.key, it.value = zeroKey, zeroValue
	return false
}

func (it *Iterator[K, V]) step() {
	if it.snap.reversed {
		it.it.Prev()
	} else {
		it.it.Next()
	}
}

// Key returns the key of the pair Next moved to.
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Value returns the value of the pair Next moved to.
func (it *Iterator[K, V]) Value() V {
	return it.value
}

// Skipped counts the undecodable entries passed over so far.
func (it *Iterator[K, V]) Skipped() int {
	return it.skipped
}

// Err returns the engine error that ended iteration, if any.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Close releases the engine cursor. It is safe to call more than once.
func (it *Iterator[K, V]) Close() error {
	it.done = true
	if it.it == nil {
		return nil
	}
	err := it.it.Close()
	it.it = nil
	return err
}
