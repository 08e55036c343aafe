package store

import (
	"errors"
	"fmt"
	"iter"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/interval"
	"github.com/eigerco/ldb/pkg/log"
	"github.com/eigerco/ldb/pkg/order"
	"github.com/eigerco/ldb/pkg/serialization/codec"
)

// Snapshot is an immutable, possibly narrowed view of a database at a point
// in time. Narrowing returns a new view sharing the same engine snapshot;
// it never mutates the receiver. A Snapshot may be shared between
// goroutines.
type Snapshot[K, V any] struct {
	handle   *handle
	keys     codec.Codec[K]
	values   codec.Codec[V]
	interval interval.Interval[[]byte]
	ro       db.ReadOptions
	reversed bool
}

// RetypeSnapshot reinterprets a snapshot through other codecs, keeping its
// interval, read options and direction.
func RetypeSnapshot[K2, V2, K, V any](s Snapshot[K, V], keys codec.Codec[K2], values codec.Codec[V2]) Snapshot[K2, V2] {
	return Snapshot[K2, V2]{
		handle:   s.handle,
		keys:     keys,
		values:   values,
		interval: s.interval,
		ro:       s.ro,
		reversed: s.reversed,
	}
}

// Get reads key from the snapshot regardless of the view's interval. It
// returns ErrNotFound when the key is absent or its value is undecodable.
func (s Snapshot[K, V]) Get(key K) (V, error) {
	var zero V
	if s.handle == nil {
		return zero, db.ErrSnapshotReleased
	}
	data, err := s.handle.engine.snap.Get(s.keys.Encode(key), s.ro)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("snapshot get: %w", err)
	}
	value, ok := s.values.Decode(data)
	if !ok {
		return zero, ErrNotFound
	}
	return value, nil
}

// Interval returns the byte interval the view iterates over.
func (s Snapshot[K, V]) Interval() interval.Interval[[]byte] {
	return s.interval
}

func (s Snapshot[K, V]) IsEmpty() bool {
	return s.interval.IsEmpty()
}

func (s Snapshot[K, V]) IsReversed() bool {
	return s.reversed
}

// Clamp narrows the view to its intersection with iv.
func (s Snapshot[K, V]) Clamp(iv interval.Interval[[]byte]) Snapshot[K, V] {
	s.interval = s.interval.Clamp(iv)
	return s
}

// From keeps keys greater than or equal to key.
func (s Snapshot[K, V]) From(key K) Snapshot[K, V] {
	return s.Clamp(from(s.keys.Encode(key)))
}

// After keeps keys strictly greater than key.
func (s Snapshot[K, V]) After(key K) Snapshot[K, V] {
	return s.Clamp(from(interval.FirstChild(s.keys.Encode(key))))
}

// To keeps keys strictly less than key.
func (s Snapshot[K, V]) To(key K) Snapshot[K, V] {
	return s.Clamp(to(s.keys.Encode(key)))
}

// Through keeps keys less than or equal to key.
func (s Snapshot[K, V]) Through(key K) Snapshot[K, V] {
	return s.Clamp(to(interval.FirstChild(s.keys.Encode(key))))
}

// HalfOpen keeps keys in [start, end). It panics if start > end.
func (s Snapshot[K, V]) HalfOpen(start, end K) Snapshot[K, V] {
	return s.Clamp(interval.HalfOpen(s.keys.Encode(start), s.keys.Encode(end), order.Bytes))
}

// Closed keeps keys in [start, end]. It panics if start > end.
func (s Snapshot[K, V]) Closed(start, end K) Snapshot[K, V] {
	upper := interval.FirstChild(s.keys.Encode(end))
	return s.Clamp(interval.HalfOpen(s.keys.Encode(start), upper, order.Bytes))
}

// Prefixed keeps keys whose encoding starts with prefix. Keys are returned
// whole, prefix included.
func (s Snapshot[K, V]) Prefixed(prefix []byte) Snapshot[K, V] {
	return s.Clamp(interval.Prefix(prefix))
}

// Reversed flips the iteration direction.
func (s Snapshot[K, V]) Reversed() Snapshot[K, V] {
	s.reversed = !s.reversed
	return s
}

// Noncaching reads without populating the engine's block cache.
func (s Snapshot[K, V]) Noncaching() Snapshot[K, V] {
	s.ro.DontFillCache = true
	return s
}

// Checksummed verifies block checksums of everything read.
func (s Snapshot[K, V]) Checksummed() Snapshot[K, V] {
	s.ro.VerifyChecksums = true
	return s
}

// Release frees the engine snapshot now. Every view sharing it becomes
// unusable. Calling it more than once, or on the zero Snapshot, is a no-op.
func (s Snapshot[K, V]) Release() error {
	if s.handle == nil {
		return nil
	}
	return s.handle.engine.release()
}

// All yields every decodable pair of the view in iteration order. Engine
// errors end the sequence and are logged; use NewIterator to observe them.
func (s Snapshot[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it, err := s.NewIterator()
		if err != nil {
			log.Store.Error().Err(err).Msg("failed to create iterator")
			return
		}
		defer it.Close() //nolint:errcheck

		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			log.Store.Error().Err(err).Msg("iteration stopped")
		}
	}
}

// Keys yields the keys of All.
func (s Snapshot[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values yields the values of All.
func (s Snapshot[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range s.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func from(start []byte) interval.Interval[[]byte] {
	return interval.New(true, true, interval.Exact(start), interval.Highest[[]byte](), order.Bytes)
}

func to(end []byte) interval.Interval[[]byte] {
	return interval.New(true, false, interval.Lowest[[]byte](), interval.Exact(end), order.Bytes)
}
