// Package store layers typed keys and values over a db.KVStore. Keys are
// encoded with order-preserving codecs so that typed ranges map onto byte
// ranges of the engine.
package store

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/interval"
	"github.com/eigerco/ldb/pkg/serialization/codec"
)

// Database is a typed view of a key-value store.
type Database[K, V any] struct {
	kv     db.KVStore
	keys   codec.Codec[K]
	values codec.Codec[V]
	closed *atomic.Bool
}

// New wraps kv with the given key and value codecs. The key codec should be
// order-preserving for range queries to follow K's natural order.
func New[K, V any](kv db.KVStore, keys codec.Codec[K], values codec.Codec[V]) *Database[K, V] {
	return &Database[K, V]{kv: kv, keys: keys, values: values, closed: new(atomic.Bool)}
}

// Retype reinterprets the same store through other codecs. Both databases
// share the underlying store and its lifetime.
func Retype[K2, V2, K, V any](d *Database[K, V], keys codec.Codec[K2], values codec.Codec[V2]) *Database[K2, V2] {
	return &Database[K2, V2]{kv: d.kv, keys: keys, values: values, closed: d.closed}
}

// Raw returns the underlying store.
func (d *Database[K, V]) Raw() db.KVStore {
	return d.kv
}

// Get returns ErrNotFound when key is absent or its value is undecodable.
func (d *Database[K, V]) Get(key K) (V, error) {
	var zero V
	if d.closed.Load() {
		return zero, ErrClosed
	}
	data, err := d.kv.Get(d.keys.Encode(key))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get: %w", err)
	}
	value, ok := d.values.Decode(data)
	if !ok {
		return zero, ErrNotFound
	}
	return value, nil
}

func (d *Database[K, V]) Put(key K, value V) error {
	if d.closed.Load() {
		return ErrClosed
	}
	if err := d.kv.Put(d.keys.Encode(key), d.values.Encode(value)); err != nil {
		return fmt.Errorf("put: %w", err)
	}
	return nil
}

func (d *Database[K, V]) Delete(key K) error {
	if d.closed.Load() {
		return ErrClosed
	}
	if err := d.kv.Delete(d.keys.Encode(key)); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// NewBatch returns an empty batch using the database's codecs.
func (d *Database[K, V]) NewBatch() *WriteBatch[K, V] {
	return NewWriteBatch(d.keys, d.values)
}

// Write applies every operation of batch atomically. An empty batch is a
// no-op.
func (d *Database[K, V]) Write(batch *WriteBatch[K, V], sync bool) error {
	if d.closed.Load() {
		return ErrClosed
	}
	if batch.Len() == 0 {
		return nil
	}

	b := d.kv.NewBatch()
	defer b.Close() //nolint:errcheck

	for _, op := range batch.ops {
		var err error
		if op.deleted {
			err = b.Delete(op.key)
		} else {
			err = b.Put(op.key, op.value)
		}
		if err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := b.Commit(sync); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Snapshot captures the current state of the database. The engine snapshot
// is released by Snapshot.Release or once no view derived from it is
// reachable.
func (d *Database[K, V]) Snapshot() (Snapshot[K, V], error) {
	if d.closed.Load() {
		return Snapshot[K, V]{}, ErrClosed
	}
	snap, err := d.kv.NewSnapshot()
	if err != nil {
		return Snapshot[K, V]{}, fmt.Errorf("snapshot: %w", err)
	}
	return Snapshot[K, V]{
		handle:   newHandle(snap),
		keys:     d.keys,
		values:   d.values,
		interval: interval.AllBytes(),
	}, nil
}

// ApproximateSize estimates the space used by keys in [from, to).
func (d *Database[K, V]) ApproximateSize(from, to K) (uint64, error) {
	if d.closed.Load() {
		return 0, ErrClosed
	}
	return d.kv.EstimateSize(d.keys.Encode(from), d.keys.Encode(to))
}

// ApproximateSizeOf estimates the space used by a raw byte interval.
func (d *Database[K, V]) ApproximateSizeOf(iv interval.Interval[[]byte]) (uint64, error) {
	if d.closed.Load() {
		return 0, ErrClosed
	}
	lower, upper := interval.EngineBounds(iv)
	if iv.IsEmpty() {
		return 0, nil
	}
	return d.kv.EstimateSize(lower, upper)
}

// Close closes the underlying store. Retyped databases sharing it are
// closed as well.
func (d *Database[K, V]) Close() error {
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}
	return d.kv.Close()
}
