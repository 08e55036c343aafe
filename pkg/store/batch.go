package store

import (
	"bytes"

	"github.com/zhangyunhao116/skipmap"

	"github.com/eigerco/ldb/pkg/log"
	"github.com/eigerco/ldb/pkg/serialization/codec"
)

type batchOp struct {
	key     []byte
	value   []byte
	deleted bool
}

// WriteBatch collects puts and deletes to be applied atomically by
// Database.Write. It must be built from a single goroutine.
type WriteBatch[K, V any] struct {
	keys   codec.Codec[K]
	values codec.Codec[V]
	ops    []batchOp
}

func NewWriteBatch[K, V any](keys codec.Codec[K], values codec.Codec[V]) *WriteBatch[K, V] {
	return &WriteBatch[K, V]{keys: keys, values: values}
}

func (b *WriteBatch[K, V]) Put(key K, value V) {
	b.ops = append(b.ops, batchOp{key: b.keys.Encode(key), value: b.values.Encode(value)})
}

func (b *WriteBatch[K, V]) Delete(key K) {
	b.ops = append(b.ops, batchOp{key: b.keys.Encode(key), deleted: true})
}

// Clear drops every operation recorded so far.
func (b *WriteBatch[K, V]) Clear() {
	b.ops = b.ops[:0]
}

// Len is the number of recorded operations, including overwritten ones.
func (b *WriteBatch[K, V]) Len() int {
	return len(b.ops)
}

// Enumerate calls fn for every operation in insertion order. value is nil
// for deletes. Operations whose key or value does not decode are skipped.
func (b *WriteBatch[K, V]) Enumerate(fn func(key K, value *V)) {
	for _, op := range b.ops {
		key, ok := b.keys.Decode(op.key)
		if !ok {
			log.Store.Warn().Hex("key", op.key).Msg("batch contains key that can't be decoded")
			continue
		}
		if op.deleted {
			fn(key, nil)
			continue
		}
		value, ok := b.values.Decode(op.value)
		if !ok {
			log.Store.Warn().Hex("key", op.key).Msg("batch contains value that can't be decoded")
			continue
		}
		fn(key, &value)
	}
}

// Change is the net effect of a batch on a single key. Value is nil for a
// delete.
type Change[K, V any] struct {
	Key   K
	Value *V
}

// Diff returns the net effect of the batch: one change per key, the last
// write winning, sorted by encoded key.
func (b *WriteBatch[K, V]) Diff() []Change[K, V] {
	latest := skipmap.NewFunc[[]byte, batchOp](func(a, c []byte) bool {
		return bytes.Compare(a, c) < 0
	})
	for _, op := range b.ops {
		latest.Store(op.key, op)
	}

	changes := make([]Change[K, V], 0, latest.Len())
	latest.Range(func(_ []byte, op batchOp) bool {
		key, ok := b.keys.Decode(op.key)
		if !ok {
			return true
		}
		change := Change[K, V]{Key: key}
		if !op.deleted {
			value, ok := b.values.Decode(op.value)
			if !ok {
				return true
			}
			change.Value = &value
		}
		changes = append(changes, change)
		return true
	})
	return changes
}
