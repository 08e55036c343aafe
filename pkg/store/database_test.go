package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/serialization/codec"
)

func TestDatabase(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, kv db.KVStore)
	}{
		{
			name: "string_database",
			fn:   testStringDatabase,
		},
		{
			name: "undecodable_value_is_not_found",
			fn:   testUndecodableValueIsNotFound,
		},
		{
			name: "write_batch",
			fn:   testWriteBatch,
		},
		{
			name: "empty_batch",
			fn:   testEmptyBatch,
		},
		{
			name: "numeric_keys",
			fn:   testNumericKeys,
		},
		{
			name: "approximate_size",
			fn:   testApproximateSize,
		},
		{
			name: "closed",
			fn:   testClosed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			forEachEngine(t, tc.fn)
		})
	}
}

func testStringDatabase(t *testing.T, kv db.KVStore) {
	d := New[string, string](kv, codec.String{}, codec.String{})

	require.NoError(t, d.Put("foo", "bar"))

	value, err := d.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", value)

	raw, err := d.Raw().Get([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("bar"), raw)

	require.NoError(t, d.Delete("foo"))
	_, err = d.Get("foo")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, d.Put("", ""))
	value, err = d.Get("")
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func testUndecodableValueIsNotFound(t *testing.T, kv db.KVStore) {
	d := New[string, string](kv, codec.String{}, codec.String{})
	raw := Retype(d, codec.Bytes{}, codec.Bytes{})

	require.NoError(t, raw.Put([]byte("bad"), []byte{0xff, 0xfe}))
	require.NoError(t, d.Put("good", "value"))

	_, err := d.Get("bad")
	assert.ErrorIs(t, err, ErrNotFound)

	value, err := raw.Get([]byte("bad"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xfe}, value)
}

func testWriteBatch(t *testing.T, kv db.KVStore) {
	d := New[string, string](kv, codec.String{}, codec.String{})

	batch := d.NewBatch()
	batch.Put("foo", "bar")
	batch.Delete("foo")
	assert.Equal(t, []Change[string, string]{{Key: "foo"}}, batch.Diff())

	batch.Put("qux", "abcd")
	batch.Delete("def")
	batch.Delete("bar")
	batch.Put("foo", "def")
	assert.Equal(t, 6, batch.Len())

	diff := batch.Diff()
	require.Len(t, diff, 4)
	assert.Equal(t, "bar", diff[0].Key)
	assert.Nil(t, diff[0].Value)
	assert.Equal(t, "def", diff[1].Key)
	assert.Nil(t, diff[1].Value)
	assert.Equal(t, "foo", diff[2].Key)
	require.NotNil(t, diff[2].Value)
	assert.Equal(t, "def", *diff[2].Value)
	assert.Equal(t, "qux", diff[3].Key)
	require.NotNil(t, diff[3].Value)
	assert.Equal(t, "abcd", *diff[3].Value)

	var enumerated []string
	batch.Enumerate(func(key string, value *string) {
		if value == nil {
			enumerated = append(enumerated, "-"+key)
			return
		}
		enumerated = append(enumerated, key+"="+*value)
	})
	assert.Equal(t, []string{"foo=bar", "-foo", "qux=abcd", "-def", "-bar", "foo=def"}, enumerated)

	require.NoError(t, d.Put("bar", "ghi"))
	require.NoError(t, d.Put("baz", "jkl"))

	require.NoError(t, d.Write(batch, false))

	_, err := d.Get("bar")
	assert.ErrorIs(t, err, ErrNotFound)
	value, err := d.Get("baz")
	require.NoError(t, err)
	assert.Equal(t, "jkl", value)
	_, err = d.Get("def")
	assert.ErrorIs(t, err, ErrNotFound)
	value, err = d.Get("foo")
	require.NoError(t, err)
	assert.Equal(t, "def", value)
	value, err = d.Get("qux")
	require.NoError(t, err)
	assert.Equal(t, "abcd", value)

	// A batch can be written more than once and cleared.
	require.NoError(t, d.Write(batch, true))
	batch.Clear()
	assert.Zero(t, batch.Len())
	assert.Empty(t, batch.Diff())
}

func testEmptyBatch(t *testing.T, kv db.KVStore) {
	d := New[string, string](kv, codec.String{}, codec.String{})
	require.NoError(t, d.Write(d.NewBatch(), true))
}

func testNumericKeys(t *testing.T, kv db.KVStore) {
	d := New[int64, float64](kv, codec.Signed[int64]{}, codec.Float64{})

	batch := d.NewBatch()
	for _, k := range []int64{5, -3, 0, 1 << 40, -1 << 40} {
		batch.Put(k, float64(k)/2)
	}
	require.NoError(t, d.Write(batch, false))

	snap, err := d.Snapshot()
	require.NoError(t, err)
	defer snap.Release() //nolint:errcheck

	assert.Equal(t, []int64{-1 << 40, -3, 0, 5, 1 << 40}, collectKeys(snap))
	assert.Equal(t, []int64{-3, 0}, collectKeys(snap.From(-3).To(5)))

	value, err := d.Get(-3)
	require.NoError(t, err)
	assert.Equal(t, -1.5, value)
}

func testApproximateSize(t *testing.T, kv db.KVStore) {
	d := New[uint32, []byte](kv, codec.Unsigned[uint32]{}, codec.Bytes{})
	for i := uint32(0); i < 100; i++ {
		require.NoError(t, d.Put(i, make([]byte, 128)))
	}

	_, err := d.ApproximateSize(10, 90)
	require.NoError(t, err)

	snap, err := d.Snapshot()
	require.NoError(t, err)
	defer snap.Release() //nolint:errcheck

	_, err = d.ApproximateSizeOf(snap.From(50).Interval())
	require.NoError(t, err)

	size, err := d.ApproximateSizeOf(snap.HalfOpen(20, 30).HalfOpen(40, 50).Interval())
	require.NoError(t, err)
	assert.Zero(t, size)
}

func testClosed(t *testing.T, kv db.KVStore) {
	d := New[string, string](kv, codec.String{}, codec.String{})
	retyped := Retype(d, codec.Bytes{}, codec.Bytes{})

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	_, err := d.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, d.Put("k", "v"), ErrClosed)
	assert.ErrorIs(t, d.Delete("k"), ErrClosed)
	assert.ErrorIs(t, d.Write(d.NewBatch(), false), ErrClosed)
	snap, err := d.Snapshot()
	assert.ErrorIs(t, err, ErrClosed)

	// The zero snapshot returned with the error reports itself released.
	_, err = snap.Get("k")
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)
	_, err = snap.NewIterator()
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)
	assert.Empty(t, collectKeys(snap))
	assert.NoError(t, snap.Release())

	_, err = retyped.Get([]byte("k"))
	assert.ErrorIs(t, err, ErrClosed)
}
