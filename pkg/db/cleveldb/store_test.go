package cleveldb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/internal/testutils"
	"github.com/eigerco/ldb/pkg/db"
)

func requireLibrary(t *testing.T) {
	t.Helper()
	if err := Load(); err != nil {
		t.Skipf("native leveldb not available (set %s): %v", LibraryEnv, err)
	}
}

func TestKVStore(t *testing.T) {
	requireLibrary(t)

	testutils.RunKVStoreSuite(t, func(t *testing.T) db.KVStore {
		store, err := NewKVStore()
		require.NoError(t, err)
		return store
	})
}

func TestRangeIterator(t *testing.T) {
	requireLibrary(t)

	store, err := NewKVStore()
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	testutils.Fill(t, store, map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"})

	tests := []struct {
		name       string
		start, end []byte
		forward    []string
	}{
		{name: "both_bounds", start: []byte("b"), end: []byte("d"), forward: []string{"b", "c"}},
		{name: "start_only", start: []byte("c"), forward: []string{"c", "d", "e"}},
		{name: "end_only", end: []byte("b"), forward: []string{"a"}},
		{name: "end_past_last", start: []byte("d"), end: []byte("z"), forward: []string{"d", "e"}},
		{name: "empty", start: []byte("bb"), end: []byte("bc"), forward: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it, err := store.NewIterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Close() //nolint:errcheck

			assert.Equal(t, tc.forward, testutils.Collect(t, it))

			var backward []string
			for ok := it.Last(); ok; ok = it.Prev() {
				backward = append(backward, string(it.Key()))
			}
			for i, j := 0, len(backward)-1; i < j; i, j = i+1, j-1 {
				backward[i], backward[j] = backward[j], backward[i]
			}
			assert.Equal(t, tc.forward, backward)

			_, err = it.Value()
			assert.ErrorIs(t, err, db.ErrIteratorInvalid)
		})
	}
}

func TestOnDisk(t *testing.T) {
	requireLibrary(t)

	tests := []struct {
		name string
		fn   func(t *testing.T, path string)
	}{
		{
			name: "reopen_keeps_data",
			fn:   testReopenKeepsData,
		},
		{
			name: "engine_errors_carry_message",
			fn:   testEngineErrors,
		},
		{
			name: "destroy_and_repair",
			fn:   testDestroyAndRepair,
		},
		{
			name: "close_destroys_leaked_iterators",
			fn:   testCloseDestroysLeakedIterators,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, filepath.Join(t.TempDir(), "db"))
		})
	}
}

func testReopenKeepsData(t *testing.T, path string) {
	store, err := Open(path, db.Default())
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	store, err = Open(path, db.Default())
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	val, err := store.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))
}

func testEngineErrors(t *testing.T, path string) {
	opts := db.Default()
	opts.CreateIfMissing = false
	_, err := Open(path, opts)
	require.Error(t, err)

	var engineErr *Error
	require.True(t, errors.As(err, &engineErr))
	assert.NotEmpty(t, engineErr.Message)
}

func testDestroyAndRepair(t *testing.T, path string) {
	store, err := Open(path, db.Default())
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("k"), []byte("v")))
	require.NoError(t, store.Close())

	require.NoError(t, Repair(path, db.Default()))

	store, err = Open(path, db.Default())
	require.NoError(t, err)
	val, err := store.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))
	require.NoError(t, store.Close())

	require.NoError(t, Destroy(path))

	opts := db.Default()
	opts.CreateIfMissing = false
	_, err = Open(path, opts)
	assert.Error(t, err)
}

func testCloseDestroysLeakedIterators(t *testing.T, path string) {
	store, err := Open(path, db.Default())
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("k"), []byte("v")))

	it, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	require.True(t, it.First())

	require.NoError(t, store.Close())

	assert.False(t, it.Valid())
	assert.False(t, it.Next())
	assert.NoError(t, it.Close())
}
