package testutils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/pkg/db"
)

// KVStoreCase is one behaviour every db.KVStore engine must show.
type KVStoreCase struct {
	Name string
	Fn   func(t *testing.T, store db.KVStore)
}

// KVStoreCases lists the behaviour shared by all engines.
var KVStoreCases = []KVStoreCase{
	{Name: "basic_put_get", Fn: testBasicPutGet},
	{Name: "delete_operations", Fn: testDelete},
	{Name: "store_closure", Fn: testStoreClosure},
	{Name: "basic_batch_operations", Fn: testBasicBatchOperations},
	{Name: "batch_commit_closure", Fn: testBatchCommitAndClose},
	{Name: "multiple_batches", Fn: testMultipleBatches},
	{Name: "full_range_iteration", Fn: testFullRangeIteration},
	{Name: "bounded_range_iteration", Fn: testBoundedRangeIteration},
	{Name: "iterator_validity", Fn: testIteratorValidity},
	{Name: "reverse_iteration", Fn: testReverseIteration},
	{Name: "seek", Fn: testSeek},
	{Name: "snapshot_isolation", Fn: testSnapshotIsolation},
	{Name: "snapshot_iterator_bounds", Fn: testSnapshotIteratorBounds},
	{Name: "snapshot_release", Fn: testSnapshotRelease},
	{Name: "close_releases_snapshots", Fn: testCloseReleasesSnapshots},
	{Name: "snapshot_reads_racing_close", Fn: testSnapshotReadsRacingClose},
	{Name: "estimate_size", Fn: testEstimateSize},
	{Name: "returned_slices_are_copies", Fn: testReturnedSlicesAreCopies},
}

// RunKVStoreSuite runs every case against a fresh store from open.
func RunKVStoreSuite(t *testing.T, open func(t *testing.T) db.KVStore) {
	for _, tc := range KVStoreCases {
		t.Run(tc.Name, func(t *testing.T) {
			store := open(t)
			defer store.Close() //nolint:errcheck

			tc.Fn(t, store)
		})
	}
}

func testBasicPutGet(t *testing.T, store db.KVStore) {
	key := []byte("test-key")
	value := []byte("test-value")

	err := store.Put(key, value)
	require.NoError(t, err)

	retrieved, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, retrieved)

	// Test non-existent key
	_, err = store.Get([]byte("non-existent"))
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func testDelete(t *testing.T, store db.KVStore) {
	key := []byte("delete-test")
	value := []byte("to-be-deleted")

	err := store.Put(key, value)
	require.NoError(t, err)

	err = store.Delete(key)
	require.NoError(t, err)

	_, err = store.Get(key)
	assert.ErrorIs(t, err, db.ErrNotFound)

	// Delete non-existent key should not error
	err = store.Delete([]byte("non-existent"))
	assert.NoError(t, err)
}

func testStoreClosure(t *testing.T, store db.KVStore) {
	err := store.Close()
	require.NoError(t, err)

	// Test operations after close
	_, err = store.Get([]byte("key"))
	assert.ErrorIs(t, err, db.ErrClosed)

	err = store.Put([]byte("key"), []byte("value"))
	assert.ErrorIs(t, err, db.ErrClosed)

	err = store.Delete([]byte("key"))
	assert.ErrorIs(t, err, db.ErrClosed)

	_, err = store.NewSnapshot()
	assert.ErrorIs(t, err, db.ErrClosed)

	_, err = store.NewIterator(nil, nil)
	assert.ErrorIs(t, err, db.ErrClosed)

	// Double close should not error
	err = store.Close()
	assert.NoError(t, err)
}

func testBasicBatchOperations(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	keys := [][]byte{[]byte("key1"), []byte("key2"), []byte("key3")}
	values := [][]byte{[]byte("value1"), []byte("value2"), []byte("value3")}

	for i := range keys {
		err := batch.Put(keys[i], values[i])
		require.NoError(t, err)
	}

	// Delete one key in the same batch
	err := batch.Delete(keys[1])
	require.NoError(t, err)
	assert.Equal(t, 4, batch.Len())

	// Nothing is visible before commit
	_, err = store.Get(keys[0])
	assert.ErrorIs(t, err, db.ErrNotFound)

	err = batch.Commit(false)
	require.NoError(t, err)

	val1, err := store.Get(keys[0])
	require.NoError(t, err)
	assert.Equal(t, values[0], val1)

	// Verify deleted key
	_, err = store.Get(keys[1])
	assert.ErrorIs(t, err, db.ErrNotFound)

	val3, err := store.Get(keys[2])
	require.NoError(t, err)
	assert.Equal(t, values[2], val3)
}

func testBatchCommitAndClose(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()

	err := batch.Put([]byte("key"), []byte("value"))
	require.NoError(t, err)

	err = batch.Commit(true)
	require.NoError(t, err)

	// Operations after commit should fail
	err = batch.Put([]byte("key2"), []byte("value2"))
	assert.ErrorIs(t, err, db.ErrBatchDone)

	err = batch.Delete([]byte("key2"))
	assert.ErrorIs(t, err, db.ErrBatchDone)

	// Second commit should fail
	err = batch.Commit(false)
	assert.ErrorIs(t, err, db.ErrBatchDone)

	// Close should not error
	err = batch.Close()
	assert.NoError(t, err)

	// Double close should not error
	err = batch.Close()
	assert.NoError(t, err)
}

func testMultipleBatches(t *testing.T, store db.KVStore) {
	batch1 := store.NewBatch()
	batch2 := store.NewBatch()
	defer batch1.Close() //nolint:errcheck
	defer batch2.Close() //nolint:errcheck

	err := batch1.Put([]byte("key1"), []byte("batch1"))
	require.NoError(t, err)
	err = batch2.Put([]byte("key2"), []byte("batch2"))
	require.NoError(t, err)

	err = batch1.Commit(false)
	require.NoError(t, err)
	err = batch2.Commit(false)
	require.NoError(t, err)

	val1, err := store.Get([]byte("key1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("batch1"), val1)

	val2, err := store.Get([]byte("key2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("batch2"), val2)
}

func testFullRangeIteration(t *testing.T, store db.KVStore) {
	data := map[string]string{
		"a": "value-a",
		"b": "value-b",
		"c": "value-c",
		"d": "value-d",
	}
	Fill(t, store, data)

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	var keys []string
	for iter.Next() {
		value, err := iter.Value()
		require.NoError(t, err)

		expectedValue, exists := data[string(iter.Key())]
		assert.True(t, exists)
		assert.Equal(t, []byte(expectedValue), value)
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, SortedKeys(data), keys)
}

func testBoundedRangeIteration(t *testing.T, store db.KVStore) {
	Fill(t, store, map[string]string{
		"a": "value-a",
		"b": "value-b",
		"c": "value-c",
		"d": "value-d",
		"e": "value-e",
	})

	// Test bounded range iteration (b to d)
	iter, err := store.NewIterator([]byte("b"), []byte("e"))
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	assert.Equal(t, []string{"b", "c", "d"}, Collect(t, iter))
}

func testIteratorValidity(t *testing.T, store db.KVStore) {
	testData := map[string]string{
		"key1": "value1",
		"key2": "value2",
	}
	Fill(t, store, testData)

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	// Initial state - iterator is not positioned
	assert.False(t, iter.Valid())
	assert.Nil(t, iter.Key())

	// First Next() should position at first element
	assert.True(t, iter.Next())
	assert.True(t, iter.Valid())

	val, err := iter.Value()
	require.NoError(t, err)
	assert.Equal(t, "key1", string(iter.Key()))
	assert.Equal(t, "value1", string(val))

	assert.True(t, iter.Next())
	assert.Equal(t, "key2", string(iter.Key()))

	// No more elements
	assert.False(t, iter.Next())
	assert.False(t, iter.Valid())

	// Exhausted iterators stay exhausted
	assert.False(t, iter.Next())
	assert.False(t, iter.Prev())

	// Value() should error when invalid
	_, err = iter.Value()
	assert.ErrorIs(t, err, db.ErrIteratorInvalid)
}

func testReverseIteration(t *testing.T, store db.KVStore) {
	Fill(t, store, map[string]string{"a": "1", "b": "2", "c": "3"})

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	var keys []string
	for ok := iter.Prev(); ok; ok = iter.Prev() {
		keys = append(keys, string(iter.Key()))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)

	require.True(t, iter.Last())
	assert.Equal(t, "c", string(iter.Key()))
	require.True(t, iter.First())
	assert.Equal(t, "a", string(iter.Key()))
	assert.False(t, iter.Prev())
}

func testSeek(t *testing.T, store db.KVStore) {
	Fill(t, store, map[string]string{"b": "1", "d": "2", "f": "3"})

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	require.True(t, iter.Seek([]byte("d")))
	assert.Equal(t, "d", string(iter.Key()))

	require.True(t, iter.Seek([]byte("c")))
	assert.Equal(t, "d", string(iter.Key()))

	require.True(t, iter.Prev())
	assert.Equal(t, "b", string(iter.Key()))

	assert.False(t, iter.Seek([]byte("g")))
	assert.False(t, iter.Valid())

	require.True(t, iter.Seek(nil))
	assert.Equal(t, "b", string(iter.Key()))
}

func testSnapshotIsolation(t *testing.T, store db.KVStore) {
	Fill(t, store, map[string]string{"a": "old", "b": "kept"})

	snap, err := store.NewSnapshot()
	require.NoError(t, err)
	defer snap.Close() //nolint:errcheck

	require.NoError(t, store.Put([]byte("a"), []byte("new")))
	require.NoError(t, store.Put([]byte("c"), []byte("added")))
	require.NoError(t, store.Delete([]byte("b")))

	val, err := snap.Get([]byte("a"), db.ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "old", string(val))

	val, err = snap.Get([]byte("b"), db.ReadOptions{VerifyChecksums: true})
	require.NoError(t, err)
	assert.Equal(t, "kept", string(val))

	_, err = snap.Get([]byte("c"), db.ReadOptions{DontFillCache: true})
	assert.ErrorIs(t, err, db.ErrNotFound)

	iter, err := snap.NewIterator(db.ReadOptions{})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck
	assert.Equal(t, []string{"a", "b"}, Collect(t, iter))

	live, err := store.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(live))
}

func testSnapshotIteratorBounds(t *testing.T, store db.KVStore) {
	Fill(t, store, map[string]string{"a": "1", "b": "2", "c": "3", "d": "4"})

	snap, err := store.NewSnapshot()
	require.NoError(t, err)
	defer snap.Close() //nolint:errcheck

	iter, err := snap.NewIterator(db.ReadOptions{LowerBound: []byte("b"), UpperBound: []byte("d")})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	// Bounds are hints; whatever the engine returns must be in order and
	// include everything inside them.
	keys := Collect(t, iter)
	assert.Subset(t, keys, []string{"b", "c"})
	assert.IsNonDecreasing(t, keys)
}

func testSnapshotRelease(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("a"), []byte("1")))

	snap, err := store.NewSnapshot()
	require.NoError(t, err)

	require.NoError(t, snap.Close())
	require.NoError(t, snap.Close())

	_, err = snap.Get([]byte("a"), db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)

	_, err = snap.NewIterator(db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)
}

func testCloseReleasesSnapshots(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("a"), []byte("1")))

	snap, err := store.NewSnapshot()
	require.NoError(t, err)

	require.NoError(t, store.Close())

	_, err = snap.Get([]byte("a"), db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)
	assert.NoError(t, snap.Close())
}

func testSnapshotReadsRacingClose(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("a"), []byte("1")))

	snap, err := store.NewSnapshot()
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 100; j++ {
				value, err := snap.Get([]byte("a"), db.ReadOptions{})
				if err != nil {
					assert.ErrorIs(t, err, db.ErrSnapshotReleased)
					return
				}
				assert.Equal(t, []byte("1"), value)
			}
		}()
	}
	close(start)
	require.NoError(t, store.Close())
	wg.Wait()

	_, err = snap.NewIterator(db.ReadOptions{})
	assert.ErrorIs(t, err, db.ErrSnapshotReleased)
}

func testEstimateSize(t *testing.T, store db.KVStore) {
	for i := 0; i < 64; i++ {
		key := []byte{byte('a' + i%26), byte(i)}
		require.NoError(t, store.Put(key, RandomBytes(t, 256)))
	}

	_, err := store.EstimateSize(nil, nil)
	require.NoError(t, err)

	_, err = store.EstimateSize([]byte("b"), []byte("m"))
	require.NoError(t, err)

	size, err := store.EstimateSize([]byte("m"), []byte("b"))
	require.NoError(t, err)
	assert.Zero(t, size)
}

func testReturnedSlicesAreCopies(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte("k"), []byte("v")))

	val, err := store.Get([]byte("k"))
	require.NoError(t, err)
	val[0] = 'x'

	iter, err := store.NewIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	require.True(t, iter.First())
	key := iter.Key()
	key[0] = 'x'
	value, err := iter.Value()
	require.NoError(t, err)
	assert.Equal(t, "v", string(value))
	assert.Equal(t, "k", string(iter.Key()))
}
