package testutils

import (
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/pkg/db"
)

func RandomBytes(t *testing.T, n int) []byte {
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// Fill writes every pair of data into store.
func Fill(t *testing.T, store db.KVStore, data map[string]string) {
	t.Helper()
	for k, v := range data {
		require.NoError(t, store.Put([]byte(k), []byte(v)))
	}
}

// SortedKeys returns the keys of data in bytewise order.
func SortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Collect drains it forward from its current state and returns the keys seen.
func Collect(t *testing.T, it db.Iterator) []string {
	t.Helper()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	return keys
}
