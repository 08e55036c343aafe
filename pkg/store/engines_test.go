package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/db/cleveldb"
	"github.com/eigerco/ldb/pkg/db/goleveldb"
	"github.com/eigerco/ldb/pkg/db/pebble"
)

var engines = []struct {
	name string
	open func() (db.KVStore, error)
}{
	{
		name: "pebble",
		open: func() (db.KVStore, error) { return pebble.NewKVStore() },
	},
	{
		name: "goleveldb",
		open: func() (db.KVStore, error) { return goleveldb.NewKVStore() },
	},
	{
		name: "cleveldb",
		open: func() (db.KVStore, error) { return cleveldb.NewKVStore() },
	},
}

// forEachEngine runs fn against a fresh in-memory store of every engine.
// The native engine is skipped when its library cannot be loaded.
func forEachEngine(t *testing.T, fn func(t *testing.T, kv db.KVStore)) {
	for _, engine := range engines {
		t.Run(engine.name, func(t *testing.T) {
			if engine.name == "cleveldb" {
				if err := cleveldb.Load(); err != nil {
					t.Skip(err)
				}
			}
			kv, err := engine.open()
			require.NoError(t, err)
			defer kv.Close() //nolint:errcheck

			fn(t, kv)
		})
	}
}
