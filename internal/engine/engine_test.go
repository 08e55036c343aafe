package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/db/cleveldb"
)

func available(t *testing.T, kind Kind) {
	t.Helper()
	if kind != CLevelDB {
		return
	}
	if err := cleveldb.Load(); err != nil {
		t.Skip(err)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in       string
		expected Kind
		err      bool
	}{
		{in: "", expected: Pebble},
		{in: "pebble", expected: Pebble},
		{in: "GoLevelDB", expected: GoLevelDB},
		{in: "cleveldb", expected: CLevelDB},
		{in: "rocksdb", err: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			kind, err := ParseKind(tc.in)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestEngine(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			available(t, kind)

			t.Run("in_memory", func(t *testing.T) {
				kv, err := Open(kind, "", db.Default())
				require.NoError(t, err)
				require.NoError(t, kv.Put([]byte("k"), []byte("v")))
				value, err := kv.Get([]byte("k"))
				require.NoError(t, err)
				assert.Equal(t, []byte("v"), value)
				require.NoError(t, kv.Close())
			})

			t.Run("on_disk_lifecycle", func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "db")

				kv, err := Open(kind, path, db.Default())
				require.NoError(t, err)
				require.NoError(t, kv.Put([]byte("k"), []byte("v")))
				require.NoError(t, kv.Close())

				err = Repair(kind, path, db.Default())
				if kind == Pebble {
					assert.ErrorIs(t, err, db.ErrUnsupported)
				} else {
					require.NoError(t, err)
				}

				kv, err = Open(kind, path, db.Default())
				require.NoError(t, err)
				value, err := kv.Get([]byte("k"))
				require.NoError(t, err)
				assert.Equal(t, []byte("v"), value)
				require.NoError(t, kv.Close())

				require.NoError(t, Destroy(kind, path))
				require.NoError(t, Destroy(kind, path))

				missing := db.Default()
				missing.CreateIfMissing = false
				_, err = Open(kind, path, missing)
				assert.Error(t, err)
			})

			t.Run("destroy_keeps_foreign_files", func(t *testing.T) {
				dir := t.TempDir()
				thesis := filepath.Join(dir, "thesis.txt")
				require.NoError(t, os.WriteFile(thesis, []byte("draft"), 0o600))

				assert.ErrorIs(t, Destroy(kind, dir), db.ErrNotDatabase)
				assert.FileExists(t, thesis)

				kv, err := Open(kind, dir, db.Default())
				require.NoError(t, err)
				require.NoError(t, kv.Put([]byte("k"), []byte("v")))
				require.NoError(t, kv.Close())

				require.NoError(t, Destroy(kind, dir))
				assert.FileExists(t, thesis)

				entries, err := os.ReadDir(dir)
				require.NoError(t, err)
				require.Len(t, entries, 1)
				assert.Equal(t, "thesis.txt", entries[0].Name())
			})
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Open("rocksdb", "", db.Default())
		assert.Error(t, err)
		assert.Error(t, Destroy("rocksdb", "x"))
		assert.Error(t, Repair("rocksdb", "x", db.Default()))
	})
}
