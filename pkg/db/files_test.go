package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
}

func exists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestRemoveDatabaseDir(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, dir string)
	}{
		{
			name: "missing_dir",
			fn: func(t *testing.T, dir string) {
				assert.NoError(t, RemoveDatabaseDir(filepath.Join(dir, "absent"), IsLevelDBMarker, IsLevelDBFile))
			},
		},
		{
			name: "refuses_unrelated_dir",
			fn: func(t *testing.T, dir string) {
				touch(t, dir, "thesis.txt", "000001.txt")

				err := RemoveDatabaseDir(dir, IsLevelDBMarker, IsLevelDBFile)
				assert.ErrorIs(t, err, ErrNotDatabase)
				assert.True(t, exists(t, filepath.Join(dir, "thesis.txt")))
				assert.True(t, exists(t, filepath.Join(dir, "000001.txt")))
			},
		},
		{
			name: "removes_only_database_files",
			fn: func(t *testing.T, dir string) {
				touch(t, dir, "CURRENT", "LOCK", "LOG", "MANIFEST-000002", "000003.log", "000005.ldb", "thesis.txt", "app.log")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0o700))

				require.NoError(t, RemoveDatabaseDir(dir, IsLevelDBMarker, IsLevelDBFile))
				for _, name := range []string{"CURRENT", "LOCK", "LOG", "MANIFEST-000002", "000003.log", "000005.ldb"} {
					assert.False(t, exists(t, filepath.Join(dir, name)), name)
				}
				assert.True(t, exists(t, filepath.Join(dir, "thesis.txt")))
				assert.True(t, exists(t, filepath.Join(dir, "app.log")))
				assert.True(t, exists(t, filepath.Join(dir, "notes")))
			},
		},
		{
			name: "removes_emptied_dir",
			fn: func(t *testing.T, dir string) {
				db := filepath.Join(dir, "db")
				require.NoError(t, os.Mkdir(db, 0o700))
				touch(t, db, "CURRENT", "LOCK", "MANIFEST-000002", "000003.log")

				require.NoError(t, RemoveDatabaseDir(db, IsLevelDBMarker, IsLevelDBFile))
				assert.False(t, exists(t, db))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, t.TempDir())
		})
	}
}

func TestIsNumberedFile(t *testing.T) {
	assert.True(t, IsNumberedFile("000012.sst", ".sst"))
	assert.True(t, IsNumberedFile("7.log", ".sst", ".log"))
	assert.False(t, IsNumberedFile(".sst", ".sst"))
	assert.False(t, IsNumberedFile("app.log", ".log"))
	assert.False(t, IsNumberedFile("000012.sst.bak", ".sst"))
}
