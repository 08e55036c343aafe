//go:build !(darwin || freebsd || linux || netbsd)

package cleveldb

import (
	"fmt"
	"runtime"
)

const LibraryEnv = "LEVELDB_LIB"

// Load always fails: purego cannot dlopen on this platform.
func Load() error {
	return fmt.Errorf("%w: unsupported platform %s", ErrLibraryUnavailable, runtime.GOOS)
}
