//go:build darwin || freebsd || linux || netbsd

package cleveldb

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
)

var (
	loadOnce sync.Once
	loadErr  error
)

// LibraryEnv names the environment variable that overrides the shared
// library loaded at run time.
const LibraryEnv = "LEVELDB_LIB"

func libraryName() string {
	if name := os.Getenv(LibraryEnv); name != "" {
		return name
	}
	if runtime.GOOS == "darwin" {
		return "libleveldb.dylib"
	}
	return "libleveldb.so"
}

// Load resolves the native library. It is safe to call repeatedly and
// returns the same error every time when the library is unusable.
func Load() error {
	loadOnce.Do(func() {
		name := libraryName()
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("%w: %s: %v", ErrLibraryUnavailable, name, err)
			return
		}
		loadErr = register(lib)
	})
	return loadErr
}
