package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckDatabaseDir fails with ErrNotDatabase when dir holds files but none
// for which marker reports true. A missing or empty dir passes.
func CheckDatabaseDir(dir string, marker func(name string) bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		if e.Type().IsRegular() && marker(e.Name()) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotDatabase, dir)
}

// RemoveDatabaseDir deletes the regular files of dir for which owned reports
// true, then dir itself if nothing else is left in it. Other files and
// subdirectories are kept. It refuses a dir that fails CheckDatabaseDir.
func RemoveDatabaseDir(dir string, marker, owned func(name string) bool) error {
	if err := CheckDatabaseDir(dir, marker); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	kept := 0
	for _, e := range entries {
		if !e.Type().IsRegular() || !owned(e.Name()) {
			kept++
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if kept > 0 {
		return nil
	}
	return os.Remove(dir)
}

// IsLevelDBMarker reports whether name marks a LevelDB database directory.
func IsLevelDBMarker(name string) bool {
	return name == "CURRENT"
}

// IsLevelDBFile reports whether name is one of the files LevelDB keeps in a
// database directory.
func IsLevelDBFile(name string) bool {
	switch name {
	case "CURRENT", "CURRENT.bak", "LOCK", "LOG", "LOG.old":
		return true
	}
	return strings.HasPrefix(name, "MANIFEST-") ||
		IsNumberedFile(name, ".ldb", ".sst", ".log", ".tmp", ".dbtmp")
}

// IsNumberedFile reports whether name is a decimal file number followed by
// one of exts, such as "000012.sst".
func IsNumberedFile(name string, exts ...string) bool {
	for _, ext := range exts {
		base, ok := strings.CutSuffix(name, ext)
		if ok && base != "" && strings.Trim(base, "0123456789") == "" {
			return true
		}
	}
	return false
}
