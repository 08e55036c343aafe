// Package engine opens, destroys and repairs databases of any supported
// engine kind.
package engine

import (
	"fmt"
	"strings"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/db/cleveldb"
	"github.com/eigerco/ldb/pkg/db/goleveldb"
	"github.com/eigerco/ldb/pkg/db/pebble"
	"github.com/eigerco/ldb/pkg/log"
)

type Kind string

const (
	Pebble    Kind = "pebble"
	GoLevelDB Kind = "goleveldb"
	CLevelDB  Kind = "cleveldb"
)

// Kinds lists every supported engine, the default first.
func Kinds() []Kind {
	return []Kind{Pebble, GoLevelDB, CLevelDB}
}

// ParseKind accepts the kind names case-insensitively. The empty string
// selects pebble.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return Pebble, nil
	}
	for _, k := range Kinds() {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown engine %q", s)
}

// Open opens the database at path. An empty path opens a fresh in-memory
// store and ignores o.
func Open(kind Kind, path string, o db.Options) (db.KVStore, error) {
	var (
		kv  db.KVStore
		err error
	)
	switch kind {
	case Pebble:
		if path == "" {
			kv, err = pebble.NewKVStore()
		} else {
			kv, err = pebble.Open(path, o)
		}
	case GoLevelDB:
		if path == "" {
			kv, err = goleveldb.NewKVStore()
		} else {
			kv, err = goleveldb.Open(path, o)
		}
	case CLevelDB:
		if path == "" {
			kv, err = cleveldb.NewKVStore()
		} else {
			kv, err = cleveldb.Open(path, o)
		}
	default:
		return nil, fmt.Errorf("unknown engine %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return kv, nil
}

// Destroy removes the database at path. A missing database is not an error.
func Destroy(kind Kind, path string) error {
	var err error
	switch kind {
	case Pebble:
		err = pebble.Destroy(path)
	case GoLevelDB:
		err = goleveldb.Destroy(path)
	case CLevelDB:
		err = cleveldb.Destroy(path)
	default:
		return fmt.Errorf("unknown engine %q", kind)
	}
	if err != nil {
		return err
	}
	log.Engine.Info().Str("engine", string(kind)).Str("path", path).Msg("destroyed database")
	return nil
}

// Repair salvages as much as possible of a corrupted database at path.
// Engines without a repair procedure return db.ErrUnsupported.
func Repair(kind Kind, path string, o db.Options) error {
	var err error
	switch kind {
	case Pebble:
		err = pebble.Repair(path, o)
	case GoLevelDB:
		err = goleveldb.Repair(path, o)
	case CLevelDB:
		err = cleveldb.Repair(path, o)
	default:
		return fmt.Errorf("unknown engine %q", kind)
	}
	return err
}
