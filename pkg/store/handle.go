package store

import (
	"runtime"
	"sync"

	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/log"
)

// engineSnapshot releases an engine snapshot exactly once.
type engineSnapshot struct {
	snap db.Snapshot
	once sync.Once
	err  error
}

func (e *engineSnapshot) release() error {
	e.once.Do(func() {
		e.err = e.snap.Close()
	})
	return e.err
}

// handle is shared by every Snapshot value narrowed from the same
// Database.Snapshot call. When the last of them becomes unreachable the
// engine snapshot is released by a cleanup.
type handle struct {
	engine *engineSnapshot
}

func newHandle(snap db.Snapshot) *handle {
	h := &handle{engine: &engineSnapshot{snap: snap}}
	runtime.AddCleanup(h, func(e *engineSnapshot) {
		if err := e.release(); err != nil {
			log.Store.Error().Err(err).Msg("failed to release snapshot")
		}
	}, h.engine)
	return h
}
