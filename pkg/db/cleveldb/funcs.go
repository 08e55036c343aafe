package cleveldb

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Handles owned by C are held as uintptr. Pointers into Go memory are passed
// as unsafe.Pointer so they stay reachable for the duration of a call.
var (
	leveldbOptionsCreate                  func() uintptr
	leveldbOptionsDestroy                 func(o uintptr)
	leveldbOptionsSetCreateIfMissing      func(o uintptr, v uint8)
	leveldbOptionsSetErrorIfExists        func(o uintptr, v uint8)
	leveldbOptionsSetParanoidChecks       func(o uintptr, v uint8)
	leveldbOptionsSetWriteBufferSize      func(o uintptr, size uintptr)
	leveldbOptionsSetMaxOpenFiles         func(o uintptr, n int32)
	leveldbOptionsSetBlockSize            func(o uintptr, size uintptr)
	leveldbOptionsSetBlockRestartInterval func(o uintptr, n int32)
	leveldbOptionsSetCompression          func(o uintptr, c int32)
	leveldbOptionsSetCache                func(o, cache uintptr)
	leveldbOptionsSetFilterPolicy         func(o, policy uintptr)

	leveldbCacheCreateLRU          func(capacity uintptr) uintptr
	leveldbCacheDestroy            func(cache uintptr)
	leveldbFilterPolicyCreateBloom func(bitsPerKey int32) uintptr
	leveldbFilterPolicyDestroy     func(policy uintptr)

	leveldbOpen             func(o uintptr, name string, errptr unsafe.Pointer) uintptr
	leveldbClose            func(db uintptr)
	leveldbPut              func(db, wo uintptr, key unsafe.Pointer, keylen uintptr, val unsafe.Pointer, vallen uintptr, errptr unsafe.Pointer)
	leveldbDelete           func(db, wo uintptr, key unsafe.Pointer, keylen uintptr, errptr unsafe.Pointer)
	leveldbWrite            func(db, wo, batch uintptr, errptr unsafe.Pointer)
	leveldbGet              func(db, ro uintptr, key unsafe.Pointer, keylen uintptr, vallen unsafe.Pointer, errptr unsafe.Pointer) unsafe.Pointer
	leveldbCreateIterator   func(db, ro uintptr) uintptr
	leveldbCreateSnapshot   func(db uintptr) uintptr
	leveldbReleaseSnapshot  func(db, snapshot uintptr)
	leveldbApproximateSizes func(db uintptr, num int32, starts, startLens, limits, limitLens, sizes unsafe.Pointer)
	leveldbDestroyDB        func(o uintptr, name string, errptr unsafe.Pointer)
	leveldbRepairDB         func(o uintptr, name string, errptr unsafe.Pointer)
	leveldbFree             func(p unsafe.Pointer)

	leveldbIterDestroy     func(it uintptr)
	leveldbIterValid       func(it uintptr) uint8
	leveldbIterSeekToFirst func(it uintptr)
	leveldbIterSeekToLast  func(it uintptr)
	leveldbIterSeek        func(it uintptr, key unsafe.Pointer, keylen uintptr)
	leveldbIterNext        func(it uintptr)
	leveldbIterPrev        func(it uintptr)
	leveldbIterKey         func(it uintptr, keylen unsafe.Pointer) unsafe.Pointer
	leveldbIterValue       func(it uintptr, vallen unsafe.Pointer) unsafe.Pointer
	leveldbIterGetError    func(it uintptr, errptr unsafe.Pointer)

	leveldbWritebatchCreate  func() uintptr
	leveldbWritebatchDestroy func(b uintptr)
	leveldbWritebatchClear   func(b uintptr)
	leveldbWritebatchPut     func(b uintptr, key unsafe.Pointer, keylen uintptr, val unsafe.Pointer, vallen uintptr)
	leveldbWritebatchDelete  func(b uintptr, key unsafe.Pointer, keylen uintptr)

	leveldbReadoptionsCreate             func() uintptr
	leveldbReadoptionsDestroy            func(ro uintptr)
	leveldbReadoptionsSetVerifyChecksums func(ro uintptr, v uint8)
	leveldbReadoptionsSetFillCache       func(ro uintptr, v uint8)
	leveldbReadoptionsSetSnapshot        func(ro, snapshot uintptr)

	leveldbWriteoptionsCreate  func() uintptr
	leveldbWriteoptionsDestroy func(wo uintptr)
	leveldbWriteoptionsSetSync func(wo uintptr, v uint8)
)

func register(lib uintptr) (err error) {
	// RegisterLibFunc panics on a missing symbol.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrLibraryUnavailable, r)
		}
	}()

	for _, fn := range []struct {
		ptr  any
		name string
	}{
		{&leveldbOptionsCreate, "leveldb_options_create"},
		{&leveldbOptionsDestroy, "leveldb_options_destroy"},
		{&leveldbOptionsSetCreateIfMissing, "leveldb_options_set_create_if_missing"},
		{&leveldbOptionsSetErrorIfExists, "leveldb_options_set_error_if_exists"},
		{&leveldbOptionsSetParanoidChecks, "leveldb_options_set_paranoid_checks"},
		{&leveldbOptionsSetWriteBufferSize, "leveldb_options_set_write_buffer_size"},
		{&leveldbOptionsSetMaxOpenFiles, "leveldb_options_set_max_open_files"},
		{&leveldbOptionsSetBlockSize, "leveldb_options_set_block_size"},
		{&leveldbOptionsSetBlockRestartInterval, "leveldb_options_set_block_restart_interval"},
		{&leveldbOptionsSetCompression, "leveldb_options_set_compression"},
		{&leveldbOptionsSetCache, "leveldb_options_set_cache"},
		{&leveldbOptionsSetFilterPolicy, "leveldb_options_set_filter_policy"},
		{&leveldbCacheCreateLRU, "leveldb_cache_create_lru"},
		{&leveldbCacheDestroy, "leveldb_cache_destroy"},
		{&leveldbFilterPolicyCreateBloom, "leveldb_filterpolicy_create_bloom"},
		{&leveldbFilterPolicyDestroy, "leveldb_filterpolicy_destroy"},
		{&leveldbOpen, "leveldb_open"},
		{&leveldbClose, "leveldb_close"},
		{&leveldbPut, "leveldb_put"},
		{&leveldbDelete, "leveldb_delete"},
		{&leveldbWrite, "leveldb_write"},
		{&leveldbGet, "leveldb_get"},
		{&leveldbCreateIterator, "leveldb_create_iterator"},
		{&leveldbCreateSnapshot, "leveldb_create_snapshot"},
		{&leveldbReleaseSnapshot, "leveldb_release_snapshot"},
		{&leveldbApproximateSizes, "leveldb_approximate_sizes"},
		{&leveldbDestroyDB, "leveldb_destroy_db"},
		{&leveldbRepairDB, "leveldb_repair_db"},
		{&leveldbFree, "leveldb_free"},
		{&leveldbIterDestroy, "leveldb_iter_destroy"},
		{&leveldbIterValid, "leveldb_iter_valid"},
		{&leveldbIterSeekToFirst, "leveldb_iter_seek_to_first"},
		{&leveldbIterSeekToLast, "leveldb_iter_seek_to_last"},
		{&leveldbIterSeek, "leveldb_iter_seek"},
		{&leveldbIterNext, "leveldb_iter_next"},
		{&leveldbIterPrev, "leveldb_iter_prev"},
		{&leveldbIterKey, "leveldb_iter_key"},
		{&leveldbIterValue, "leveldb_iter_value"},
		{&leveldbIterGetError, "leveldb_iter_get_error"},
		{&leveldbWritebatchCreate, "leveldb_writebatch_create"},
		{&leveldbWritebatchDestroy, "leveldb_writebatch_destroy"},
		{&leveldbWritebatchClear, "leveldb_writebatch_clear"},
		{&leveldbWritebatchPut, "leveldb_writebatch_put"},
		{&leveldbWritebatchDelete, "leveldb_writebatch_delete"},
		{&leveldbReadoptionsCreate, "leveldb_readoptions_create"},
		{&leveldbReadoptionsDestroy, "leveldb_readoptions_destroy"},
		{&leveldbReadoptionsSetVerifyChecksums, "leveldb_readoptions_set_verify_checksums"},
		{&leveldbReadoptionsSetFillCache, "leveldb_readoptions_set_fill_cache"},
		{&leveldbReadoptionsSetSnapshot, "leveldb_readoptions_set_snapshot"},
		{&leveldbWriteoptionsCreate, "leveldb_writeoptions_create"},
		{&leveldbWriteoptionsDestroy, "leveldb_writeoptions_destroy"},
		{&leveldbWriteoptionsSetSync, "leveldb_writeoptions_set_sync"},
	} {
		purego.RegisterLibFunc(fn.ptr, lib, fn.name)
	}
	return nil
}
