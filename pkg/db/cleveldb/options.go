package cleveldb

import "github.com/eigerco/ldb/pkg/db"

// nativeOptions owns a leveldb_options_t and the cache and filter policy it
// references, which must outlive the database opened with it.
type nativeOptions struct {
	options uintptr
	cache   uintptr
	filter  uintptr
}

func newNativeOptions(o db.Options) *nativeOptions {
	n := &nativeOptions{options: leveldbOptionsCreate()}
	leveldbOptionsSetCreateIfMissing(n.options, cbool(o.CreateIfMissing))
	leveldbOptionsSetErrorIfExists(n.options, cbool(o.ErrorIfExists))
	leveldbOptionsSetParanoidChecks(n.options, cbool(o.ParanoidChecks))
	if o.WriteBufferSize > 0 {
		leveldbOptionsSetWriteBufferSize(n.options, uintptr(o.WriteBufferSize))
	}
	if o.MaxOpenFiles > 0 {
		leveldbOptionsSetMaxOpenFiles(n.options, int32(o.MaxOpenFiles))
	}
	if o.BlockSize > 0 {
		leveldbOptionsSetBlockSize(n.options, uintptr(o.BlockSize))
	}
	if o.BlockRestartInterval > 0 {
		leveldbOptionsSetBlockRestartInterval(n.options, int32(o.BlockRestartInterval))
	}
	// leveldb_no_compression = 0, leveldb_snappy_compression = 1
	if o.Compression == db.NoCompression {
		leveldbOptionsSetCompression(n.options, 0)
	} else {
		leveldbOptionsSetCompression(n.options, 1)
	}
	if o.CacheCapacity > 0 {
		n.cache = leveldbCacheCreateLRU(uintptr(o.CacheCapacity))
		leveldbOptionsSetCache(n.options, n.cache)
	}
	if o.BloomFilterBits > 0 {
		n.filter = leveldbFilterPolicyCreateBloom(int32(o.BloomFilterBits))
		leveldbOptionsSetFilterPolicy(n.options, n.filter)
	}
	return n
}

func (n *nativeOptions) destroy() {
	leveldbOptionsDestroy(n.options)
	if n.cache != 0 {
		leveldbCacheDestroy(n.cache)
	}
	if n.filter != 0 {
		leveldbFilterPolicyDestroy(n.filter)
	}
}

func newReadOptions(ro db.ReadOptions, snapshot uintptr) uintptr {
	r := leveldbReadoptionsCreate()
	leveldbReadoptionsSetVerifyChecksums(r, cbool(ro.VerifyChecksums))
	leveldbReadoptionsSetFillCache(r, cbool(!ro.DontFillCache))
	if snapshot != 0 {
		leveldbReadoptionsSetSnapshot(r, snapshot)
	}
	return r
}
