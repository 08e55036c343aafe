package db

import "fmt"

// Compression selects the block compression of an engine.
type Compression uint8

const (
	SnappyCompression Compression = iota
	NoCompression
)

func (c Compression) String() string {
	switch c {
	case SnappyCompression:
		return "snappy"
	case NoCompression:
		return "none"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression is the inverse of Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "snappy", "":
		return SnappyCompression, nil
	case "none":
		return NoCompression, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Options configure how an engine opens a database. Zero sizes leave the
// engine's own default in place.
type Options struct {
	CreateIfMissing bool
	ErrorIfExists   bool
	// ParanoidChecks makes the engine fail on any detected corruption.
	ParanoidChecks bool
	// Sync makes every single write durable before returning.
	Sync                 bool
	CacheCapacity        int
	WriteBufferSize      int
	MaxOpenFiles         int
	BlockSize            int
	BlockRestartInterval int
	// BloomFilterBits is the number of filter bits per key, 0 disables filters.
	BloomFilterBits int
	Compression     Compression
}

// Default returns the options LevelDB ships with, plus a 10 bit bloom filter.
func Default() Options {
	return Options{
		CreateIfMissing:      true,
		CacheCapacity:        8 << 20,
		WriteBufferSize:      4 << 20,
		MaxOpenFiles:         1000,
		BlockSize:            4 << 10,
		BlockRestartInterval: 16,
		BloomFilterBits:      10,
		Compression:          SnappyCompression,
	}
}

// ReadOptions tune a single read or iteration. None of them changes the
// result of a read.
type ReadOptions struct {
	// DontFillCache keeps blocks read for this operation out of the cache.
	DontFillCache bool
	// VerifyChecksums verifies block checksums of everything read.
	VerifyChecksums bool
	// LowerBound is an inclusive hint, nil means unbounded.
	LowerBound []byte
	// UpperBound is an exclusive hint, nil means unbounded.
	UpperBound []byte
}
