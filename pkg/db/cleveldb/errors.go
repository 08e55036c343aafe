package cleveldb

import (
	"errors"
	"unsafe"
)

// ErrLibraryUnavailable is returned when the native library cannot be
// loaded or lacks a required symbol.
var ErrLibraryUnavailable = errors.New("cleveldb: native leveldb library unavailable")

// Error carries a message reported by the native engine.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "leveldb: " + e.Message
}

// call runs fn with a fresh char* error slot and turns what the engine
// stored there into an *Error.
func call(fn func(errptr unsafe.Pointer)) error {
	var cerr unsafe.Pointer
	fn(unsafe.Pointer(&cerr))
	if cerr == nil {
		return nil
	}
	msg := cString(cerr)
	leveldbFree(cerr)
	return &Error{Message: msg}
}

func cString(p unsafe.Pointer) string {
	var n uintptr
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// goBytes copies n bytes of C memory at p.
func goBytes(p unsafe.Pointer, n uintptr) []byte {
	out := make([]byte, n)
	if n > 0 {
		copy(out, unsafe.Slice((*byte)(p), n))
	}
	return out
}

var empty byte

// bytesPtr returns a pointer to the first element of b. Empty slices map to
// a valid dummy pointer with zero length.
func bytesPtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return unsafe.Pointer(&empty)
	}
	return unsafe.Pointer(&b[0])
}

func cbool(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
