package codec

import (
	"encoding/binary"
	"unsafe"
)

// Unsigned encodes unsigned integers as fixed-width big-endian bytes, the
// width being the size of T.
type Unsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint] struct{}

func (Unsigned[T]) Encode(v T) []byte {
	return encodeWidth(uint64(v), width[T]())
}

func (Unsigned[T]) Decode(data []byte) (T, bool) {
	u, ok := decodeWidth(data, width[T]())
	return T(u), ok
}

// Signed encodes signed integers with the sign bit flipped, so negative
// numbers sort before non-negative ones in the big-endian layout.
type Signed[T ~int8 | ~int16 | ~int32 | ~int64 | ~int] struct{}

func (Signed[T]) Encode(v T) []byte {
	w := width[T]()
	b := encodeWidth(uint64(v), w)
	b[0] ^= 0x80
	return b
}

func (Signed[T]) Decode(data []byte) (T, bool) {
	w := width[T]()
	u, ok := decodeWidth(data, w)
	if !ok {
		return 0, false
	}
	u ^= 1 << (8*w - 1)
	// Converting truncates to the width of T, restoring the two's complement value.
	return T(u), true
}

func width[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// encodeWidth returns the low w bytes of v in big-endian order.
func encodeWidth(v uint64, w int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	out := make([]byte, w)
	copy(out, buf[8-w:])
	return out
}

func decodeWidth(data []byte, w int) (uint64, bool) {
	if len(data) != w {
		return 0, false
	}
	var buf [8]byte
	copy(buf[8-w:], data)
	return binary.BigEndian.Uint64(buf[:]), true
}
