package codec

import (
	"encoding/binary"
	"math"
)

const (
	// zeroPoint is where both zeros land; negative values fall below it.
	zeroPoint uint64 = 1 << 63
	// nanPoint is the encoding of every NaN, strictly above +Inf.
	nanPoint uint64 = math.MaxUint64
	signMask uint64 = 1 << 63
	infBits  uint64 = 0x7FF0000000000000
)

// Float64 encodes IEEE-754 doubles so that byte order matches numeric
// order. +0 and -0 share an encoding. NaN has no natural order; every NaN
// encodes to the maximum value, above +Inf, and decodes to a NaN.
type Float64 struct{}

func (Float64) Encode(v float64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, OrderPreservingFloat64(v))
	return out
}

func (Float64) Decode(data []byte) (float64, bool) {
	if len(data) != 8 {
		return 0, false
	}
	return FromOrderPreservingFloat64(binary.BigEndian.Uint64(data)), true
}

// OrderPreservingFloat64 maps v onto an unsigned integer that compares like v.
func OrderPreservingFloat64(v float64) uint64 {
	if math.IsNaN(v) {
		return nanPoint
	}
	bits := math.Float64bits(v)
	magnitude := bits &^ signMask
	if bits&signMask != 0 {
		return zeroPoint - magnitude
	}
	return zeroPoint + magnitude
}

// FromOrderPreservingFloat64 inverts OrderPreservingFloat64. Values in the
// ranges no finite or infinite double maps to decode as NaN.
func FromOrderPreservingFloat64(u uint64) float64 {
	if u >= zeroPoint {
		magnitude := u - zeroPoint
		if magnitude > infBits {
			return math.NaN()
		}
		return math.Float64frombits(magnitude)
	}
	magnitude := zeroPoint - u
	if magnitude > infBits {
		return math.NaN()
	}
	return math.Float64frombits(magnitude | signMask)
}
