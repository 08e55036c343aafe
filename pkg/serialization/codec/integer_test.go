package codec

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkOrdered asserts round-trip and order preservation for every pair.
func checkOrdered[T any](t *testing.T, c Codec[T], values []T, less func(a, b T) bool, equal func(a, b T) bool) {
	t.Helper()
	for _, a := range values {
		encoded := c.Encode(a)
		decoded, ok := c.Decode(encoded)
		require.True(t, ok, "%v failed to round trip", a)
		assert.True(t, equal(a, decoded), "%v decoded as %v", a, decoded)
		assert.Equal(t, encoded, c.Encode(decoded), "re-encoding %v", a)

		for _, b := range values {
			x, y := c.Encode(a), c.Encode(b)
			assert.Equal(t, less(a, b), bytes.Compare(x, y) < 0, "%v < %v vs %x < %x", a, b, x, y)
			assert.Equal(t, equal(a, b), bytes.Equal(x, y), "%v == %v vs %x == %x", a, b, x, y)
		}
	}
}

func lessThan[T int8 | int16 | int32 | int64 | int | uint8 | uint16 | uint32 | uint64 | uint | float64 | string](a, b T) bool {
	return a < b
}

func equalTo[T int8 | int16 | int32 | int64 | int | uint8 | uint16 | uint32 | uint64 | uint | float64 | string](a, b T) bool {
	return a == b
}

func TestUnsigned(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		checkOrdered(t, Unsigned[uint8]{}, []uint8{0, 1, 2, 127, 128, 254, math.MaxUint8}, lessThan[uint8], equalTo[uint8])
	})
	t.Run("uint16", func(t *testing.T) {
		checkOrdered(t, Unsigned[uint16]{}, []uint16{0, 1, 255, 256, 1023, 1024, math.MaxUint16}, lessThan[uint16], equalTo[uint16])
	})
	t.Run("uint32", func(t *testing.T) {
		checkOrdered(t, Unsigned[uint32]{}, []uint32{0, 1, 255, 256, 65535, 65536, math.MaxUint32}, lessThan[uint32], equalTo[uint32])
	})
	t.Run("uint64", func(t *testing.T) {
		checkOrdered(t, Unsigned[uint64]{}, []uint64{0, 1, math.MaxUint32, math.MaxUint32 + 1, math.MaxUint64 - 1, math.MaxUint64}, lessThan[uint64], equalTo[uint64])
	})
	t.Run("uint", func(t *testing.T) {
		checkOrdered(t, Unsigned[uint]{}, []uint{0, 1, 1 << 20, math.MaxUint}, lessThan[uint], equalTo[uint])
	})
}

func TestUnsignedLayout(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x02}, Unsigned[uint16]{}.Encode(0x0102))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7}, Unsigned[uint64]{}.Encode(7))
	assert.Len(t, Unsigned[uint8]{}.Encode(0), 1)
}

func TestSigned(t *testing.T) {
	t.Run("int8", func(t *testing.T) {
		checkOrdered(t, Signed[int8]{}, []int8{math.MinInt8, -100, -2, -1, 0, 1, 2, 100, math.MaxInt8}, lessThan[int8], equalTo[int8])
	})
	t.Run("int16", func(t *testing.T) {
		checkOrdered(t, Signed[int16]{}, []int16{math.MinInt16, -256, -1, 0, 1, 255, 256, math.MaxInt16}, lessThan[int16], equalTo[int16])
	})
	t.Run("int32", func(t *testing.T) {
		checkOrdered(t, Signed[int32]{}, []int32{math.MinInt32, -65536, -1, 0, 1, 65536, math.MaxInt32}, lessThan[int32], equalTo[int32])
	})
	t.Run("int64", func(t *testing.T) {
		checkOrdered(t, Signed[int64]{}, []int64{math.MinInt64, math.MinInt64 + 1, -1 << 40, -1, 0, 1, 1 << 40, math.MaxInt64}, lessThan[int64], equalTo[int64])
	})
	t.Run("int", func(t *testing.T) {
		checkOrdered(t, Signed[int]{}, []int{math.MinInt, -1, 0, 1, math.MaxInt}, lessThan[int], equalTo[int])
	})
}

func TestSignedLayout(t *testing.T) {
	c := Signed[int8]{}
	assert.Equal(t, []byte{0x00}, c.Encode(math.MinInt8))
	assert.Equal(t, []byte{0x7F}, c.Encode(-1))
	assert.Equal(t, []byte{0x80}, c.Encode(0))
	assert.Equal(t, []byte{0xFF}, c.Encode(math.MaxInt8))

	assert.True(t, bytes.Compare(c.Encode(math.MinInt8), c.Encode(0)) < 0)
	assert.True(t, bytes.Compare(c.Encode(0), c.Encode(math.MaxInt8)) < 0)

	assert.Equal(t, []byte{0x7F, 0xFF, 0xFF, 0xFF}, Signed[int32]{}.Encode(-1))
}

func TestIntegerWrongLength(t *testing.T) {
	_, ok := Unsigned[uint32]{}.Decode([]byte{1, 2, 3})
	assert.False(t, ok)
	_, ok = Unsigned[uint8]{}.Decode(nil)
	assert.False(t, ok)
	_, ok = Signed[int64]{}.Decode(make([]byte, 9))
	assert.False(t, ok)
	_, ok = Signed[int16]{}.Decode([]byte{0x80})
	assert.False(t, ok)
}
