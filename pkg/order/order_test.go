package order

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOf(t *testing.T) {
	assert.Equal(t, Less, Of(-42))
	assert.Equal(t, Less, Of(-1))
	assert.Equal(t, Equal, Of(0))
	assert.Equal(t, Greater, Of(1))
	assert.Equal(t, Greater, Of(math.MaxInt))
}

func TestOrderedIsAntisymmetric(t *testing.T) {
	values := []string{"", "a", "ab", "b", "z", "zzz", "Ë"}
	for _, a := range values {
		for _, b := range values {
			ab := Ordered(a, b)
			ba := Ordered(b, a)
			assert.Equal(t, ab, ba.Reverse(), "compare(%q, %q)", a, b)
			assert.Equal(t, a == b, ab == Equal, "compare(%q, %q)", a, b)
		}
	}
}

func TestBytes(t *testing.T) {
	testCases := []struct {
		a, b     []byte
		expected Ordering
	}{
		{nil, nil, Equal},
		{nil, []byte{}, Equal},
		{[]byte{}, []byte{0}, Less},
		{[]byte{1, 2}, []byte{1, 2, 0}, Less},
		{[]byte{1, 3}, []byte{1, 2, 255}, Greater},
		{[]byte{255}, []byte{255}, Equal},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Bytes(tc.a, tc.b), "compare(%v, %v)", tc.a, tc.b)
		assert.Equal(t, tc.expected.Reverse(), Bytes(tc.b, tc.a), "compare(%v, %v)", tc.b, tc.a)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "invalid", Ordering(7).String())
}
