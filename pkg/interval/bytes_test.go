package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstChild(t *testing.T) {
	testCases := []struct {
		input    []byte
		expected []byte
	}{
		{nil, []byte{0}},
		{[]byte{}, []byte{0}},
		{[]byte{1, 2}, []byte{1, 2, 0}},
		{[]byte{255}, []byte{255, 0}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FirstChild(tc.input), "FirstChild(%v)", tc.input)
	}
}

func TestFirstChildDoesNotAlias(t *testing.T) {
	input := make([]byte, 2, 8)
	input[0], input[1] = 1, 2
	child := FirstChild(input)
	child[0] = 9
	assert.Equal(t, []byte{1, 2}, input)
}

func TestNextSibling(t *testing.T) {
	testCases := []struct {
		input    []byte
		expected []byte
		ok       bool
	}{
		{[]byte{1, 2, 9}, []byte{1, 2, 10}, true},
		{[]byte{1, 255}, []byte{2, 0}, true},
		{[]byte{0, 255, 255}, []byte{1, 0, 0}, true},
		{[]byte("a"), []byte("b"), true},
		{[]byte{255}, nil, false},
		{[]byte{255, 255}, nil, false},
		{[]byte{}, nil, false},
	}
	for _, tc := range testCases {
		sibling, ok := NextSibling(tc.input)
		assert.Equal(t, tc.ok, ok, "NextSibling(%v)", tc.input)
		assert.Equal(t, tc.expected, sibling, "NextSibling(%v)", tc.input)
	}
}

func TestNextSiblingBound(t *testing.T) {
	assert.True(t, NextSiblingBound([]byte{255}).IsHighest())

	key, ok := NextSiblingBound([]byte{1, 255}).Key()
	require.True(t, ok)
	assert.Equal(t, []byte{2, 0}, key)
}

func TestPrefix(t *testing.T) {
	p := Prefix([]byte("a"))
	for _, key := range []string{"a", "ab", "a\xff\xff"} {
		assert.True(t, p.ContainsKey([]byte(key)), key)
	}
	for _, key := range []string{"", "b", "Z", "ba"} {
		assert.False(t, p.ContainsKey([]byte(key)), key)
	}

	unbounded := Prefix([]byte{255})
	assert.True(t, unbounded.End().IsHighest())
	assert.True(t, unbounded.ContainsKey([]byte{255, 255, 255}))
	assert.False(t, unbounded.ContainsKey([]byte{254}))
}

func TestEngineBounds(t *testing.T) {
	t.Run("everything", func(t *testing.T) {
		lower, upper := EngineBounds(AllBytes())
		assert.Nil(t, lower)
		assert.Nil(t, upper)
	})
	t.Run("half_open", func(t *testing.T) {
		lower, upper := EngineBounds(HalfOpen([]byte("b"), []byte("d"), AllBytes().Comparator()))
		assert.Equal(t, []byte("b"), lower)
		assert.Equal(t, []byte("d"), upper)
	})
	t.Run("open_start_closed_end", func(t *testing.T) {
		iv := New(false, true, Exact([]byte("b")), Exact([]byte("d")), AllBytes().Comparator())
		lower, upper := EngineBounds(iv)
		assert.Equal(t, []byte("b\x00"), lower)
		assert.Equal(t, []byte("d\x00"), upper)
	})
	t.Run("empty", func(t *testing.T) {
		lower, upper := EngineBounds(Empty(Exact([]byte("q")), AllBytes().Comparator()))
		assert.Equal(t, []byte("q"), lower)
		assert.Equal(t, []byte("q"), upper)
	})
}
