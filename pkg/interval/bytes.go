package interval

import (
	"github.com/eigerco/ldb/pkg/order"
)

// FirstChild returns the smallest byte string that has b as a strict
// prefix, which is also the immediate successor of b: b followed by 0x00.
func FirstChild(b []byte) []byte {
	child := make([]byte, len(b)+1)
	copy(child, b)
	return child
}

// NextSibling returns the smallest byte string that sorts after every
// string prefixed by b: the last byte below 0xFF is incremented and the
// bytes after it are zeroed. ok is false when every byte is 0xFF, in which
// case no finite string qualifies.
func NextSibling(b []byte) (sibling []byte, ok bool) {
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xFF {
			sibling = make([]byte, len(b))
			copy(sibling, b[:i+1])
			sibling[i]++
			return sibling, true
		}
	}
	return nil, false
}

// NextSiblingBound is NextSibling with "no sibling" mapped to Highest.
func NextSiblingBound(b []byte) Bound[[]byte] {
	sibling, ok := NextSibling(b)
	if !ok {
		return Highest[[]byte]()
	}
	return Exact(sibling)
}

// AllBytes covers every byte string.
func AllBytes() Interval[[]byte] {
	return All(order.Bytes)
}

// Prefix covers every byte string that starts with p: [p, NextSibling(p)).
func Prefix(p []byte) Interval[[]byte] {
	return New(true, false, Exact(p), NextSiblingBound(p), order.Bytes)
}

// EngineBounds converts a byte interval into the inclusive lower and
// exclusive upper keys engine iterators take. A nil result means the side
// is unbounded. An empty interval yields lower == upper.
func EngineBounds(i Interval[[]byte]) (lower, upper []byte) {
	if i.IsEmpty() {
		if at, ok := i.start.Key(); ok {
			return at, at
		}
		return nil, nil
	}
	if key, ok := i.start.Key(); ok {
		lower = key
		if !i.startInclusive {
			lower = FirstChild(key)
		}
	}
	if key, ok := i.end.Key(); ok {
		upper = key
		if i.endInclusive {
			upper = FirstChild(key)
		}
	}
	return lower, upper
}
