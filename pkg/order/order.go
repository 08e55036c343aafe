// Package order provides the three-way comparison used by every ordered
// structure in this module.
package order

import (
	"bytes"
	"cmp"
)

// Ordering is the result of a three-way comparison.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Func compares a to b.
type Func[T any] func(a, b T) Ordering

// Of folds a C-style comparison result (negative, zero, positive) into an Ordering.
func Of(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// Ordered compares two values of a natively ordered type.
func Ordered[T cmp.Ordered](a, b T) Ordering {
	return Of(cmp.Compare(a, b))
}

// Bytes compares byte strings lexicographically, the order used by the storage engines.
func Bytes(a, b []byte) Ordering {
	return Of(bytes.Compare(a, b))
}

// Reverse swaps Less and Greater.
func (o Ordering) Reverse() Ordering {
	return -o
}

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "invalid"
	}
}
