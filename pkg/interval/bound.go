package interval

import (
	"fmt"

	"github.com/eigerco/ldb/pkg/order"
)

type boundKind uint8

const (
	lowest boundKind = iota
	exact
	highest
)

// Bound lifts a key type into a domain with two extra sentinels, one below
// and one above every key. The zero value is Lowest.
type Bound[K any] struct {
	kind boundKind
	key  K
}

// Lowest returns the bound that sorts before every key.
func Lowest[K any]() Bound[K] {
	return Bound[K]{kind: lowest}
}

// Exact wraps a key.
func Exact[K any](key K) Bound[K] {
	return Bound[K]{kind: exact, key: key}
}

// Highest returns the bound that sorts after every key.
func Highest[K any]() Bound[K] {
	return Bound[K]{kind: highest}
}

func (b Bound[K]) IsLowest() bool { return b.kind == lowest }
func (b Bound[K]) IsExact() bool { return b.kind == exact }
func (b Bound[K]) IsHighest() bool { return b.kind == highest }

// Key returns the wrapped key, ok is false for the sentinels.
func (b Bound[K]) Key() (key K, ok bool) {
	if b.kind != exact {
		return key, false
	}
	return b.key, true
}

// Compare orders b against other: Lowest < Exact(*) < Highest, and two Exact
// bounds compare by cmp.
func (b Bound[K]) Compare(other Bound[K], cmp order.Func[K]) order.Ordering {
	switch b.kind {
	case lowest:
		if other.kind == lowest {
			return order.Equal
		}
		return order.Less
	case highest:
		if other.kind == highest {
			return order.Equal
		}
		return order.Greater
	default:
		switch other.kind {
		case lowest:
			return order.Greater
		case highest:
			return order.Less
		default:
			return cmp(b.key, other.key)
		}
	}
}

// MapBound applies an order-preserving transform to the wrapped key.
func MapBound[K, U any](b Bound[K], f func(K) U) Bound[U] {
	switch b.kind {
	case lowest:
		return Lowest[U]()
	case highest:
		return Highest[U]()
	default:
		return Exact(f(b.key))
	}
}

func (b Bound[K]) String() string {
	switch b.kind {
	case lowest:
		return "-inf"
	case highest:
		return "+inf"
	default:
		return fmt.Sprintf("%v", b.key)
	}
}
