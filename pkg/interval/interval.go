// Package interval implements ranges over bounded keys with independently
// open or closed ends, and the byte-string helpers that turn prefix and
// inclusive-bound queries into half-open byte ranges.
package interval

import (
	"fmt"

	"github.com/eigerco/ldb/pkg/order"
)

// Interval is an immutable range between two bounds. The start never
// compares greater than the end.
type Interval[K any] struct {
	startInclusive bool
	endInclusive   bool
	start          Bound[K]
	end            Bound[K]
	cmp            order.Func[K]
}

// New builds an interval from its four parts. It panics if start > end,
// which callers can only reach by bypassing Clamp.
func New[K any](startInclusive, endInclusive bool, start, end Bound[K], cmp order.Func[K]) Interval[K] {
	if start.Compare(end, cmp) == order.Greater {
		panic(fmt.Sprintf("interval: start %v is greater than end %v", start, end))
	}
	return Interval[K]{
		startInclusive: startInclusive,
		endInclusive:   endInclusive,
		start:          start,
		end:            end,
		cmp:            cmp,
	}
}

// HalfOpen returns [start, end).
func HalfOpen[K any](start, end K, cmp order.Func[K]) Interval[K] {
	return New(true, false, Exact(start), Exact(end), cmp)
}

// Closed returns [start, end].
func Closed[K any](start, end K, cmp order.Func[K]) Interval[K] {
	return New(true, true, Exact(start), Exact(end), cmp)
}

// All returns the interval covering every key.
func All[K any](cmp order.Func[K]) Interval[K] {
	return New(true, true, Lowest[K](), Highest[K](), cmp)
}

// Empty returns the canonical empty interval anchored at the given bound.
func Empty[K any](at Bound[K], cmp order.Func[K]) Interval[K] {
	return Interval[K]{start: at, end: at, cmp: cmp}
}

func (i Interval[K]) Start() Bound[K] { return i.start }
func (i Interval[K]) End() Bound[K] { return i.end }
func (i Interval[K]) StartInclusive() bool { return i.startInclusive }
func (i Interval[K]) EndInclusive() bool { return i.endInclusive }
func (i Interval[K]) Comparator() order.Func[K] { return i.cmp }

// Contains reports whether value lies within the interval.
func (i Interval[K]) Contains(value Bound[K]) bool {
	switch i.start.Compare(value, i.cmp) {
	case order.Greater:
		return false
	case order.Equal:
		if !i.startInclusive {
			return false
		}
	}
	switch value.Compare(i.end, i.cmp) {
	case order.Less:
		return true
	case order.Equal:
		return i.endInclusive
	default:
		return false
	}
}

// ContainsKey is Contains for a plain key.
func (i Interval[K]) ContainsKey(key K) bool {
	return i.Contains(Exact(key))
}

// Below reports whether value sorts before the interval's start.
func (i Interval[K]) Below(value Bound[K]) bool {
	switch value.Compare(i.start, i.cmp) {
	case order.Less:
		return true
	case order.Equal:
		return !i.startInclusive
	default:
		return false
	}
}

// Above reports whether value sorts after the interval's end.
func (i Interval[K]) Above(value Bound[K]) bool {
	switch value.Compare(i.end, i.cmp) {
	case order.Greater:
		return true
	case order.Equal:
		return !i.endInclusive
	default:
		return false
	}
}

// Clamp intersects i with other. When the two do not overlap the result is
// the empty interval anchored at i's start, so the empty output depends on
// the receiver even though the non-empty output does not.
func (i Interval[K]) Clamp(other Interval[K]) Interval[K] {
	start, startInclusive := other.start, other.startInclusive
	switch i.start.Compare(start, i.cmp) {
	case order.Equal:
		startInclusive = startInclusive && i.startInclusive
	case order.Greater:
		start, startInclusive = i.start, i.startInclusive
	}

	end, endInclusive := other.end, other.endInclusive
	switch end.Compare(i.end, i.cmp) {
	case order.Equal:
		endInclusive = endInclusive && i.endInclusive
	case order.Greater:
		end, endInclusive = i.end, i.endInclusive
	}

	if start.Compare(end, i.cmp) == order.Greater {
		return Empty(i.start, i.cmp)
	}
	return Interval[K]{
		startInclusive: startInclusive,
		endInclusive:   endInclusive,
		start:          start,
		end:            end,
		cmp:            i.cmp,
	}
}

// IsEmpty reports whether no value can be contained.
func (i Interval[K]) IsEmpty() bool {
	switch i.start.Compare(i.end, i.cmp) {
	case order.Less:
		return false
	case order.Equal:
		return !(i.startInclusive && i.endInclusive)
	default:
		return true
	}
}

// Equal reports whether both intervals have the same bounds and inclusivity.
func (i Interval[K]) Equal(other Interval[K]) bool {
	return i.startInclusive == other.startInclusive &&
		i.endInclusive == other.endInclusive &&
		i.start.Compare(other.start, i.cmp) == order.Equal &&
		i.end.Compare(other.end, i.cmp) == order.Equal
}

// Map applies an order-preserving transform to both bounds.
func Map[K, U any](i Interval[K], f func(K) U, cmp order.Func[U]) Interval[U] {
	return New(i.startInclusive, i.endInclusive, MapBound(i.start, f), MapBound(i.end, f), cmp)
}

func (i Interval[K]) String() string {
	open, closing := "(", ")"
	if i.startInclusive {
		open = "["
	}
	if i.endInclusive {
		closing = "]"
	}
	return fmt.Sprintf("%s%v, %v%s", open, i.start, i.end, closing)
}
