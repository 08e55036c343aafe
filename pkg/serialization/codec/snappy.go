package codec

import "github.com/golang/snappy"

// Snappy compresses the output of another codec. The compressed form does
// not preserve order, so it is meant for values only.
type Snappy[T any] struct {
	Inner Codec[T]
}

func (s Snappy[T]) Encode(v T) []byte {
	return snappy.Encode(nil, s.Inner.Encode(v))
}

func (s Snappy[T]) Decode(data []byte) (T, bool) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		var zero T
		return zero, false
	}
	return s.Inner.Decode(raw)
}
