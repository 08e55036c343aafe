// Package codec converts scalar values to byte strings whose lexicographic
// order matches the values' natural order, and back.
//
// Decoding never fails loudly: bytes that were not produced by the matching
// Encode are reported as undecodable through the boolean result, so callers
// can skip entries written under a different schema.
package codec

// Codec encodes values of T to bytes and decodes them back.
type Codec[T any] interface {
	// Encode is deterministic. For order-preserving codecs the byte order of
	// the output matches the natural order of T.
	Encode(v T) []byte
	// Decode returns ok=false when data is not an encoding of any T.
	Decode(data []byte) (v T, ok bool)
}
