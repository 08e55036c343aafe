package codec

import "unicode/utf8"

// String encodes text as its UTF-8 bytes. Byte order of valid UTF-8 matches
// code point order. Invalid UTF-8 is undecodable.
type String struct{}

func (String) Encode(v string) []byte {
	return []byte(v)
}

func (String) Decode(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// Bytes is the identity codec. Both directions copy.
type Bytes struct{}

func (Bytes) Encode(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

func (Bytes) Decode(data []byte) ([]byte, bool) {
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}
