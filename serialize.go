package toon

import "github.com/unkn0wn-root/toon/internal/wire"

// Serialize encodes t to its wire envelope: version, id, type marker,
// length-prefixed payload, and a CRC32 trailer (spec.md §4.1). Metadata
// is never written to the wire.
func Serialize(t Token) ([]byte, error) {
	marker, payload, err := encodeValue(t.value)
	if err != nil {
		return nil, WrapSerializeError(err)
	}
	b, err := wire.Encode(t.id.Bytes(), marker, payload)
	if err != nil {
		return nil, WrapSerializeError(err)
	}
	return b, nil
}

// Deserialize is ReadLayout + checksum verification + value decoding
// (spec.md §4.1). Metadata on the returned Token is always (0, 0); the
// wire format does not carry metadata.
func Deserialize(b []byte) (Token, error) {
	header, payload, err := wire.Decode(b)
	if err != nil {
		return Token{}, WrapDeserializeError(err)
	}
	value, err := decodeValue(header.TypeMarker, payload)
	if err != nil {
		return Token{}, WrapDeserializeError(err)
	}
	return NewToken(TokenIDFromBytes(header.ID), value, Metadata{}), nil
}
