package toon

import "github.com/unkn0wn-root/toon/internal/wire"

// Header is the fixed-size, non-destructively inspectable prefix of a
// serialized token (spec.md §4.1 "Header-only inspection").
type Header struct {
	Version    byte
	ID         TokenId
	TypeMarker byte
	PayloadLen uint32
}

// Layout additionally locates the payload and checksum byte ranges
// within the buffer a Header was read from.
type Layout struct {
	Header        Header
	PayloadRange  [2]int
	ChecksumRange [2]int
}

// ReadHeader bounds-checks and parses the fixed-size prefix of b without
// inspecting the payload or trailer.
func ReadHeader(b []byte) (Header, error) {
	h, err := wire.ReadHeader(b)
	if err != nil {
		return Header{}, WrapDeserializeError(err)
	}
	return Header{
		Version:    h.Version,
		ID:         TokenIDFromBytes(h.ID),
		TypeMarker: h.TypeMarker,
		PayloadLen: h.PayloadLen,
	}, nil
}

// ReadLayout verifies the envelope version and computes the payload and
// checksum byte ranges, failing with a Truncated error if the declared
// payload overruns the buffer minus the trailer, and with TrailingBytes
// if it underruns.
func ReadLayout(b []byte) (Layout, error) {
	l, err := wire.ReadLayout(b)
	if err != nil {
		return Layout{}, WrapDeserializeError(err)
	}
	return Layout{
		Header: Header{
			Version:    l.Header.Version,
			ID:         TokenIDFromBytes(l.Header.ID),
			TypeMarker: l.Header.TypeMarker,
			PayloadLen: l.Header.PayloadLen,
		},
		PayloadRange:  [2]int{l.PayloadStart, l.PayloadEnd},
		ChecksumRange: [2]int{l.ChecksumStart, l.ChecksumEnd},
	}, nil
}
