package wire

import "hash/crc32"

// Header is the fixed-size prefix of a token envelope.
type Header struct {
	Version    byte
	ID         [16]byte
	TypeMarker byte
	PayloadLen uint32
}

// Layout additionally locates the payload and checksum byte ranges
// within a buffer, after confirming the declared payload neither
// overruns nor underruns the space between the header and the trailer.
type Layout struct {
	Header       Header
	PayloadStart int
	PayloadEnd   int
	ChecksumStart int
	ChecksumEnd   int
}

// CRC32 computes the IEEE 802.3 (0xEDB88320 reflected) checksum of b,
// the polynomial spec.md §6 names as the codec's hashing primitive.
func CRC32(b []byte) uint32 { return crc32.ChecksumIEEE(b) }

// ReadHeader bounds-checks and parses the fixed-size prefix of b,
// without looking at the payload or trailer.
func ReadHeader(b []byte) (Header, error) {
	if len(b) < minEnvelopeSize {
		return Header{}, ErrTruncated
	}
	r := NewByteReader(b)
	version, _ := r.ReadU8()
	idBytes, _ := r.ReadBytes(16)
	typeMarker, _ := r.ReadU8()
	payloadLen, _ := r.ReadU32LE()

	var id [16]byte
	copy(id[:], idBytes)
	return Header{
		Version:    version,
		ID:         id,
		TypeMarker: typeMarker,
		PayloadLen: payloadLen,
	}, nil
}

// ReadLayout parses the header, verifies the version is supported, and
// computes the payload/checksum ranges, failing with ErrTruncated if the
// declared payload overruns the buffer minus the trailer, and with
// ErrTrailingBytes if it underruns.
func ReadLayout(b []byte) (Layout, error) {
	header, err := ReadHeader(b)
	if err != nil {
		return Layout{}, err
	}
	if !IsSupportedVersion(header.Version) {
		return Layout{}, ErrUnsupportedVersion
	}

	checksumStart := len(b) - trailerSize
	if checksumStart < headerSize {
		return Layout{}, ErrTruncated
	}

	payloadStart := headerSize
	payloadLen := int(header.PayloadLen)
	payloadEnd := payloadStart + payloadLen
	if payloadEnd < payloadStart { // overflow guard
		return Layout{}, ErrTruncated
	}
	if payloadEnd > checksumStart {
		return Layout{}, ErrTruncated
	}
	if payloadEnd != checksumStart {
		return Layout{}, ErrTrailingBytes
	}

	return Layout{
		Header:        header,
		PayloadStart:  payloadStart,
		PayloadEnd:    payloadEnd,
		ChecksumStart: checksumStart,
		ChecksumEnd:   len(b),
	}, nil
}

// Encode builds a complete envelope: version, id, type marker, the
// length-prefixed payload, and a trailing CRC32 over everything that
// precedes it. It fails with ErrLengthOverflow if payload does not fit
// in a u32.
func Encode(id [16]byte, typeMarker byte, payload []byte) ([]byte, error) {
	if len(payload) > 0xFFFFFFFF {
		return nil, ErrLengthOverflow
	}
	w := NewByteWriter(headerSize + len(payload) + trailerSize)
	w.WriteU8(Version)
	w.WriteBytes(id[:])
	w.WriteU8(typeMarker)
	w.WriteU32LE(uint32(len(payload)))
	w.WriteBytes(payload)

	checksum := CRC32(w.Bytes())
	w.WriteU32LE(checksum)
	return w.Bytes(), nil
}

// Decode is ReadLayout plus checksum verification; on success it returns
// the header and a zero-copy slice of the payload.
func Decode(b []byte) (Header, []byte, error) {
	layout, err := ReadLayout(b)
	if err != nil {
		return Header{}, nil, err
	}

	expected := CRC32(b[:layout.ChecksumStart])
	actual, _ := NewByteReader(b[layout.ChecksumStart:layout.ChecksumEnd]).ReadU32LE()
	if expected != actual {
		return Header{}, nil, ErrChecksumMismatch
	}

	return layout.Header, b[layout.PayloadStart:layout.PayloadEnd], nil
}
