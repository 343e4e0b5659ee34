// Package wire implements the compact, versioned on-the-wire format for a
// single token: a fixed header, a recursively-framed payload, and a
// CRC32 trailer. It provides bounds-checked decoders and pre-sized
// encoders.
//
// Encoding choices:
//   - All multi-byte integers are little-endian, per the wire contract.
//   - A 1-byte version enables a future incompatible layout to be
//     rejected cleanly; only version 1 exists today.
//   - The payload is type-marker + length-prefixed, the same framing
//     recursively for array/object elements.
//   - Decoders are written for bounds safety: every slice operation is
//     preceded by a length check; on any mismatch they return a typed
//     error, never panic.
//   - Strict framing: a frame (the whole envelope, or any array/object
//     payload) must consume exactly the bytes it declares. Trailing or
//     truncated input is rejected, which catches corruption early.
package wire

const (
	// Version is the only supported envelope version.
	Version byte = 1

	TypeNull      byte = 0x00
	TypeBoolFalse byte = 0x01
	TypeBoolTrue  byte = 0x02
	TypeInt64     byte = 0x10
	TypeF64       byte = 0x11
	TypeString    byte = 0x20
	TypeArray     byte = 0x30
	TypeObject    byte = 0x31
	TypeRef       byte = 0x40

	strengthStrong byte = 0
	strengthWeak   byte = 1
)

// headerSize is version(1) + id(16) + type_marker(1) + payload_len(4).
const headerSize = 1 + 16 + 1 + 4

// trailerSize is the CRC32 checksum(4).
const trailerSize = 4

// minEnvelopeSize is the smallest possible valid envelope (empty payload).
const minEnvelopeSize = headerSize + trailerSize

// IsSupportedVersion reports whether v is a version this package can decode.
func IsSupportedVersion(v byte) bool { return v == Version }
