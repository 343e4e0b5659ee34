package toon

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/unkn0wn-root/toon/clock"
)

// TokenId is an opaque 128-bit identity. The zero value is the all-zero
// id; it is not reserved for anything special but is never produced by
// NewTokenID.
type TokenId [16]byte

// NewTokenID generates a random identifier with version-4 UUID semantics
// (RFC 4122 §4.4): 122 random bits, the version nibble set to 4, and the
// variant bits set to 10xxxxxx. The codec itself is identifier-agnostic;
// this is purely a convenience generator.
func NewTokenID() TokenId {
	var id TokenId
	if _, err := rand.Read(id[:]); err != nil {
		// crypto/rand.Read on the stdlib reader only fails if the OS
		// entropy source is unavailable, which this package cannot
		// recover from; panicking here matches the stdlib's own
		// behavior for an exhausted crypto/rand reader.
		panic(fmt.Sprintf("toon: crypto/rand unavailable: %v", err))
	}
	id[6] = (id[6] & 0x0f) | 0x40 // version 4
	id[8] = (id[8] & 0x3f) | 0x80 // variant 10xxxxxx
	return id
}

// TokenIDFromBytes builds a TokenId from its 16-octet wire representation.
func TokenIDFromBytes(b [16]byte) TokenId { return TokenId(b) }

// ParseTokenID parses the canonical 8-4-4-4-12 hyphenated hex form
// produced by String. It is the inverse of String, used by interchange
// codecs to round-trip a lowered "$ref" string back to a TokenId.
func ParseTokenID(s string) (TokenId, error) {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return TokenId{}, fmt.Errorf("toon: malformed token id %q", s)
	}
	var id TokenId
	groups := [5][2]int{{0, 8}, {9, 13}, {14, 18}, {19, 23}, {24, 36}}
	offsets := [5]int{0, 4, 6, 8, 10}
	for i, g := range groups {
		n, err := hex.Decode(id[offsets[i]:], []byte(s[g[0]:g[1]]))
		if err != nil || n != (g[1]-g[0])/2 {
			return TokenId{}, fmt.Errorf("toon: malformed token id %q", s)
		}
	}
	return id, nil
}

// Bytes returns the 16 octets in the order used on the wire.
func (id TokenId) Bytes() [16]byte { return id }

// String renders the canonical 8-4-4-4-12 hyphenated hex form.
func (id TokenId) String() string {
	var buf [36]byte
	hex.Encode(buf[0:8], id[0:4])
	buf[8] = '-'
	hex.Encode(buf[9:13], id[4:6])
	buf[13] = '-'
	hex.Encode(buf[14:18], id[6:8])
	buf[18] = '-'
	hex.Encode(buf[19:23], id[8:10])
	buf[23] = '-'
	hex.Encode(buf[24:36], id[10:16])
	return string(buf[:])
}

// Metadata is never carried on the wire; it is reconstructed as
// (0, 0) on decode. Default construction stamps CreatedAtMs from the
// supplied clock and Flags to 0.
type Metadata struct {
	CreatedAtMs uint64
	Flags       uint32
}

// NewMetadata stamps CreatedAtMs from c and Flags to 0.
func NewMetadata(c clock.Clock) Metadata {
	if c == nil {
		c = clock.System{}
	}
	return Metadata{CreatedAtMs: c.NowUnixMs()}
}

// Token is immutable once constructed. Its identity is its TokenId; two
// tokens with equal identity and unequal values are conflicting
// (last-writer-wins in the registry).
type Token struct {
	id       TokenId
	value    Value
	metadata Metadata
}

// NewToken constructs a Token. value and metadata are not deep-copied;
// callers must stop mutating the array/map backing their Value before
// registering it, per the lifecycle rules in spec.md §3.
func NewToken(id TokenId, value Value, metadata Metadata) Token {
	return Token{id: id, value: value, metadata: metadata}
}

func (t Token) ID() TokenId         { return t.id }
func (t Token) Value() Value        { return t.value }
func (t Token) Metadata() Metadata  { return t.metadata }

// Equal reports whether two tokens have the same identity, value, and
// metadata. Registry "conflicting" comparisons (spec.md §3) only need
// identity + value equality; use t.ID() == other.ID() && t.Value().Equal(other.Value())
// for that narrower check.
func (t Token) Equal(other Token) bool {
	return t.id == other.id && t.metadata == other.metadata && t.value.Equal(other.value)
}
