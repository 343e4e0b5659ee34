package toon

import (
	"testing"

	"github.com/unkn0wn-root/toon/internal/wire"
)

func roundTrip(t *testing.T, v Value) Token {
	t.Helper()
	id := NewTokenID()
	tok := NewToken(id, v, Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := Deserialize(b)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if got.ID() != id {
		t.Fatalf("id mismatch: got %v want %v", got.ID(), id)
	}
	if !got.Value().Equal(v) {
		t.Fatalf("value mismatch:\n  got  %+v\n  want %+v", got.Value(), v)
	}
	if got.Metadata() != (Metadata{}) {
		t.Fatalf("Metadata should always deserialize as zero value, got %+v", got.Metadata())
	}
	return got
}

func TestSerializeRoundTripEveryKind(t *testing.T) {
	ref := NewRef(NewTokenID())
	weakRef := NewWeakRef(NewTokenID())

	cases := map[string]Value{
		"null":    Null(),
		"true":    Bool(true),
		"false":   Bool(false),
		"int":     Int(-42),
		"float":   Float(3.14159),
		"string":  String("hello, world"),
		"empty":   String(""),
		"strong":  Ref(ref),
		"weak":    Ref(weakRef),
		"array":   Array([]Value{Int(1), String("two"), Bool(true)}),
		"nested":  Array([]Value{Array([]Value{Int(1)}), Null()}),
		"object":  Object(map[string]Value{"a": Int(1), "b": String("x")}),
		"mixed":   Object(map[string]Value{"items": Array([]Value{Ref(ref)}), "n": Null()}),
		"empty_a": Array(nil),
		"empty_o": Object(map[string]Value{}),
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, v)
		})
	}
}

func TestSerializeWeakRefStrengthByte(t *testing.T) {
	id := NewTokenID()
	marker, payload, err := encodeValue(Ref(NewWeakRef(id)))
	if err != nil {
		t.Fatalf("encodeValue: %v", err)
	}
	if marker != wire.TypeRef {
		t.Fatalf("marker = %x, want %x", marker, wire.TypeRef)
	}
	if len(payload) != 17 {
		t.Fatalf("payload length = %d, want 17", len(payload))
	}
	if payload[0] != 1 {
		t.Fatalf("strength byte = %d, want 1 (weak)", payload[0])
	}
}

func TestSerializeStrongRefStrengthByte(t *testing.T) {
	id := NewTokenID()
	_, payload, err := encodeValue(Ref(NewRef(id)))
	if err != nil {
		t.Fatalf("encodeValue: %v", err)
	}
	if payload[0] != 0 {
		t.Fatalf("strength byte = %d, want 0 (strong)", payload[0])
	}
}

func TestDeserializeDetectsChecksumCorruption(t *testing.T) {
	tok := NewToken(NewTokenID(), String("hello"), Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b[len(b)-1] ^= 0xFF

	_, err = Deserialize(b)
	if err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}

func TestDeserializeRejectsUnknownTypeMarker(t *testing.T) {
	tok := NewToken(NewTokenID(), Null(), Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	// The type marker is the 18th byte: version(1) + id(16).
	b[17] = 0xFF
	// Recompute the trailer so the failure we observe is UnknownTypeMarker,
	// not an incidental checksum mismatch from the tampered marker.
	checksum := wire.CRC32(b[:len(b)-4])
	b[len(b)-4] = byte(checksum)
	b[len(b)-3] = byte(checksum >> 8)
	b[len(b)-2] = byte(checksum >> 16)
	b[len(b)-1] = byte(checksum >> 24)

	_, err = Deserialize(b)
	if err == nil {
		t.Fatalf("expected an error for an unknown type marker")
	}
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {
	tok := NewToken(NewTokenID(), String("hello"), Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	_, err = Deserialize(b[:len(b)-6])
	if err == nil {
		t.Fatalf("expected an error for truncated input")
	}
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {
	tok := NewToken(NewTokenID(), Null(), Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	b[0] = 2
	checksum := wire.CRC32(b[:len(b)-4])
	b[len(b)-4] = byte(checksum)
	b[len(b)-3] = byte(checksum >> 8)
	b[len(b)-2] = byte(checksum >> 16)
	b[len(b)-1] = byte(checksum >> 24)

	_, err = Deserialize(b)
	if err == nil {
		t.Fatalf("expected an error for an unsupported version")
	}
}

func TestDeserializeNeverPanicsOnArbitraryBytes(t *testing.T) {
	samples := [][]byte{
		nil,
		{},
		{0x01},
		{0xFF, 0xFF, 0xFF, 0xFF},
		make([]byte, 26), // minimum envelope size, all zero
		make([]byte, 100),
	}
	for i, b := range samples {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("sample %d: Deserialize panicked: %v", i, r)
				}
			}()
			_, _ = Deserialize(b)
		}()
	}
}

func TestHeaderReadWithoutFullDecode(t *testing.T) {
	id := NewTokenID()
	tok := NewToken(id, String("payload"), Metadata{})
	b, err := Serialize(tok)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	h, err := ReadHeader(b)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.ID != id {
		t.Fatalf("Header.ID = %v, want %v", h.ID, id)
	}
	if h.Version != wire.Version {
		t.Fatalf("Header.Version = %d, want %d", h.Version, wire.Version)
	}
}
