package toon

import (
	"testing"

	"github.com/unkn0wn-root/toon/clock"
)

func TestNewTokenIDIsVersion4Variant1(t *testing.T) {
	id := NewTokenID()
	if id[6]&0xf0 != 0x40 {
		t.Fatalf("version nibble = %x, want 4", id[6]&0xf0)
	}
	if id[8]&0xc0 != 0x80 {
		t.Fatalf("variant bits = %02b, want 10", id[8]&0xc0>>6)
	}
}

func TestNewTokenIDUnique(t *testing.T) {
	a, b := NewTokenID(), NewTokenID()
	if a == b {
		t.Fatalf("two calls to NewTokenID produced the same id")
	}
}

func TestTokenIDStringRoundTrip(t *testing.T) {
	id := NewTokenID()
	parsed, err := ParseTokenID(id.String())
	if err != nil {
		t.Fatalf("ParseTokenID: %v", err)
	}
	if parsed != id {
		t.Fatalf("round trip mismatch: got %v want %v", parsed, id)
	}
}

func TestParseTokenIDRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-uuid",
		"00000000-0000-0000-0000-00000000000",  // one hex digit short
		"00000000:0000-0000-0000-000000000000", // wrong separator
	}
	for _, s := range cases {
		if _, err := ParseTokenID(s); err == nil {
			t.Fatalf("ParseTokenID(%q) should have failed", s)
		}
	}
}

func TestTokenIDStringFormat(t *testing.T) {
	var id TokenId
	for i := range id {
		id[i] = byte(i)
	}
	got := id.String()
	want := "00010203-0405-0607-0809-0a0b0c0d0e0f"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestNewMetadataUsesClock(t *testing.T) {
	m := NewMetadata(clock.Fixed(1234))
	if m.CreatedAtMs != 1234 {
		t.Fatalf("CreatedAtMs = %d, want 1234", m.CreatedAtMs)
	}
	if m.Flags != 0 {
		t.Fatalf("Flags = %d, want 0", m.Flags)
	}
}

func TestNewMetadataNilClockDefaultsToSystem(t *testing.T) {
	m := NewMetadata(nil)
	if m.CreatedAtMs == 0 {
		t.Fatalf("expected a non-zero timestamp from the system clock")
	}
}

func TestTokenEqual(t *testing.T) {
	id := NewTokenID()
	meta := Metadata{CreatedAtMs: 1}
	a := NewToken(id, Int(1), meta)
	b := NewToken(id, Int(1), meta)
	c := NewToken(id, Int(2), meta)

	if !a.Equal(b) {
		t.Fatalf("expected equal tokens to compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("expected tokens with different values to compare unequal")
	}
}
