// Package interchange exports a decoded Value tree to human/tool-facing
// formats (JSON, CBOR, MessagePack). This is explicitly NOT the wire
// format: the byte-exact envelope in the root package is unaffected, and
// a round-trip through a Codec here is best-effort rather than
// byte-exact — see JSON's NaN/Inf caveat on Encode.
package interchange

import "github.com/unkn0wn-root/toon"

// Codec lowers a Value to and from a self-describing interchange format.
type Codec interface {
	Encode(v toon.Value) ([]byte, error)
	Decode(b []byte) (toon.Value, error)
}

// refStrengthTag renders a TokenRefStrength as the wire-adjacent tag used
// in a lowered Ref object ("strong"/"weak").
func refStrengthTag(s toon.TokenRefStrength) string { return s.String() }
