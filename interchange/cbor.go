package interchange

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/toon"
)

// CBOR is a Codec backed by fxamacker/cbor. Unlike JSON, CBOR's binary
// major types preserve the int/float distinction without a UseNumber-style
// workaround.
type CBOR struct{}

func (CBOR) Encode(v toon.Value) ([]byte, error) {
	return cbor.Marshal(lower(v))
}

func (CBOR) Decode(b []byte) (toon.Value, error) {
	var tree any
	if err := cbor.Unmarshal(b, &tree); err != nil {
		return toon.Value{}, err
	}
	return raise(tree)
}
