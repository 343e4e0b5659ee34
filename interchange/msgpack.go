package interchange

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/toon"
)

// MsgPack is a Codec backed by vmihailenco/msgpack.
type MsgPack struct{}

func (MsgPack) Encode(v toon.Value) ([]byte, error) {
	return msgpack.Marshal(lower(v))
}

func (MsgPack) Decode(b []byte) (toon.Value, error) {
	var tree any
	if err := msgpack.Unmarshal(b, &tree); err != nil {
		return toon.Value{}, err
	}
	return raise(tree)
}
