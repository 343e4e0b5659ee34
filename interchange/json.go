package interchange

import (
	"bytes"
	"encoding/json"

	"github.com/unkn0wn-root/toon"
)

// JSON is a Codec backed by encoding/json. NaN and +/-Inf floats are
// rejected by json.Marshal; Encode surfaces that as an error rather than
// silently substituting a sentinel value.
type JSON struct{}

func (JSON) Encode(v toon.Value) ([]byte, error) {
	return json.Marshal(lower(v))
}

func (JSON) Decode(b []byte) (toon.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return toon.Value{}, err
	}
	return raise(tree)
}
