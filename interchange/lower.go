package interchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/unkn0wn-root/toon"
)

// lower converts a Value to a plain Go tree of nil/bool/int64/float64/
// string/[]any/map[string]any, the shape every third-party marshaler in
// this package already knows how to encode. A Ref lowers to a two-field
// object carrying its identity and strength.
func lower(v toon.Value) any {
	switch v.Kind() {
	case toon.KindNull:
		return nil
	case toon.KindBool:
		b, _ := v.AsBool()
		return b
	case toon.KindInt:
		i, _ := v.AsInt()
		return i
	case toon.KindFloat:
		f, _ := v.AsFloat()
		return f
	case toon.KindString:
		s, _ := v.AsString()
		return s
	case toon.KindRef:
		r, _ := v.AsRef()
		return map[string]any{"$ref": r.ID().String(), "strength": refStrengthTag(r.Strength())}
	case toon.KindArray:
		items, _ := v.AsArray()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = lower(item)
		}
		return out
	case toon.KindObject:
		fields, _ := v.AsObject()
		out := make(map[string]any, len(fields))
		for k, val := range fields {
			out[k] = lower(val)
		}
		return out
	default:
		return nil
	}
}

// raise converts a tree decoded by a third-party unmarshaler back to a
// Value. It accepts every numeric representation fxamacker/cbor,
// vmihailenco/msgpack, and encoding/json (with UseNumber) can produce.
func raise(x any) (toon.Value, error) {
	switch t := x.(type) {
	case nil:
		return toon.Null(), nil
	case bool:
		return toon.Bool(t), nil
	case int:
		return toon.Int(int64(t)), nil
	case int64:
		return toon.Int(t), nil
	case uint64:
		return toon.Int(int64(t)), nil
	case float32:
		return toon.Float(float64(t)), nil
	case float64:
		return toon.Float(t), nil
	case json.Number:
		return raiseJSONNumber(t)
	case string:
		return toon.String(t), nil
	case []any:
		items := make([]toon.Value, len(t))
		for i, item := range t {
			v, err := raise(item)
			if err != nil {
				return toon.Value{}, err
			}
			items[i] = v
		}
		return toon.Array(items), nil
	case map[string]any:
		return raiseObject(t)
	case map[any]any: // msgpack may decode maps with non-string keys as this
		converted := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return toon.Value{}, fmt.Errorf("interchange: non-string object key %v (%T)", k, k)
			}
			converted[ks] = val
		}
		return raiseObject(converted)
	default:
		return toon.Value{}, fmt.Errorf("interchange: unsupported decoded type %T", x)
	}
}

func raiseJSONNumber(n json.Number) (toon.Value, error) {
	s := string(n)
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return toon.Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return toon.Value{}, fmt.Errorf("interchange: invalid number %q: %w", s, err)
	}
	return toon.Float(f), nil
}

func raiseObject(fields map[string]any) (toon.Value, error) {
	if ref, isRef := asLoweredRef(fields); isRef {
		return toon.Ref(ref), nil
	}
	out := make(map[string]toon.Value, len(fields))
	for k, val := range fields {
		v, err := raise(val)
		if err != nil {
			return toon.Value{}, err
		}
		out[k] = v
	}
	return toon.Object(out), nil
}

func asLoweredRef(fields map[string]any) (toon.TokenRef, bool) {
	if len(fields) != 2 {
		return toon.TokenRef{}, false
	}
	idAny, hasID := fields["$ref"]
	strengthAny, hasStrength := fields["strength"]
	if !hasID || !hasStrength {
		return toon.TokenRef{}, false
	}
	idStr, ok := idAny.(string)
	if !ok {
		return toon.TokenRef{}, false
	}
	strengthStr, ok := strengthAny.(string)
	if !ok {
		return toon.TokenRef{}, false
	}
	id, err := toon.ParseTokenID(idStr)
	if err != nil {
		return toon.TokenRef{}, false
	}
	strength := toon.Strong
	if strengthStr == "weak" {
		strength = toon.Weak
	}
	return toon.NewRefWithStrength(id, strength), true
}
