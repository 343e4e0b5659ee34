package toon

import (
	"fmt"
	"math"
)

// Kind tags the arm of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindRef
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRef:
		return "ref"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// TokenRefStrength controls whether a graph walk must resolve a
// TokenRef's target.
type TokenRefStrength uint8

const (
	// Strong references must resolve when a graph is walked; the
	// loader is consulted on a cache miss.
	Strong TokenRefStrength = iota
	// Weak references are resolved only if already cached; a missing
	// target is tolerated.
	Weak
)

func (s TokenRefStrength) String() string {
	if s == Weak {
		return "weak"
	}
	return "strong"
}

// TokenRef is a lookup key plus a resolution policy. It does not own its
// target; existence of the target is enforced only by the registry/graph
// walker, per Strength.
type TokenRef struct {
	id       TokenId
	strength TokenRefStrength
}

// NewRef builds a Strong reference to id.
func NewRef(id TokenId) TokenRef { return TokenRef{id: id, strength: Strong} }

// NewWeakRef builds a Weak reference to id.
func NewWeakRef(id TokenId) TokenRef { return TokenRef{id: id, strength: Weak} }

// NewRefWithStrength builds a reference with an explicit strength.
func NewRefWithStrength(id TokenId, strength TokenRefStrength) TokenRef {
	return TokenRef{id: id, strength: strength}
}

func (r TokenRef) ID() TokenId              { return r.id }
func (r TokenRef) Strength() TokenRefStrength { return r.strength }

// Value is a tagged variant with exactly these arms: Null, Bool, Int,
// Float, String, Ref, Array, Object. The zero Value is Null.
//
// Equality is structural (see Equal); for Float, bit-pattern equality of
// the IEEE-754 representation is what the codec preserves, which also
// means NaN compares equal to an identically-bit-patterned NaN and
// unequal to a differently-bit-patterned one.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	ref  TokenRef
	arr  []Value
	obj  map[string]Value
}

func Null() Value                    { return Value{kind: KindNull} }
func Bool(v bool) Value              { return Value{kind: KindBool, b: v} }
func Int(v int64) Value              { return Value{kind: KindInt, i: v} }
func Float(v float64) Value          { return Value{kind: KindFloat, f: v} }
func String(v string) Value          { return Value{kind: KindString, s: v} }
func Ref(v TokenRef) Value           { return Value{kind: KindRef, ref: v} }
func Array(items []Value) Value      { return Value{kind: KindArray, arr: items} }
func Object(fields map[string]Value) Value {
	return Value{kind: KindObject, obj: fields}
}

func (v Value) Kind() Kind { return v.kind }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the int64 payload and whether v is an Int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float64 payload and whether v is a Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsRef returns the TokenRef payload and whether v is a Ref.
func (v Value) AsRef() (TokenRef, bool) { return v.ref, v.kind == KindRef }

// AsArray returns the element slice and whether v is an Array. The
// returned slice aliases v's backing array; callers must not mutate it.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the field map and whether v is an Object. The
// returned map aliases v's backing map; callers must not mutate it.
func (v Value) AsObject() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

// Equal reports whether v and other are structurally equal. Object
// comparison is by entry set, not insertion order (the wire format does
// not preserve object key ordering). Float comparison is by bit pattern.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return floatBits(v.f) == floatBits(other.f)
	case KindString:
		return v.s == other.s
	case KindRef:
		return v.ref == other.ref
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			ov, ok := other.obj[k]
			if !ok || !val.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func floatBits(f float64) uint64 { return math.Float64bits(f) }
