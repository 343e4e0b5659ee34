package toon

import (
	"unicode/utf8"

	"github.com/unkn0wn-root/toon/internal/wire"
)

// encodeValue recursively encodes value to its (type_marker, payload)
// pair. It is pure: no I/O, no clock, no shared state. The only failure
// mode is a sub-length that does not fit in a u32 (spec.md §4.2).
func encodeValue(value Value) (byte, []byte, error) {
	switch value.kind {
	case KindNull:
		return wire.TypeNull, nil, nil
	case KindBool:
		if value.b {
			return wire.TypeBoolTrue, nil, nil
		}
		return wire.TypeBoolFalse, nil, nil
	case KindInt:
		w := wire.NewByteWriter(8)
		w.WriteI64LE(value.i)
		return wire.TypeInt64, w.Bytes(), nil
	case KindFloat:
		w := wire.NewByteWriter(8)
		w.WriteF64LE(value.f)
		return wire.TypeF64, w.Bytes(), nil
	case KindString:
		return wire.TypeString, []byte(value.s), nil
	case KindRef:
		w := wire.NewByteWriter(17)
		if value.ref.strength == Weak {
			w.WriteU8(1)
		} else {
			w.WriteU8(0)
		}
		idb := value.ref.id.Bytes()
		w.WriteBytes(idb[:])
		return wire.TypeRef, w.Bytes(), nil
	case KindArray:
		payload, err := encodeArray(value.arr)
		return wire.TypeArray, payload, err
	case KindObject:
		payload, err := encodeObject(value.obj)
		return wire.TypeObject, payload, err
	default:
		// Value can only be constructed through the exported
		// constructors in value.go, all of which set a valid kind.
		panic("toon: unreachable value kind")
	}
}

func encodeArray(items []Value) ([]byte, error) {
	w := wire.NewByteWriter(4)
	w.WriteU32LE(uint32(len(items)))

	for _, item := range items {
		marker, payload, err := encodeValue(item)
		if err != nil {
			return nil, err
		}
		if len(payload) > 0xFFFFFFFF {
			return nil, wire.ErrLengthOverflow
		}
		w.WriteU8(marker)
		w.WriteU32LE(uint32(len(payload)))
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

func encodeObject(fields map[string]Value) ([]byte, error) {
	w := wire.NewByteWriter(4)
	w.WriteU32LE(uint32(len(fields)))

	for key, val := range fields {
		keyBytes := []byte(key)
		if len(keyBytes) > 0xFFFFFFFF {
			return nil, wire.ErrLengthOverflow
		}
		marker, payload, err := encodeValue(val)
		if err != nil {
			return nil, err
		}
		if len(payload) > 0xFFFFFFFF {
			return nil, wire.ErrLengthOverflow
		}

		w.WriteU32LE(uint32(len(keyBytes)))
		w.WriteBytes(keyBytes)
		w.WriteU8(marker)
		w.WriteU32LE(uint32(len(payload)))
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

// decodeValue recursively decodes a (type_marker, payload) pair into a
// Value. Every field must consume exactly its declared length; any
// mismatch is a distinct typed error, never a panic (spec.md §4.2, §7).
func decodeValue(typeMarker byte, payload []byte) (Value, error) {
	switch typeMarker {
	case wire.TypeNull:
		if len(payload) != 0 {
			return Value{}, wire.ErrInvalidLength
		}
		return Null(), nil
	case wire.TypeBoolFalse:
		if len(payload) != 0 {
			return Value{}, wire.ErrInvalidLength
		}
		return Bool(false), nil
	case wire.TypeBoolTrue:
		if len(payload) != 0 {
			return Value{}, wire.ErrInvalidLength
		}
		return Bool(true), nil
	case wire.TypeInt64:
		if len(payload) != 8 {
			return Value{}, wire.ErrInvalidLength
		}
		v, _ := wire.NewByteReader(payload).ReadI64LE()
		return Int(v), nil
	case wire.TypeF64:
		if len(payload) != 8 {
			return Value{}, wire.ErrInvalidLength
		}
		v, _ := wire.NewByteReader(payload).ReadF64LE()
		return Float(v), nil
	case wire.TypeString:
		if !utf8.Valid(payload) {
			return Value{}, wire.ErrInvalidUtf8
		}
		return String(string(payload)), nil
	case wire.TypeRef:
		if len(payload) != 17 {
			return Value{}, wire.ErrInvalidLength
		}
		r := wire.NewByteReader(payload)
		strengthByte, _ := r.ReadU8()
		idBytes, _ := r.ReadBytes(16)
		var strength TokenRefStrength
		switch strengthByte {
		case 0:
			strength = Strong
		case 1:
			strength = Weak
		default:
			return Value{}, wire.ErrInvalidReferenceStrength
		}
		var id [16]byte
		copy(id[:], idBytes)
		return Ref(NewRefWithStrength(TokenIDFromBytes(id), strength)), nil
	case wire.TypeArray:
		return decodeArray(payload)
	case wire.TypeObject:
		return decodeObject(payload)
	default:
		return Value{}, &wire.UnknownTypeMarkerError{Marker: typeMarker}
	}
}

func decodeArray(payload []byte) (Value, error) {
	r := wire.NewByteReader(payload)
	count32, ok := r.ReadU32LE()
	if !ok {
		return Value{}, wire.ErrTruncated
	}
	count := int(count32)

	items := make([]Value, 0, clampPreallocHint(count, len(payload)))
	for i := 0; i < count; i++ {
		marker, ok := r.ReadU8()
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		length, ok := r.ReadU32LE()
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		itemPayload, ok := r.ReadBytes(int(length))
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		item, err := decodeValue(marker, itemPayload)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	if r.Remaining() != 0 {
		return Value{}, wire.ErrTrailingBytes
	}
	return Array(items), nil
}

func decodeObject(payload []byte) (Value, error) {
	r := wire.NewByteReader(payload)
	count32, ok := r.ReadU32LE()
	if !ok {
		return Value{}, wire.ErrTruncated
	}
	count := int(count32)

	fields := make(map[string]Value, clampPreallocHint(count, len(payload)))
	for i := 0; i < count; i++ {
		keyLen, ok := r.ReadU32LE()
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		keyBytes, ok := r.ReadBytes(int(keyLen))
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		if !utf8.Valid(keyBytes) {
			return Value{}, wire.ErrInvalidUtf8
		}
		key := string(keyBytes)

		marker, ok := r.ReadU8()
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		valLen, ok := r.ReadU32LE()
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		valPayload, ok := r.ReadBytes(int(valLen))
		if !ok {
			return Value{}, wire.ErrTruncated
		}
		val, err := decodeValue(marker, valPayload)
		if err != nil {
			return Value{}, err
		}
		fields[key] = val
	}

	if r.Remaining() != 0 {
		return Value{}, wire.ErrTrailingBytes
	}
	return Object(fields), nil
}

// clampPreallocHint bounds a declared element count by the smallest
// footprint a single element could plausibly occupy, so a bogus huge
// count in adversarial input cannot force a multi-gigabyte allocation
// before the truncation check on the first element even runs.
func clampPreallocHint(count, remainingBytes int) int {
	const minElementSize = 5 // type_marker(1) + len(4), zero-length payload
	if count < 0 {
		return 0
	}
	maxPlausible := remainingBytes / minElementSize
	if count > maxPlausible {
		return maxPlausible
	}
	return count
}
