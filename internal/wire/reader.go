package wire

import "math"

// ByteReader is a bounded cursor over a byte slice. Every read is
// preceded by a length check; reads past the end return ok=false instead
// of panicking.
type ByteReader struct {
	b   []byte
	pos int
}

func NewByteReader(b []byte) *ByteReader { return &ByteReader{b: b} }

// Remaining returns the number of unread bytes.
func (r *ByteReader) Remaining() int { return len(r.b) - r.pos }

func (r *ByteReader) ReadU8() (byte, bool) {
	if r.Remaining() < 1 {
		return 0, false
	}
	v := r.b[r.pos]
	r.pos++
	return v, true
}

func (r *ByteReader) ReadU32LE() (uint32, bool) {
	b, ok := r.ReadBytes(4)
	if !ok {
		return 0, false
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, true
}

func (r *ByteReader) ReadU64LE() (uint64, bool) {
	b, ok := r.ReadBytes(8)
	if !ok {
		return 0, false
	}
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56, true
}

func (r *ByteReader) ReadI64LE() (int64, bool) {
	v, ok := r.ReadU64LE()
	return int64(v), ok
}

func (r *ByteReader) ReadF64LE() (float64, bool) {
	v, ok := r.ReadU64LE()
	if !ok {
		return 0, false
	}
	return math.Float64frombits(v), true
}

// ReadBytes returns the next n bytes as a subslice of the underlying
// buffer (zero-copy); callers must not retain it past the buffer's
// lifetime without copying.
func (r *ByteReader) ReadBytes(n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	end := r.pos + n
	if end > len(r.b) || end < r.pos { // end < r.pos guards int overflow
		return nil, false
	}
	out := r.b[r.pos:end]
	r.pos = end
	return out, true
}
