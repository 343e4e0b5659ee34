// Package validate provides external-collaborator checks layered on top
// of the core codec: structural limits, shallow schema matching, and
// envelope re-verification (spec.md §6). None of these run on the wire
// path itself; callers opt in.
package validate

import "github.com/unkn0wn-root/toon"

// Default structural limits, matching the original implementation's
// Default for its constraints type.
const (
	DefaultMaxStringLen = 1 << 20
	DefaultMaxArrayLen  = 1_000_000
	DefaultMaxObjectLen = 1_000_000
	DefaultMaxDepth     = 256
)

// Constraints bounds the shape of a Value tree. The zero value is not
// useful; use Default() or construct explicitly.
type Constraints struct {
	MaxStringLen int
	MaxArrayLen  int
	MaxObjectLen int
	MaxDepth     int
}

// Default returns the spec's default limits.
func Default() Constraints {
	return Constraints{
		MaxStringLen: DefaultMaxStringLen,
		MaxArrayLen:  DefaultMaxArrayLen,
		MaxObjectLen: DefaultMaxObjectLen,
		MaxDepth:     DefaultMaxDepth,
	}
}

// ValidateValue walks value and reports the first ConstraintViolationError
// found: a string longer than MaxStringLen, an array or object with more
// entries than MaxArrayLen/MaxObjectLen, or nesting deeper than MaxDepth.
func ValidateValue(value toon.Value, c Constraints) error {
	return validateAt(value, c, 1)
}

func validateAt(value toon.Value, c Constraints, depth int) error {
	if depth > c.MaxDepth {
		return &toon.ConstraintViolationError{Kind: toon.ConstraintDepth, Limit: c.MaxDepth, Actual: depth}
	}

	switch value.Kind() {
	case toon.KindString:
		s, _ := value.AsString()
		if len(s) > c.MaxStringLen {
			return &toon.ConstraintViolationError{Kind: toon.ConstraintStringLength, Limit: c.MaxStringLen, Actual: len(s)}
		}
	case toon.KindArray:
		items, _ := value.AsArray()
		if len(items) > c.MaxArrayLen {
			return &toon.ConstraintViolationError{Kind: toon.ConstraintArrayLength, Limit: c.MaxArrayLen, Actual: len(items)}
		}
		for _, item := range items {
			if err := validateAt(item, c, depth+1); err != nil {
				return err
			}
		}
	case toon.KindObject:
		fields, _ := value.AsObject()
		if len(fields) > c.MaxObjectLen {
			return &toon.ConstraintViolationError{Kind: toon.ConstraintObjectLength, Limit: c.MaxObjectLen, Actual: len(fields)}
		}
		for _, field := range fields {
			if err := validateAt(field, c, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
