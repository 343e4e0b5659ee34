package toon

import "fmt"

// ConstraintKind names the dimension a constraint check failed on.
type ConstraintKind string

const (
	ConstraintStringLength ConstraintKind = "string_length"
	ConstraintArrayLength  ConstraintKind = "array_length"
	ConstraintObjectLength ConstraintKind = "object_length"
	ConstraintDepth        ConstraintKind = "depth"
)

// NotFoundError reports that a TokenId has no cached token and no loader
// could produce one.
type NotFoundError struct{ ID TokenId }

func (e *NotFoundError) Error() string { return fmt.Sprintf("toon: token not found: %s", e.ID) }

// CircularReferenceError reports a cycle found while walking a token
// graph. Path lists identities in the order they were pushed onto the
// DFS stack, with the closing identity appended once.
type CircularReferenceError struct{ Path []TokenId }

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("toon: circular reference detected (path length %d)", len(e.Path))
}

// ChecksumMismatchError reports a CRC32 trailer that does not match the
// recomputed checksum of a token envelope.
type ChecksumMismatchError struct {
	Expected, Actual uint32
	Offset           int
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("toon: checksum mismatch at offset %d: expected %08x, got %08x", e.Offset, e.Expected, e.Actual)
}

// InvalidFormatError reports an unsupported envelope version.
type InvalidFormatError struct{ Version, Expected byte }

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("toon: unsupported format version %d (expected %d)", e.Version, e.Expected)
}

// InvalidReferenceError reports a TokenRef whose target could not be
// resolved. This is what a registry NotFoundError maps to at the
// ToonError boundary (spec.md §7).
type InvalidReferenceError struct{ ID TokenId }

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("toon: invalid reference: %s", e.ID)
}

// ConstraintViolationError reports a structural limit exceeded while
// validating a value tree.
type ConstraintViolationError struct {
	Kind         ConstraintKind
	Limit, Actual int
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("toon: constraint violation (%s): limit %d, actual %d", e.Kind, e.Limit, e.Actual)
}

// SchemaViolationError reports a shallow structural mismatch against a
// Schema, located by a dotted/indexed path.
type SchemaViolationError struct {
	Path, Expected, Actual string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("toon: schema violation at %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// ToonErrorKind tags the family a ToonError was raised from.
type ToonErrorKind uint8

const (
	ErrKindSerialization ToonErrorKind = iota
	ErrKindDeserialization
	ErrKindChecksumMismatch
	ErrKindInvalidFormat
	ErrKindInvalidReference
	ErrKindCircularReference
	ErrKindConstraintViolation
	ErrKindSchemaViolation
)

// ToonError is the unified error type surfaced at package boundaries. It
// wraps the native error returned by whichever layer (wire codec,
// registry, validator) produced it, so callers can either switch on Kind
// or use errors.As/errors.Is against the wrapped Cause.
type ToonError struct {
	Kind  ToonErrorKind
	Cause error
}

func (e *ToonError) Error() string { return e.Cause.Error() }
func (e *ToonError) Unwrap() error { return e.Cause }

func wrapErr(kind ToonErrorKind, cause error) *ToonError {
	if cause == nil {
		return nil
	}
	return &ToonError{Kind: kind, Cause: cause}
}

// WrapSerializeError wraps a wire-layer serialization error.
func WrapSerializeError(err error) *ToonError { return wrapErr(ErrKindSerialization, err) }

// WrapDeserializeError wraps a wire-layer deserialization error.
func WrapDeserializeError(err error) *ToonError { return wrapErr(ErrKindDeserialization, err) }

// WrapRegistryError maps a registry-layer error to its ToonError
// equivalent: NotFoundError becomes InvalidReferenceError, and
// CircularReferenceError is surfaced as-is, per spec.md §7.
func WrapRegistryError(err error) *ToonError {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *NotFoundError:
		return wrapErr(ErrKindInvalidReference, &InvalidReferenceError{ID: e.ID})
	case *CircularReferenceError:
		return wrapErr(ErrKindCircularReference, e)
	default:
		return wrapErr(ErrKindInvalidReference, err)
	}
}
