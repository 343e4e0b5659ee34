package validate

import (
	"github.com/unkn0wn-root/toon"
	"github.com/unkn0wn-root/toon/internal/wire"
)

// ValidateTokenBytes independently re-verifies a serialized token's
// envelope: version, strict framing, and checksum. Unlike Deserialize,
// which surfaces wire-layer sentinel errors wrapped in a ToonError, this
// reports the
// data-carrying Validation-layer error variants spec.md §7 names
// (ChecksumMismatchError with expected/actual/offset, InvalidFormatError
// with version/expected) so a caller probing trust in a buffer gets a
// structured diagnosis rather than a bare "deserialization failed".
func ValidateTokenBytes(b []byte) error {
	header, err := wire.ReadHeader(b)
	if err != nil {
		return err
	}
	if !wire.IsSupportedVersion(header.Version) {
		return &toon.InvalidFormatError{Version: header.Version, Expected: wire.Version}
	}

	layout, err := wire.ReadLayout(b)
	if err != nil {
		return err
	}

	expected := wire.CRC32(b[:layout.ChecksumStart])
	actual, _ := wire.NewByteReader(b[layout.ChecksumStart:layout.ChecksumEnd]).ReadU32LE()
	if expected != actual {
		return &toon.ChecksumMismatchError{
			Expected: expected,
			Actual:   actual,
			Offset:   len(b) - 4,
		}
	}
	return nil
}
