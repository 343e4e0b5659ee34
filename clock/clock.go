// Package clock supplies the process clock used to stamp default
// Metadata. It is treated as a small external collaborator, the same way
// the teacher repo injects a GenStore or Provider rather than reaching
// for time.Now() directly inside domain logic.
package clock

import "time"

// Clock returns the current time as Unix milliseconds.
type Clock interface {
	NowUnixMs() uint64
}

// System is the real wall clock.
type System struct{}

func (System) NowUnixMs() uint64 { return uint64(time.Now().UnixMilli()) }

// Fixed returns a constant time, for deterministic tests.
type Fixed uint64

func (f Fixed) NowUnixMs() uint64 { return uint64(f) }
