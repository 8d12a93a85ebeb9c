// ABOUTME: Sentinel errors for the mixing output
// ABOUTME: Input attachment failures raised by the mixer
package output

import "errors"

var (
	// ErrFormatMismatch is returned when an input's channel count or sample
	// rate differs from the output's.
	ErrFormatMismatch = errors.New("input format does not match output")
	// ErrInputNotFound is returned when removing an input that was never
	// added.
	ErrInputNotFound = errors.New("input not attached to output")
	// ErrNotOpen is returned by sink operations before Open succeeded.
	ErrNotOpen = errors.New("sink not open")
)
