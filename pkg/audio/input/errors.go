// ABOUTME: Sentinel errors for audio inputs
// ABOUTME: Usage and overflow conditions raised by buffered inputs
package input

import "errors"

var (
	// ErrBufferSizeUnset is returned by Write before SetBufferSize was called.
	ErrBufferSizeUnset = errors.New("buffer size not configured")
	// ErrInvalidBufferSize is returned for a non-positive frame count.
	ErrInvalidBufferSize = errors.New("invalid buffer size")
	// ErrOverflow is returned by strict-mode writes that could not accept
	// every sample. Samples that fit are retained.
	ErrOverflow = errors.New("ring buffer overflow")
	// ErrInvalidFrequency is returned for a non-positive tone frequency.
	ErrInvalidFrequency = errors.New("invalid tone frequency")
)
