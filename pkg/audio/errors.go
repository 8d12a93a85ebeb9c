// ABOUTME: Sentinel errors for audio configuration
// ABOUTME: Construction-time validation failures wrap these values
package audio

import "errors"

var (
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("invalid channel count")
	ErrInvalidBitDepth   = errors.New("unsupported bit depth")
	ErrInvalidSampleType = errors.New("unknown sample type")
)
