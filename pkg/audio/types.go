// ABOUTME: Audio type definitions
// ABOUTME: Defines sample formats, playback states and device descriptors
package audio

import "fmt"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// SampleType describes how PCM sample bytes are interpreted.
type SampleType int

const (
	SignedInt SampleType = iota
	UnsignedInt
	Float
)

// String returns a human-readable sample type name
func (t SampleType) String() string {
	switch t {
	case SignedInt:
		return "signed"
	case UnsignedInt:
		return "unsigned"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("SampleType(%d)", int(t))
	}
}

// Format describes audio stream format
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	SampleType SampleType
}

// NewFormat builds a validated Format. Invalid rates, channel counts and bit
// depths fail here rather than being silently clamped later.
func NewFormat(sampleRate, channels, bitDepth int, sampleType SampleType) (Format, error) {
	f := Format{
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		SampleType: sampleType,
	}
	if err := f.Validate(); err != nil {
		return Format{}, err
	}
	return f, nil
}

// Validate checks the format invariants: float depths are 32 or 64; integer
// depths are a power of two in [8,64] or exactly 24 (packed 3-byte samples).
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, f.Channels)
	}
	switch f.SampleType {
	case Float:
		if f.BitDepth != 32 && f.BitDepth != 64 {
			return fmt.Errorf("%w: %d-bit float (supported: 32, 64)", ErrInvalidBitDepth, f.BitDepth)
		}
	case SignedInt, UnsignedInt:
		if f.BitDepth == 24 {
			return nil
		}
		if f.BitDepth < 8 || f.BitDepth > 64 || f.BitDepth&(f.BitDepth-1) != 0 {
			return fmt.Errorf("%w: %d-bit integer (supported: 8, 16, 24, 32, 64)", ErrInvalidBitDepth, f.BitDepth)
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSampleType, f.SampleType)
	}
	return nil
}

// BytesPerSample returns the wire size of one sample.
func (f Format) BytesPerSample() int {
	return f.BitDepth / 8
}

// FrameBytes returns the wire size of one interleaved frame.
func (f Format) FrameBytes() int {
	return f.BytesPerSample() * f.Channels
}

// Device is a read-only snapshot of an audio device as reported by the
// platform enumeration layer.
type Device struct {
	ID        uint32
	Name      string
	IsDefault bool
}
