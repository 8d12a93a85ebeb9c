// ABOUTME: PCM audio encoder
// ABOUTME: Encodes float32 samples to integer and float PCM byte layouts
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// PCMEncoder encodes canonical float32 samples to PCM bytes.
//
// Integer targets hard-clamp the input to [-1, 1] and round half away from
// zero. Float targets are a direct bit-level reinterpretation, no scaling.
type PCMEncoder struct {
	format audio.Format
}

// NewPCM creates a new PCM encoder for the given wire format.
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format for PCM encoder: %w", err)
	}
	if err := checkCodecDepth(format); err != nil {
		return nil, err
	}
	return &PCMEncoder{format: format}, nil
}

// checkCodecDepth rejects valid formats the codec has no byte layout for.
// 64-bit integers pass Format validation but have no PCM wire encoding here.
func checkCodecDepth(format audio.Format) error {
	switch format.SampleType {
	case audio.Float:
		// Validate already restricted float to 32/64.
		return nil
	default:
		switch format.BitDepth {
		case 8, 16, 24, 32:
			return nil
		}
		return fmt.Errorf("%w: %d-bit %s PCM (supported: 8, 16, 24, 32)",
			audio.ErrInvalidBitDepth, format.BitDepth, format.SampleType)
	}
}

// Encode converts float32 samples to PCM bytes.
func (e *PCMEncoder) Encode(samples []float32) ([]byte, error) {
	out := make([]byte, len(samples)*e.format.BytesPerSample())
	if err := e.EncodeTo(out, samples); err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeTo encodes samples into dst without allocating. dst must hold
// len(samples) * BytesPerSample() bytes. Render callbacks use this form to
// keep the real-time path allocation-free.
func (e *PCMEncoder) EncodeTo(dst []byte, samples []float32) error {
	need := len(samples) * e.format.BytesPerSample()
	if len(dst) < need {
		return fmt.Errorf("destination too small: %d bytes, need %d", len(dst), need)
	}

	if e.format.SampleType == audio.Float {
		if e.format.BitDepth == 32 {
			encodeFloat32(dst, samples)
		} else {
			encodeFloat64(dst, samples)
		}
		return nil
	}

	signed := e.format.SampleType == audio.SignedInt
	switch e.format.BitDepth {
	case 8:
		encodeInt8(dst, samples, signed)
	case 16:
		encodeInt16(dst, samples, signed)
	case 24:
		encodeInt24(dst, samples, signed)
	case 32:
		encodeInt32(dst, samples, signed)
	}
	return nil
}

// Format returns the encoder's wire format.
func (e *PCMEncoder) Format() audio.Format {
	return e.format
}

// Close releases resources
func (e *PCMEncoder) Close() error {
	return nil
}

// clampSample hard-limits a sample to [-1, 1] before integer quantization.
func clampSample(s float32) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return float64(s)
}

// quantizeSigned maps a clamped sample to [-max, max], rounding half away
// from zero.
func quantizeSigned(s float32, max float64) int64 {
	return int64(math.Round(clampSample(s) * max))
}

// quantizeUnsigned maps a clamped sample to [0, 2*half], rounding half away
// from zero. half is (2^n - 1) / 2, kept fractional so the full unsigned
// range is used.
func quantizeUnsigned(s float32, half float64) uint64 {
	return uint64(math.Round((clampSample(s) + 1.0) * half))
}

func encodeInt8(dst []byte, samples []float32, signed bool) {
	for i, s := range samples {
		if signed {
			dst[i] = byte(int8(quantizeSigned(s, 127)))
		} else {
			dst[i] = byte(quantizeUnsigned(s, 127.5))
		}
	}
}

func encodeInt16(dst []byte, samples []float32, signed bool) {
	for i, s := range samples {
		var v uint16
		if signed {
			v = uint16(int16(quantizeSigned(s, 32767)))
		} else {
			v = uint16(quantizeUnsigned(s, 32767.5))
		}
		binary.LittleEndian.PutUint16(dst[i*2:], v)
	}
}

func encodeInt24(dst []byte, samples []float32, signed bool) {
	for i, s := range samples {
		// Quantize into a 32-bit intermediate, pack the low 3 bytes.
		var v uint32
		if signed {
			v = uint32(int32(quantizeSigned(s, float64(audio.Max24Bit))))
		} else {
			v = uint32(quantizeUnsigned(s, 8388607.5))
		}
		dst[i*3] = byte(v)
		dst[i*3+1] = byte(v >> 8)
		dst[i*3+2] = byte(v >> 16)
	}
}

func encodeInt32(dst []byte, samples []float32, signed bool) {
	for i, s := range samples {
		var v uint32
		if signed {
			v = uint32(int32(quantizeSigned(s, 2147483647)))
		} else {
			v = uint32(quantizeUnsigned(s, 2147483647.5))
		}
		binary.LittleEndian.PutUint32(dst[i*4:], v)
	}
}

func encodeFloat32(dst []byte, samples []float32) {
	for i, s := range samples {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(s))
	}
}

func encodeFloat64(dst []byte, samples []float32) {
	for i, s := range samples {
		binary.LittleEndian.PutUint64(dst[i*8:], math.Float64bits(float64(s)))
	}
}
