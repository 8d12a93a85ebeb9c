// ABOUTME: PCM audio decoder
// ABOUTME: Decodes integer and float PCM byte layouts to float32 samples
package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// PCMDecoder decodes PCM bytes into canonical float32 samples.
//
// Each width is the exact numeric inverse of the matching encoder. Trailing
// bytes that do not fill a whole sample are left unconsumed.
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder for the given wire format.
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("invalid format for PCM decoder: %w", err)
	}
	if format.SampleType != audio.Float {
		switch format.BitDepth {
		case 8, 16, 24, 32:
		default:
			return nil, fmt.Errorf("%w: %d-bit %s PCM (supported: 8, 16, 24, 32)",
				audio.ErrInvalidBitDepth, format.BitDepth, format.SampleType)
		}
	}
	return &PCMDecoder{format: format}, nil
}

// Decode converts PCM bytes to float32 samples.
func (d *PCMDecoder) Decode(data []byte) ([]float32, error) {
	width := d.format.BytesPerSample()
	n := len(data) / width
	samples := make([]float32, n)
	d.DecodeTo(samples, data)
	return samples, nil
}

// DecodeTo decodes into dst without allocating and returns the number of
// samples written. Capture callbacks use this form on the real-time path.
func (d *PCMDecoder) DecodeTo(dst []float32, data []byte) int {
	width := d.format.BytesPerSample()
	n := len(data) / width
	if n > len(dst) {
		n = len(dst)
	}

	if d.format.SampleType == audio.Float {
		if d.format.BitDepth == 32 {
			decodeFloat32(dst[:n], data)
		} else {
			decodeFloat64(dst[:n], data)
		}
		return n
	}

	signed := d.format.SampleType == audio.SignedInt
	switch d.format.BitDepth {
	case 8:
		decodeInt8(dst[:n], data, signed)
	case 16:
		decodeInt16(dst[:n], data, signed)
	case 24:
		decodeInt24(dst[:n], data, signed)
	case 32:
		decodeInt32(dst[:n], data, signed)
	}
	return n
}

// Format returns the decoder's wire format.
func (d *PCMDecoder) Format() audio.Format {
	return d.format
}

// Close releases resources
func (d *PCMDecoder) Close() error {
	return nil
}

func decodeInt8(dst []float32, data []byte, signed bool) {
	for i := range dst {
		if signed {
			dst[i] = float32(float64(int8(data[i])) / 127)
		} else {
			dst[i] = float32(float64(data[i])/127.5 - 1.0)
		}
	}
}

func decodeInt16(dst []float32, data []byte, signed bool) {
	for i := range dst {
		v := binary.LittleEndian.Uint16(data[i*2:])
		if signed {
			dst[i] = float32(float64(int16(v)) / 32767)
		} else {
			dst[i] = float32(float64(v)/32767.5 - 1.0)
		}
	}
}

func decodeInt24(dst []float32, data []byte, signed bool) {
	for i := range dst {
		v := uint32(data[i*3]) | uint32(data[i*3+1])<<8 | uint32(data[i*3+2])<<16
		if signed {
			// Sign-extend from 24-bit to 32-bit.
			sv := int32(v)
			if sv&0x800000 != 0 {
				sv |= ^int32(0xFFFFFF)
			}
			dst[i] = float32(float64(sv) / float64(audio.Max24Bit))
		} else {
			dst[i] = float32(float64(v)/8388607.5 - 1.0)
		}
	}
}

func decodeInt32(dst []float32, data []byte, signed bool) {
	for i := range dst {
		v := binary.LittleEndian.Uint32(data[i*4:])
		if signed {
			dst[i] = float32(float64(int32(v)) / 2147483647)
		} else {
			dst[i] = float32(float64(v)/2147483647.5 - 1.0)
		}
	}
}

func decodeFloat32(dst []float32, data []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
}

func decodeFloat64(dst []float32, data []byte) {
	for i := range dst {
		dst[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:])))
	}
}
