// ABOUTME: Unit tests for PCM decoder
// ABOUTME: Tests round-trip accuracy against the encoder per bit depth
package decode

import (
	"math"
	"testing"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/encode"
)

// sweep covers exact zero, full scale and representative interior values.
var sweep = []float32{
	0, 1.0, -1.0, 0.5, -0.5, 0.25, -0.75,
	0.001, -0.001, 0.999, -0.999, 1.0 / 3.0, -2.0 / 3.0,
}

func TestNewPCM(t *testing.T) {
	if _, err := NewPCM(audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 64, SampleType: audio.SignedInt}); err == nil {
		t.Error("NewPCM() expected error for 64-bit integer")
	}
	if _, err := NewPCM(audio.Format{SampleRate: 48000, Channels: 0, BitDepth: 16, SampleType: audio.SignedInt}); err == nil {
		t.Error("NewPCM() expected error for invalid format")
	}
	dec, err := NewPCM(audio.Format{SampleRate: 48000, Channels: 2, BitDepth: 16, SampleType: audio.SignedInt})
	if err != nil {
		t.Fatalf("NewPCM() unexpected error: %v", err)
	}
	if dec == nil {
		t.Fatal("NewPCM() returned nil decoder")
	}
}

func TestPCMRoundTripInteger(t *testing.T) {
	// Decode(Encode(x)) must recover x within one quantization step of the
	// target depth.
	tests := []struct {
		name       string
		bitDepth   int
		sampleType audio.SampleType
		step       float64
	}{
		{"8-bit signed", 8, audio.SignedInt, 1.0 / 127},
		{"8-bit unsigned", 8, audio.UnsignedInt, 1.0 / 127.5},
		{"16-bit signed", 16, audio.SignedInt, 1.0 / 32767},
		{"16-bit unsigned", 16, audio.UnsignedInt, 1.0 / 32767.5},
		{"24-bit signed", 24, audio.SignedInt, 1.0 / float64(audio.Max24Bit)},
		{"24-bit unsigned", 24, audio.UnsignedInt, 1.0 / 8388607.5},
		{"32-bit signed", 32, audio.SignedInt, 1.0 / 2147483647},
		{"32-bit unsigned", 32, audio.UnsignedInt, 1.0 / 2147483647.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := audio.Format{SampleRate: 48000, Channels: 1, BitDepth: tt.bitDepth, SampleType: tt.sampleType}
			enc, err := encode.NewPCM(format)
			if err != nil {
				t.Fatalf("encode.NewPCM() failed: %v", err)
			}
			dec, err := NewPCM(format)
			if err != nil {
				t.Fatalf("NewPCM() failed: %v", err)
			}

			data, err := enc.Encode(sweep)
			if err != nil {
				t.Fatalf("Encode() failed: %v", err)
			}
			got, err := dec.Decode(data)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if len(got) != len(sweep) {
				t.Fatalf("Decode() returned %d samples, want %d", len(got), len(sweep))
			}

			for i, want := range sweep {
				diff := math.Abs(float64(got[i]) - float64(want))
				if diff > tt.step {
					t.Errorf("sample %d: round-trip %v -> %v, error %v exceeds step %v",
						i, want, got[i], diff, tt.step)
				}
			}
		})
	}
}

func TestPCMRoundTripFloat(t *testing.T) {
	// Float widths must round-trip exactly.
	for _, bitDepth := range []int{32, 64} {
		format := audio.Format{SampleRate: 48000, Channels: 1, BitDepth: bitDepth, SampleType: audio.Float}
		enc, err := encode.NewPCM(format)
		if err != nil {
			t.Fatalf("encode.NewPCM() failed: %v", err)
		}
		dec, err := NewPCM(format)
		if err != nil {
			t.Fatalf("NewPCM() failed: %v", err)
		}

		data, err := enc.Encode(sweep)
		if err != nil {
			t.Fatalf("Encode() failed: %v", err)
		}
		got, err := dec.Decode(data)
		if err != nil {
			t.Fatalf("Decode() failed: %v", err)
		}

		for i, want := range sweep {
			if got[i] != want {
				t.Errorf("%d-bit float sample %d: got %v, want %v", bitDepth, i, got[i], want)
			}
		}
	}
}

func TestPCMDecode_TrailingBytesIgnored(t *testing.T) {
	format := audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 24, SampleType: audio.SignedInt}
	dec, err := NewPCM(format)
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	// 7 bytes = 2 whole 3-byte samples + 1 trailing byte.
	data := []byte{0, 0, 0, 0xFF, 0xFF, 0x7F, 0x42}
	got, err := dec.Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Decode() returned %d samples, want 2", len(got))
	}
	if got[0] != 0 {
		t.Errorf("sample 0: got %v, want 0", got[0])
	}
	if got[1] != 1.0 {
		t.Errorf("sample 1: got %v, want 1.0", got[1])
	}
}

func TestPCMDecode_SignExtension24Bit(t *testing.T) {
	format := audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 24, SampleType: audio.SignedInt}
	dec, err := NewPCM(format)
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	// 0x800000 is the most negative 24-bit value.
	got, err := dec.Decode([]byte{0x00, 0x00, 0x80})
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	want := float32(float64(audio.Min24Bit) / float64(audio.Max24Bit))
	if got[0] != want {
		t.Errorf("Decode(0x800000) = %v, want %v", got[0], want)
	}
}

func TestPCMDecodeTo(t *testing.T) {
	format := audio.Format{SampleRate: 48000, Channels: 1, BitDepth: 16, SampleType: audio.SignedInt}
	dec, err := NewPCM(format)
	if err != nil {
		t.Fatalf("NewPCM() failed: %v", err)
	}

	// More input samples than destination capacity: extra input is not consumed.
	data := []byte{0x00, 0x00, 0xFF, 0x7F, 0x01, 0x80}
	dst := make([]float32, 2)
	n := dec.DecodeTo(dst, data)
	if n != 2 {
		t.Fatalf("DecodeTo() = %d, want 2", n)
	}
	if dst[0] != 0 || dst[1] != 1.0 {
		t.Errorf("DecodeTo() wrote %v, want [0 1]", dst)
	}
}
