// ABOUTME: Test tone generator input
// ABOUTME: Sine, square, sawtooth and triangle waveforms at a fixed frequency
package input

import (
	"fmt"
	"math"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// Waveform selects the tone shape
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

// String returns a human-readable waveform name
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Waveform(%d)", int(w))
	}
}

// Tone generates a fixed-frequency full-scale waveform, duplicated across
// all channels. Phase is derived from a running sample index, so output is
// deterministic and reproducible for a given construction.
type Tone struct {
	base
	frequency   float64
	waveform    Waveform
	sampleIndex uint64
}

// NewTone creates a tone generator. Use SetVolume to attenuate the
// full-scale output.
func NewTone(sampleRate, channels int, frequency float64, waveform Waveform) (*Tone, error) {
	if frequency <= 0 {
		return nil, fmt.Errorf("%w: %v Hz", ErrInvalidFrequency, frequency)
	}
	b, err := newBase(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &Tone{
		base:      b,
		frequency: frequency,
		waveform:  waveform,
	}, nil
}

// GetFrames synthesizes frames*channels samples. Produces nothing unless
// playing.
func (t *Tone) GetFrames(out []float32, frames int) int {
	if t.State() != audio.Playing {
		return 0
	}

	want := frames * t.channels
	if want > len(out) {
		want = len(out)
	}
	n := want / t.channels // whole frames only

	for i := 0; i < n; i++ {
		// Phase in [0,1) for this sample index.
		pos := float64(t.sampleIndex+uint64(i)) * t.frequency / float64(t.sampleRate)
		phase := pos - math.Floor(pos)

		var v float64
		switch t.waveform {
		case Sine:
			v = math.Sin(2 * math.Pi * phase)
		case Square:
			if phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case Sawtooth:
			v = 2*phase - 1
		case Triangle:
			v = 1 - 4*math.Abs(phase-0.5)
		}

		sample := float32(v)
		for ch := 0; ch < t.channels; ch++ {
			out[i*t.channels+ch] = sample
		}
	}
	t.sampleIndex += uint64(n)

	written := n * t.channels
	t.gain.apply(out[:written], t.channels)
	return written
}

// Frequency returns the tone frequency in Hz.
func (t *Tone) Frequency() float64 {
	return t.frequency
}
