// ABOUTME: Noise generator input
// ABOUTME: White, pink (Voss-McCartney) and brown noise sources
package input

import (
	"fmt"
	"math/rand"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// NoiseColor selects the noise spectrum
type NoiseColor int

const (
	White NoiseColor = iota
	Pink
	Brown
)

// String returns a human-readable noise color name
func (c NoiseColor) String() string {
	switch c {
	case White:
		return "white"
	case Pink:
		return "pink"
	case Brown:
		return "brown"
	default:
		return fmt.Sprintf("NoiseColor(%d)", int(c))
	}
}

// Voss-McCartney pink noise generator rows.
const pinkRows = 7

// Noise generates white, pink or brown noise duplicated across channels.
// A fixed seed makes a given instance reproducible.
type Noise struct {
	base
	color NoiseColor
	rng   *rand.Rand

	// Pink noise state (Voss-McCartney): one white value per row, updated
	// when the corresponding counter bit flips.
	pinkValues [pinkRows]float64
	pinkSum    float64
	counter    uint64

	// Brown noise state: leaky integrator over white noise.
	brown float64
}

// NewNoise creates a noise generator with the given seed.
func NewNoise(sampleRate, channels int, color NoiseColor, seed int64) (*Noise, error) {
	b, err := newBase(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	n := &Noise{
		base:  b,
		color: color,
		rng:   rand.New(rand.NewSource(seed)),
	}
	for i := range n.pinkValues {
		n.pinkValues[i] = n.white()
		n.pinkSum += n.pinkValues[i]
	}
	return n, nil
}

// white returns a uniform sample in [-1, 1).
func (n *Noise) white() float64 {
	return n.rng.Float64()*2 - 1
}

func (n *Noise) next() float64 {
	switch n.color {
	case Pink:
		n.counter++
		// Find the lowest row whose bit flipped and refresh it.
		row := 0
		for c := n.counter; c&1 == 0 && row < pinkRows-1; c >>= 1 {
			row++
		}
		n.pinkSum -= n.pinkValues[row]
		n.pinkValues[row] = n.white()
		n.pinkSum += n.pinkValues[row]
		return n.pinkSum / pinkRows
	case Brown:
		n.brown += 0.02 * n.white()
		n.brown /= 1.02 // leak keeps the walk centered
		v := n.brown * 3.0
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		return v
	default:
		return n.white()
	}
}

// GetFrames synthesizes frames*channels samples. Produces nothing unless
// playing.
func (n *Noise) GetFrames(out []float32, frames int) int {
	if n.State() != audio.Playing {
		return 0
	}

	want := frames * n.channels
	if want > len(out) {
		want = len(out)
	}
	whole := want / n.channels

	for i := 0; i < whole; i++ {
		sample := float32(n.next())
		for ch := 0; ch < n.channels; ch++ {
			out[i*n.channels+ch] = sample
		}
	}

	written := whole * n.channels
	n.gain.apply(out[:written], n.channels)
	return written
}

// Color returns the configured noise color.
func (n *Noise) Color() NoiseColor {
	return n.color
}
