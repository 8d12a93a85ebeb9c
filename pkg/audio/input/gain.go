// ABOUTME: dBFS volume with linear gain ramping
// ABOUTME: Per-frame ramp advance shared by all input implementations
package input

import (
	"math"
	"sync"
)

// gainRamp converts a dBFS volume into a linear gain multiplier and supports
// a timed linear transition between gains.
//
// The ramp advances one step per consumed frame. When the remaining-frame
// counter reaches zero the gain snaps to the exact target instead of trusting
// the accumulated sum.
//
// All fields are guarded by mu. The control thread (SetVolume, Transition)
// and the render thread (apply) may touch a ramp concurrently.
type gainRamp struct {
	mu        sync.Mutex
	volume    int // dBFS, 0 = unity
	gain      float64
	target    float64
	step      float64
	remaining int
}

func newGainRamp() gainRamp {
	return gainRamp{gain: 1.0}
}

// dbToGain converts a dBFS volume into a linear multiplier.
func dbToGain(volumeDB int) float64 {
	return math.Pow(10, float64(volumeDB)/20)
}

// Volume returns the most recently requested dBFS volume.
func (g *gainRamp) Volume() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.volume
}

// Set replaces the gain immediately, cancelling any in-progress ramp.
func (g *gainRamp) Set(volumeDB int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.volume = volumeDB
	g.gain = dbToGain(volumeDB)
	g.remaining = 0
}

// Transition schedules a linear ramp from the current gain to the gain of
// volumeDB over the given number of frames. A zero or negative frame count
// applies the target immediately.
func (g *gainRamp) Transition(volumeDB, frames int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.volume = volumeDB
	g.target = dbToGain(volumeDB)
	if frames <= 0 {
		g.gain = g.target
		g.remaining = 0
		return
	}
	g.step = (g.target - g.gain) / float64(frames)
	g.remaining = frames
}

// apply scales frames*channels interleaved samples in place, advancing the
// ramp by one step per frame.
func (g *gainRamp) apply(samples []float32, channels int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	frames := len(samples) / channels
	idx := 0
	for f := 0; f < frames; f++ {
		gain := float32(g.gain)
		for c := 0; c < channels; c++ {
			samples[idx] *= gain
			idx++
		}
		if g.remaining > 0 {
			g.remaining--
			if g.remaining == 0 {
				g.gain = g.target
			} else {
				g.gain += g.step
			}
		}
	}
	// Trailing partial frame, if the caller handed us a ragged slice.
	gain := float32(g.gain)
	for ; idx < len(samples); idx++ {
		samples[idx] *= gain
	}
}
