// ABOUTME: Ring-buffered audio input bridging push and pull sides
// ABOUTME: Absorbs bursty hardware callbacks and feeds the mixer steadily
package input

import (
	"fmt"
	"sync/atomic"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/notify"
)

// Buffered decouples an asynchronous producer (Write, typically a hardware
// capture callback) from the pull-based mixer (GetFrames) through a ring
// buffer.
//
// State machine: Stopped -Start-> Buffering -threshold-> Playing -underrun->
// Buffering. Stop from any state resets the ring and returns to Stopped.
//
// SetBufferSize must be called before any Write. The ring is allocated at
// twice the nominal buffer size so producer bursts have headroom beyond the
// start-of-emission threshold.
type Buffered struct {
	base

	ring      atomic.Pointer[RingBuffer]
	threshold int // samples that flip Buffering -> Playing
	strict    atomic.Bool
}

// NewBuffered creates a buffered input for the given stream geometry.
func NewBuffered(sampleRate, channels int) (*Buffered, error) {
	b, err := newBase(sampleRate, channels)
	if err != nil {
		return nil, err
	}
	return &Buffered{base: b}, nil
}

// SetStrictOverflow selects the overflow policy: strict writes fail with
// ErrOverflow, lossy writes (the default) drop the excess and publish an
// Overflow event instead.
func (b *Buffered) SetStrictOverflow(strict bool) {
	b.strict.Store(strict)
}

// SetBufferSize resets the buffer and reallocates the ring to hold
// frames*channels*2 samples. frames*channels is the fill threshold at which
// a buffering input begins playing.
func (b *Buffered) SetBufferSize(frames int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: %d frames", ErrInvalidBufferSize, frames)
	}
	b.threshold = frames * b.channels
	b.ring.Store(NewRingBuffer(b.threshold * 2))
	return nil
}

// Start begins buffering. No-op when already buffering or playing.
func (b *Buffered) Start() error {
	if b.State() == audio.Stopped {
		b.setState(audio.Buffering)
	}
	return nil
}

// Stop resets the ring buffer and returns to Stopped.
func (b *Buffered) Stop() error {
	if ring := b.ring.Load(); ring != nil {
		ring.Reset()
	}
	if b.State() != audio.Stopped {
		b.setState(audio.Stopped)
	}
	return nil
}

// Write pushes samples from the producer side. It never blocks: samples that
// do not fit are dropped (lossy mode, with an async Overflow event) or
// reported via ErrOverflow (strict mode). Samples that fit are retained
// either way. Crossing the fill threshold while buffering transitions the
// input to Playing on this very call.
func (b *Buffered) Write(samples []float32) (int, error) {
	ring := b.ring.Load()
	if ring == nil {
		return 0, ErrBufferSizeUnset
	}

	n := ring.Write(samples)
	if b.State() == audio.Buffering && ring.Available() >= b.threshold {
		b.setState(audio.Playing)
	}

	var err error
	if n < len(samples) {
		dropped := len(samples) - n
		if b.strict.Load() {
			err = fmt.Errorf("%w: %d of %d samples dropped", ErrOverflow, dropped, len(samples))
		} else {
			b.events.Publish(notify.Event{Kind: notify.Overflow, Dropped: dropped})
		}
	}
	if n > 0 {
		b.events.Publish(notify.Event{Kind: notify.DataAvailable, Samples: ring.Available()})
	}
	return n, err
}

// GetFrames pulls up to frames*channels samples for the consumer side and
// applies the current gain. It never blocks waiting for data: an empty ring
// while playing degrades to Buffering and leaves out untouched.
func (b *Buffered) GetFrames(out []float32, frames int) int {
	if b.State() != audio.Playing {
		return 0
	}
	ring := b.ring.Load()
	if ring == nil {
		return 0
	}

	want := frames * b.channels
	if want > len(out) {
		want = len(out)
	}
	n := ring.Read(out[:want])
	if n == 0 {
		// Underrun. Expected steady-state event, not a failure.
		b.setState(audio.Buffering)
		return 0
	}

	b.gain.apply(out[:n], b.channels)
	return n
}

// BufferedSamples returns the number of unread samples in the ring.
func (b *Buffered) BufferedSamples() int {
	ring := b.ring.Load()
	if ring == nil {
		return 0
	}
	return ring.Available()
}
