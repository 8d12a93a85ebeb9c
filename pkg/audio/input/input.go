// ABOUTME: Audio input contract and shared property base
// ABOUTME: Common pull interface implemented by generators, buffers and capture
package input

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/notify"
)

// Input is the common contract for any sample producer feeding a mixer.
//
// GetFrames must be safe to call in any playback state; implementations that
// have no data leave the caller's buffer untouched (the mixer pre-clears it
// to silence). Gain is applied to every sample before GetFrames returns.
type Input interface {
	// GetFrames fills up to frames*Channels() interleaved samples into out
	// and returns the number of samples written.
	GetFrames(out []float32, frames int) int

	Start() error
	Stop() error
	State() audio.PlaybackState

	SampleRate() int
	Channels() int

	// Volume is the requested level in dBFS; 0 is unity gain.
	Volume() int
	SetVolume(volumeDB int)
	// TransitionVolume ramps linearly to volumeDB over the given duration.
	TransitionVolume(volumeDB int, duration time.Duration)

	Events() *notify.Dispatcher
	Close() error
}

// base carries the properties every input shares: stream geometry, playback
// state, gain and the event dispatcher. Concrete inputs embed it.
type base struct {
	sampleRate int
	channels   int
	state      atomic.Int32
	gain       gainRamp
	events     *notify.Dispatcher
}

func newBase(sampleRate, channels int) (base, error) {
	if sampleRate <= 0 {
		return base{}, fmt.Errorf("%w: %d", audio.ErrInvalidSampleRate, sampleRate)
	}
	if channels <= 0 {
		return base{}, fmt.Errorf("%w: %d", audio.ErrInvalidChannels, channels)
	}
	return base{
		sampleRate: sampleRate,
		channels:   channels,
		gain:       newGainRamp(),
		events:     notify.NewDispatcher(),
	}, nil
}

func (b *base) SampleRate() int { return b.sampleRate }
func (b *base) Channels() int   { return b.channels }

func (b *base) State() audio.PlaybackState {
	return audio.PlaybackState(b.state.Load())
}

// setState transitions the playback state and publishes the change.
// Returns false when already in the requested state.
func (b *base) setState(to audio.PlaybackState) bool {
	from := audio.PlaybackState(b.state.Swap(int32(to)))
	if from == to {
		return false
	}
	b.events.Publish(notify.Event{Kind: notify.StateChanged, From: from, To: to})
	return true
}

// Start transitions Stopped -> Playing. No-op when already playing.
func (b *base) Start() error {
	if b.State() != audio.Playing {
		b.setState(audio.Playing)
	}
	return nil
}

// Stop transitions back to Stopped. No-op when already stopped.
func (b *base) Stop() error {
	if b.State() != audio.Stopped {
		b.setState(audio.Stopped)
	}
	return nil
}

func (b *base) Volume() int {
	return b.gain.Volume()
}

func (b *base) SetVolume(volumeDB int) {
	b.gain.Set(volumeDB)
}

func (b *base) TransitionVolume(volumeDB int, duration time.Duration) {
	frames := int(duration.Milliseconds()) * b.sampleRate / 1000
	b.gain.Transition(volumeDB, frames)
}

func (b *base) Events() *notify.Dispatcher {
	return b.events
}

func (b *base) Close() error {
	b.events.Close()
	return nil
}
