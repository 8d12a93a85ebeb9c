// ABOUTME: Audio output mixing engine
// ABOUTME: Sums all playing inputs into one interleaved stream per render
package output

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/input"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/notify"
)

// Mixer owns a set of inputs and produces one mixed interleaved buffer per
// render request. Mixing is a plain element-wise sum with no limiting; the
// PCM encoder downstream clamps.
//
// Unlike inputs, an output is binary: Stopped or Playing, no Buffering.
type Mixer struct {
	format audio.Format
	sink   Sink
	events *notify.Dispatcher
	state  atomic.Int32

	mu      sync.Mutex
	inputs  []input.Input
	mix     []float32
	scratch []float32
}

// NewMixer creates a mixer for the given wire format and opens the sink.
// A nil sink yields a free-running mixer pulled directly via GetInputFrames,
// which is how offline and test callers drive it.
func NewMixer(format audio.Format, sink Sink) (*Mixer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	m := &Mixer{
		format: format,
		sink:   sink,
		events: notify.NewDispatcher(),
	}
	if sink != nil {
		if err := sink.Open(format, m.Render); err != nil {
			return nil, fmt.Errorf("failed to open sink: %w", err)
		}
	}
	return m, nil
}

// AddInput attaches an input. The input must match the output's channel
// count and sample rate exactly; nothing flows until it does.
func (m *Mixer) AddInput(in input.Input) error {
	if in.Channels() != m.format.Channels || in.SampleRate() != m.format.SampleRate {
		return fmt.Errorf("%w: input %dch@%dHz, output %dch@%dHz",
			ErrFormatMismatch, in.Channels(), in.SampleRate(),
			m.format.Channels, m.format.SampleRate)
	}
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()
	return nil
}

// RemoveInput detaches a previously added input.
func (m *Mixer) RemoveInput(in input.Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, have := range m.inputs {
		if have == in {
			m.inputs = append(m.inputs[:i], m.inputs[i+1:]...)
			return nil
		}
	}
	return ErrInputNotFound
}

// InputCount returns the number of attached inputs.
func (m *Mixer) InputCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// GetInputFrames produces the next frames of mixed audio. Inputs that are
// not currently playing contribute silence and are not pulled at all. The
// returned slice is reused across calls.
func (m *Mixer) GetInputFrames(frames int) []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	samples := frames * m.format.Channels
	if cap(m.mix) < samples {
		m.mix = make([]float32, samples)
		m.scratch = make([]float32, samples)
	}
	m.mix = m.mix[:samples]
	m.scratch = m.scratch[:samples]

	for i := range m.mix {
		m.mix[i] = 0
	}

	for _, in := range m.inputs {
		if in.State() != audio.Playing {
			continue
		}
		for i := range m.scratch {
			m.scratch[i] = 0
		}
		in.GetFrames(m.scratch, frames)
		for i, s := range m.scratch {
			m.mix[i] += s
		}
	}
	return m.mix
}

// Render is the RenderFunc handed to the sink: it fills out with the next
// mixed chunk.
func (m *Mixer) Render(out []float32, frames int) {
	mix := m.GetInputFrames(frames)
	copy(out, mix)
}

// Start begins playback through the sink.
func (m *Mixer) Start() error {
	if m.State() == audio.Playing {
		return nil
	}
	if m.sink != nil {
		if err := m.sink.Start(); err != nil {
			return fmt.Errorf("failed to start sink: %w", err)
		}
	}
	m.setState(audio.Playing)
	return nil
}

// Stop halts playback through the sink.
func (m *Mixer) Stop() error {
	if m.State() == audio.Stopped {
		return nil
	}
	if m.sink != nil {
		if err := m.sink.Stop(); err != nil {
			return fmt.Errorf("failed to stop sink: %w", err)
		}
	}
	m.setState(audio.Stopped)
	return nil
}

// State returns the current playback state.
func (m *Mixer) State() audio.PlaybackState {
	return audio.PlaybackState(m.state.Load())
}

func (m *Mixer) setState(to audio.PlaybackState) {
	from := audio.PlaybackState(m.state.Swap(int32(to)))
	if from != to {
		m.events.Publish(notify.Event{Kind: notify.StateChanged, From: from, To: to})
	}
}

// Format returns the output wire format.
func (m *Mixer) Format() audio.Format {
	return m.format
}

// Events returns the mixer's event dispatcher.
func (m *Mixer) Events() *notify.Dispatcher {
	return m.events
}

// Close stops playback and releases the sink.
func (m *Mixer) Close() error {
	if err := m.Stop(); err != nil {
		return err
	}
	m.events.Close()
	if m.sink != nil {
		return m.sink.Close()
	}
	return nil
}
