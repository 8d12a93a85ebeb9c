//go:build portaudio

// ABOUTME: PortAudio playback sink
// ABOUTME: Cross-platform callback output using PortAudio
package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// PortAudio is a playback sink backed by PortAudio. The stream callback runs
// in float32, the canonical sample type, so no PCM encoding is needed.
type PortAudio struct {
	stream *portaudio.Stream
	format audio.Format
}

// NewPortAudio creates an unopened PortAudio sink.
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio and the default output stream.
func (p *PortAudio) Open(format audio.Format, render RenderFunc) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, format.Channels, float64(format.SampleRate), 0,
		func(out []float32) {
			render(out, len(out)/format.Channels)
		})
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	p.stream = stream
	p.format = format
	return nil
}

// Start begins invoking the stream callback.
func (p *PortAudio) Start() error {
	if p.stream == nil {
		return ErrNotOpen
	}
	return p.stream.Start()
}

// Stop pauses the stream callback.
func (p *PortAudio) Stop() error {
	if p.stream == nil {
		return ErrNotOpen
	}
	return p.stream.Stop()
}

// Close releases the stream and terminates PortAudio.
func (p *PortAudio) Close() error {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			return err
		}
		p.stream = nil
	}
	return portaudio.Terminate()
}
