// ABOUTME: Oto-based playback sink
// ABOUTME: Persistent oto player pulling mixed audio through a reader
package output

import (
	"fmt"
	"log"

	"github.com/ebitengine/oto/v3"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/encode"
)

// Oto is a playback sink backed by the oto library. A persistent player
// reads continuously from a pull reader that renders the mix on demand, so
// oto's own playback goroutine drives the pipeline clock.
//
// oto allows only one context per process and no reinitialization; a second
// Open with a different format fails.
type Oto struct {
	otoCtx  *oto.Context
	player  *oto.Player
	format  audio.Format
	ready   bool
	playing bool
}

// NewOto creates an unopened oto sink.
func NewOto() *Oto {
	return &Oto{}
}

// otoFormat maps a wire format onto the formats oto can play directly.
func otoFormat(format audio.Format) (oto.Format, error) {
	switch {
	case format.SampleType == audio.SignedInt && format.BitDepth == 16:
		return oto.FormatSignedInt16LE, nil
	case format.SampleType == audio.UnsignedInt && format.BitDepth == 8:
		return oto.FormatUnsignedInt8, nil
	case format.SampleType == audio.Float && format.BitDepth == 32:
		return oto.FormatFloat32LE, nil
	}
	return 0, fmt.Errorf("%w: %d-bit %s not playable via oto",
		audio.ErrInvalidBitDepth, format.BitDepth, format.SampleType)
}

// Open initializes the oto context for the given wire format.
func (o *Oto) Open(format audio.Format, render RenderFunc) error {
	if o.ready {
		return fmt.Errorf("sink already open")
	}
	otoFmt, err := otoFormat(format)
	if err != nil {
		return err
	}
	encoder, err := encode.NewPCM(format)
	if err != nil {
		return err
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       otoFmt,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-readyChan

	o.otoCtx = ctx
	o.format = format
	o.player = ctx.NewPlayer(&pullReader{
		format:  format,
		render:  render,
		encoder: encoder,
	})
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d-bit %s (oto)",
		format.SampleRate, format.Channels, format.BitDepth, format.SampleType)
	return nil
}

// Start begins playback. The player keeps pulling until paused.
func (o *Oto) Start() error {
	if !o.ready {
		return ErrNotOpen
	}
	if !o.playing {
		o.player.Play()
		o.playing = true
	}
	return nil
}

// Stop pauses playback without releasing the context.
func (o *Oto) Stop() error {
	if !o.ready {
		return ErrNotOpen
	}
	if o.playing {
		o.player.Pause()
		o.playing = false
	}
	return nil
}

// Close releases the player and suspends the context.
func (o *Oto) Close() error {
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			log.Printf("Warning: oto context suspend error: %v", err)
		}
	}
	o.ready = false
	o.playing = false
	return nil
}

// pullReader adapts the pull-based render callback to oto's io.Reader
// contract. Each Read renders whole frames and encodes them in place.
type pullReader struct {
	format  audio.Format
	render  RenderFunc
	encoder *encode.PCMEncoder
	scratch []float32
}

func (r *pullReader) Read(p []byte) (int, error) {
	frameBytes := r.format.FrameBytes()
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	samples := frames * r.format.Channels
	if cap(r.scratch) < samples {
		r.scratch = make([]float32, samples)
	}
	r.scratch = r.scratch[:samples]

	r.render(r.scratch, frames)
	if err := r.encoder.EncodeTo(p[:frames*frameBytes], r.scratch); err != nil {
		return 0, err
	}
	return frames * frameBytes, nil
}
