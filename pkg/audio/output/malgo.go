// ABOUTME: Malgo-based playback sink
// ABOUTME: Uses miniaudio via malgo for callback-driven device output
package output

import (
	"fmt"
	"log"

	"github.com/gen2brain/malgo"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/encode"
)

// Malgo is a playback sink backed by malgo/miniaudio. The device's data
// callback pulls mixed float32 audio through the render function and encodes
// it into the device's native PCM layout in place.
type Malgo struct {
	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	encoder  *encode.PCMEncoder
	format   audio.Format
	render   RenderFunc
	scratch  []float32
	ready    bool
}

// NewMalgo creates an unopened malgo sink.
func NewMalgo() *Malgo {
	return &Malgo{}
}

// Open initializes the playback device for the given wire format.
func (m *Malgo) Open(format audio.Format, render RenderFunc) error {
	if m.ready {
		return fmt.Errorf("sink already open")
	}
	malgoFmt, err := deviceFormat(format)
	if err != nil {
		return err
	}
	encoder, err := encode.NewPCM(format)
	if err != nil {
		return err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgoFmt
	deviceConfig.Playback.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onSamples := func(pOutput, pInput []byte, frameCount uint32) {
		m.dataCallback(pOutput, frameCount)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onSamples})
	if err != nil {
		if uerr := ctx.Uninit(); uerr != nil {
			log.Printf("Warning: malgo context uninit error: %v", uerr)
		}
		ctx.Free()
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	m.malgoCtx = ctx
	m.device = device
	m.encoder = encoder
	m.format = format
	m.render = render
	m.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels, %d-bit %s (malgo)",
		format.SampleRate, format.Channels, format.BitDepth, format.SampleType)
	return nil
}

// dataCallback runs on the device thread: pull the mix, encode into the
// device buffer. No allocation after the first call at a given chunk size.
func (m *Malgo) dataCallback(pOutput []byte, frameCount uint32) {
	frames := int(frameCount)
	samples := frames * m.format.Channels
	if cap(m.scratch) < samples {
		m.scratch = make([]float32, samples)
	}
	m.scratch = m.scratch[:samples]

	m.render(m.scratch, frames)
	if err := m.encoder.EncodeTo(pOutput, m.scratch); err != nil {
		log.Printf("Error encoding output chunk: %v", err)
	}
}

// Start begins playback.
func (m *Malgo) Start() error {
	if !m.ready {
		return ErrNotOpen
	}
	if err := m.device.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}
	return nil
}

// Stop pauses playback without releasing the device.
func (m *Malgo) Stop() error {
	if !m.ready {
		return ErrNotOpen
	}
	if err := m.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop device: %w", err)
	}
	return nil
}

// Close releases the device and context.
func (m *Malgo) Close() error {
	if m.device != nil {
		m.device.Uninit()
		m.device = nil
	}
	if m.malgoCtx != nil {
		if err := m.malgoCtx.Uninit(); err != nil {
			log.Printf("Warning: malgo context uninit error: %v", err)
		}
		m.malgoCtx.Free()
		m.malgoCtx = nil
	}
	m.ready = false
	return nil
}

// deviceFormat maps a wire format onto the corresponding malgo sample format.
func deviceFormat(format audio.Format) (malgo.FormatType, error) {
	switch {
	case format.SampleType == audio.Float && format.BitDepth == 32:
		return malgo.FormatF32, nil
	case format.SampleType == audio.UnsignedInt && format.BitDepth == 8:
		return malgo.FormatU8, nil
	case format.SampleType == audio.SignedInt && format.BitDepth == 16:
		return malgo.FormatS16, nil
	case format.SampleType == audio.SignedInt && format.BitDepth == 24:
		return malgo.FormatS24, nil
	case format.SampleType == audio.SignedInt && format.BitDepth == 32:
		return malgo.FormatS32, nil
	}
	return malgo.FormatUnknown, fmt.Errorf("%w: %d-bit %s has no device format",
		audio.ErrInvalidBitDepth, format.BitDepth, format.SampleType)
}
