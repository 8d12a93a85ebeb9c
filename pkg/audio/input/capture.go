// ABOUTME: Live capture input backed by malgo/miniaudio
// ABOUTME: Hardware callback decodes native PCM and pushes into a Buffered input
package input

import (
	"fmt"
	"log"

	"github.com/gen2brain/malgo"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
	"github.com/Mixdown-Audio/mixdown-go/pkg/audio/decode"
)

// Capture wraps a malgo capture device. The device's data callback runs on a
// real-time OS thread: it decodes the native PCM bytes into canonical float32
// and pushes them through the embedded Buffered input, which the mixer then
// drains via GetFrames.
type Capture struct {
	*Buffered

	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	decoder *decode.PCMDecoder
	scratch []float32
}

// NewCapture opens the default capture device in the given wire format.
// The returned input still needs SetBufferSize and Start before data flows.
func NewCapture(format audio.Format) (*Capture, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	malgoFmt, err := malgoFormat(format)
	if err != nil {
		return nil, err
	}

	buffered, err := NewBuffered(format.SampleRate, format.Channels)
	if err != nil {
		return nil, err
	}
	decoder, err := decode.NewPCM(format)
	if err != nil {
		return nil, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}

	c := &Capture{
		Buffered: buffered,
		ctx:      ctx,
		decoder:  decoder,
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgoFmt
	deviceConfig.Capture.Channels = uint32(format.Channels)
	deviceConfig.SampleRate = uint32(format.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	onRecv := func(pOutput, pInput []byte, frameCount uint32) {
		c.onFrames(pInput, frameCount)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onRecv})
	if err != nil {
		uninitContext(ctx)
		return nil, fmt.Errorf("failed to initialize capture device: %w", err)
	}
	c.device = device

	return c, nil
}

// onFrames runs on the device thread. Decode into the reused scratch buffer
// and hand off to the ring; overflow handling is the Buffered input's job.
func (c *Capture) onFrames(data []byte, frameCount uint32) {
	samples := int(frameCount) * c.channels
	if cap(c.scratch) < samples {
		c.scratch = make([]float32, samples)
	}
	c.scratch = c.scratch[:samples]

	n := c.decoder.DecodeTo(c.scratch, data)
	if _, err := c.Write(c.scratch[:n]); err != nil && err != ErrBufferSizeUnset {
		log.Printf("capture write failed: %v", err)
	}
}

// Start starts the hardware device and begins buffering.
func (c *Capture) Start() error {
	if c.State() != audio.Stopped {
		return nil
	}
	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	return c.Buffered.Start()
}

// Stop stops the hardware device and resets the buffer.
func (c *Capture) Stop() error {
	if c.State() == audio.Stopped {
		return nil
	}
	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop capture device: %w", err)
	}
	return c.Buffered.Stop()
}

// Close releases the device and context.
func (c *Capture) Close() error {
	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	if c.ctx != nil {
		uninitContext(c.ctx)
		c.ctx = nil
	}
	return c.Buffered.Close()
}

func uninitContext(ctx *malgo.AllocatedContext) {
	if err := ctx.Uninit(); err != nil {
		log.Printf("Warning: malgo context uninit error: %v", err)
	}
	ctx.Free()
}

// malgoFormat maps a wire format onto the corresponding malgo sample format.
func malgoFormat(format audio.Format) (malgo.FormatType, error) {
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
