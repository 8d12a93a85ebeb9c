// ABOUTME: Device lister backed by malgo/miniaudio
// ABOUTME: Enumerates capture and playback devices via the platform backend
package devices

import (
	"fmt"
	"log"

	"github.com/gen2brain/malgo"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// MalgoLister enumerates devices through a malgo context.
type MalgoLister struct {
	ctx *malgo.AllocatedContext
}

// NewMalgoLister initializes the platform audio backend for enumeration.
func NewMalgoLister() (*MalgoLister, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	return &MalgoLister{ctx: ctx}, nil
}

// List returns the devices available in the given direction.
func (l *MalgoLister) List(direction Direction) ([]audio.Device, error) {
	kind := malgo.Capture
	if direction == Playback {
		kind = malgo.Playback
	}

	infos, err := l.ctx.Devices(kind)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s devices: %w", direction, err)
	}

	devices := make([]audio.Device, 0, len(infos))
	for i, info := range infos {
		devices = append(devices, audio.Device{
			ID:        uint32(i),
			Name:      info.Name(),
			IsDefault: info.IsDefault != 0,
		})
	}
	return devices, nil
}

// Close releases the enumeration context.
func (l *MalgoLister) Close() error {
	if l.ctx == nil {
		return nil
	}
	if err := l.ctx.Uninit(); err != nil {
		log.Printf("Warning: malgo context uninit error: %v", err)
	}
	l.ctx.Free()
	l.ctx = nil
	return nil
}
