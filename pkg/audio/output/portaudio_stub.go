//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"fmt"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// PortAudio playback sink (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio sink
func NewPortAudio() *PortAudio {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, render RenderFunc) error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Start begins playback
func (p *PortAudio) Start() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Stop pauses playback
func (p *PortAudio) Stop() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}

// Close releases resources
func (p *PortAudio) Close() error {
	return fmt.Errorf("PortAudio support not enabled (build with -tags portaudio)")
}
