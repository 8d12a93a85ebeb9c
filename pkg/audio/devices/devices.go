// ABOUTME: Audio device enumeration
// ABOUTME: Defines the Lister contract for platform device discovery
package devices

import (
	"fmt"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// Direction selects which side of the audio boundary to enumerate.
type Direction int

const (
	Capture Direction = iota
	Playback
)

// String returns a human-readable direction name
func (d Direction) String() string {
	switch d {
	case Capture:
		return "capture"
	case Playback:
		return "playback"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Lister enumerates the audio devices available on the host. Device IDs are
// positions within a single listing; they are stable only until devices are
// plugged or unplugged.
type Lister interface {
	// List returns the devices available in the given direction.
	List(direction Direction) ([]audio.Device, error)

	// Close releases the platform enumeration context.
	Close() error
}
