// ABOUTME: Playback state machine definitions
// ABOUTME: Shared Stopped/Buffering/Playing enum for inputs and outputs
package audio

import "fmt"

// PlaybackState governs whether a pipeline node emits real data or silence.
//
// Inputs move Stopped -> Buffering -> Playing and fall back to Buffering on
// underrun. Outputs are binary: Stopped or Playing.
type PlaybackState int32

const (
	Stopped PlaybackState = iota
	Buffering
	Playing
)

// String returns a human-readable state name
func (s PlaybackState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Buffering:
		return "buffering"
	case Playing:
		return "playing"
	default:
		return fmt.Sprintf("PlaybackState(%d)", int32(s))
	}
}
