// ABOUTME: Hardware sink interface definition
// ABOUTME: Callback-pull contract between the mixer and playback backends
package output

import "github.com/Mixdown-Audio/mixdown-go/pkg/audio"

// RenderFunc is invoked by a sink's playback callback to pull the next mixed
// chunk. It fills frames*channels interleaved float32 samples into out and
// must never block.
type RenderFunc func(out []float32, frames int)

// Sink represents a playback destination driving the pipeline clock. The
// backend invokes the render callback from its own real-time thread; the
// core never creates audio threads itself.
type Sink interface {
	// Open initializes the sink for the given wire format and registers the
	// render callback.
	Open(format audio.Format, render RenderFunc) error

	// Start begins invoking the render callback.
	Start() error

	// Stop pauses rendering without releasing the device.
	Stop() error

	// Close releases sink resources.
	Close() error
}
