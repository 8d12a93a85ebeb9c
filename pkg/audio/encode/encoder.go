// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for sample-to-wire encoders
package encode

// Encoder encodes canonical float32 samples to wire-format bytes
type Encoder interface {
	// Encode converts samples in [-1, 1] to encoded audio data
	Encode(samples []float32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
