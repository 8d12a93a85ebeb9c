// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for wire-to-sample decoders
package decode

// Decoder decodes wire-format bytes to canonical float32 samples
type Decoder interface {
	// Decode converts encoded audio data to samples in [-1, 1]
	Decode(data []byte) ([]float32, error)

	// Close releases decoder resources
	Close() error
}
