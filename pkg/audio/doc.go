// ABOUTME: Audio fundamentals package providing core types
// ABOUTME: Defines Format, PlaybackState and Device types
// Package audio provides the fundamental types shared by the mixdown pipeline.
//
// The canonical in-memory sample representation everywhere in this module is
// interleaved float32 in [-1, 1]. PCM byte layouts only appear at the edges,
// handled by the encode and decode packages.
//
// Example:
//
//	format, err := audio.NewFormat(48000, 2, 16, audio.SignedInt)
//	if err != nil {
//	    log.Fatal(err)
//	}
package audio
