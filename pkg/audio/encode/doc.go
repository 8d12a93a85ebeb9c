// ABOUTME: Audio encoding package
// ABOUTME: Converts canonical float32 samples to PCM wire formats
// Package encode converts canonical float32 samples into PCM byte layouts.
//
// Supported targets: 8/16/24/32-bit signed and unsigned integer PCM, and
// 32/64-bit IEEE float. All multi-byte layouts are little-endian.
//
// Example:
//
//	enc, err := encode.NewPCM(format)
//	data, err := enc.Encode(samples)
package encode
