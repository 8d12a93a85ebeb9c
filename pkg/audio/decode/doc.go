// ABOUTME: Audio decoding package
// ABOUTME: Converts PCM wire formats to canonical float32 samples
// Package decode converts PCM byte layouts into canonical float32 samples.
//
// Each decoder is the exact numeric inverse of the matching encoder in the
// encode package. Arbitrary byte input is tolerated: trailing bytes that do
// not fill a whole sample are simply not consumed.
package decode
