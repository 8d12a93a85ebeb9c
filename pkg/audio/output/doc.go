// ABOUTME: Audio output package
// ABOUTME: Mixing engine plus device and file sinks
// Package output mixes inputs and delivers the result to a sink.
//
// Mixer is the engine: it sums the currently-playing inputs element-wise
// into a reused buffer each time the sink pulls frames. Sinks adapt that
// pull to a delivery mechanism: Malgo and Oto drive real audio devices,
// PortAudio is available behind a build tag, and WAVFile renders offline
// to disk.
//
// Pass a nil sink to NewMixer to run the engine free of any device and
// pull frames directly with Render.
package output
