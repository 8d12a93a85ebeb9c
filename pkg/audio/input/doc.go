// ABOUTME: Audio input package
// ABOUTME: Sample producers: generators, ring-buffered inputs and live capture
// Package input provides sample producers for the mixdown pipeline.
//
// Every producer implements the Input contract: a non-blocking pull method,
// Start/Stop state transitions, dBFS volume with optional timed ramping, and
// an event dispatcher for state changes.
//
// Buffered is the concurrency-critical piece: a mutex-protected ring buffer
// that lets a hardware capture callback and the mixer's render callback
// rendezvous without either side ever blocking.
package input
