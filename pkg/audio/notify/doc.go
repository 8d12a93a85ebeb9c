// ABOUTME: Notify package documentation
// ABOUTME: Describes the non-blocking event dispatch model
// Package notify delivers pipeline events to subscribers asynchronously.
//
// Inputs and outputs publish state changes, data availability and overflow
// through a Dispatcher. Publish never blocks, so producers running on
// hardware callback threads can publish freely; a full queue drops the
// event and counts it instead.
package notify
