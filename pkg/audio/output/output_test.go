// ABOUTME: Compile-time contract checks for the output package
// ABOUTME: Every sink implementation must satisfy the Sink interface
package output

// All sinks satisfy Sink, including the PortAudio stub when the tag is off.
var (
	_ Sink = (*Malgo)(nil)
	_ Sink = (*Oto)(nil)
	_ Sink = (*PortAudio)(nil)
	_ Sink = (*WAVFile)(nil)
	_ Sink = (*recordingSink)(nil)
)
