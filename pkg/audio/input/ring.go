// ABOUTME: Thread-safe circular sample buffer
// ABOUTME: Rendezvous point between hardware producer and mixer consumer threads
package input

import "sync"

// RingBuffer is a fixed-capacity circular buffer of float32 samples.
//
// Write and Read may be called concurrently from two different threads; the
// position and count fields are only ever touched under mu. Positions wrap
// modulo the capacity and 0 <= Available() <= Capacity() always holds.
type RingBuffer struct {
	buf      []float32
	readPos  int
	writePos int
	count    int
	mu       sync.Mutex
}

// NewRingBuffer creates a ring buffer holding capacity samples.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		buf: make([]float32, capacity),
	}
}

// Write copies as many samples as fit and returns the number accepted.
// The copy wraps in at most two contiguous spans; it never blocks.
func (r *RingBuffer) Write(samples []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(samples)
	if free := len(r.buf) - r.count; n > free {
		n = free
	}
	if n == 0 {
		return 0
	}

	first := len(r.buf) - r.writePos
	if first > n {
		first = n
	}
	copy(r.buf[r.writePos:], samples[:first])
	copy(r.buf, samples[first:n])

	r.writePos = (r.writePos + n) % len(r.buf)
	r.count += n
	return n
}

// Read copies up to len(out) samples into out and returns the number copied.
// Samples beyond the returned count are left untouched; it never blocks.
func (r *RingBuffer) Read(out []float32) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(out)
	if n > r.count {
		n = r.count
	}
	if n == 0 {
		return 0
	}

	first := len(r.buf) - r.readPos
	if first > n {
		first = n
	}
	copy(out[:first], r.buf[r.readPos:r.readPos+first])
	copy(out[first:n], r.buf[:n-first])

	r.readPos = (r.readPos + n) % len(r.buf)
	r.count -= n
	return n
}

// Available returns the number of unread samples.
func (r *RingBuffer) Available() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Free returns the remaining write headroom.
func (r *RingBuffer) Free() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - r.count
}

// Capacity returns the total sample capacity.
func (r *RingBuffer) Capacity() int {
	return len(r.buf)
}

// Reset discards all buffered samples and rewinds both positions.
func (r *RingBuffer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readPos = 0
	r.writePos = 0
	r.count = 0
}
