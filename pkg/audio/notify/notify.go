// ABOUTME: Asynchronous event dispatch for pipeline observers
// ABOUTME: Non-blocking publish so real-time audio threads never stall
package notify

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// Kind identifies an event type
type Kind int

const (
	// StateChanged reports a playback state transition.
	StateChanged Kind = iota
	// DataAvailable reports new samples readable from a buffered input.
	DataAvailable
	// Overflow reports samples discarded by a lossy-mode buffered input.
	Overflow
)

// Event carries one pipeline notification
type Event struct {
	Kind    Kind
	From    audio.PlaybackState // StateChanged
	To      audio.PlaybackState // StateChanged
	Samples int                 // DataAvailable: samples now readable
	Dropped int                 // Overflow: samples discarded
}

// Dispatcher fans events out to registered listeners on its own goroutine.
//
// Publish never blocks: when the queue is full the event is dropped and
// counted. Producers calling from hardware callbacks rely on this.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[uuid.UUID]func(Event)

	events   chan Event
	stopChan chan struct{}
	stopOnce sync.Once
	dropped  atomic.Uint64
}

const queueDepth = 64

// NewDispatcher creates a dispatcher and starts its delivery goroutine.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		listeners: make(map[uuid.UUID]func(Event)),
		events:    make(chan Event, queueDepth),
		stopChan:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Subscribe registers a listener and returns its token.
// Listeners run on the dispatch goroutine, not the publishing thread.
func (d *Dispatcher) Subscribe(fn func(Event)) uuid.UUID {
	id := uuid.New()
	d.mu.Lock()
	d.listeners[id] = fn
	d.mu.Unlock()
	return id
}

// Unsubscribe removes a listener by token. Unknown tokens are ignored.
func (d *Dispatcher) Unsubscribe(id uuid.UUID) {
	d.mu.Lock()
	delete(d.listeners, id)
	d.mu.Unlock()
}

// Publish enqueues an event without blocking. Events published while the
// queue is full are dropped and counted.
func (d *Dispatcher) Publish(ev Event) {
	select {
	case d.events <- ev:
	default:
		d.dropped.Add(1)
	}
}

// DroppedEvents returns the number of events discarded by a full queue.
func (d *Dispatcher) DroppedEvents() uint64 {
	return d.dropped.Load()
}

// Close stops the delivery goroutine. Safe to call more than once.
func (d *Dispatcher) Close() {
	d.stopOnce.Do(func() {
		close(d.stopChan)
	})
}

func (d *Dispatcher) run() {
	for {
		select {
		case <-d.stopChan:
			return
		case ev := <-d.events:
			d.mu.RLock()
			fns := make([]func(Event), 0, len(d.listeners))
			for _, fn := range d.listeners {
				fns = append(fns, fn)
			}
			d.mu.RUnlock()

			for _, fn := range fns {
				fn(ev)
			}
		}
	}
}
