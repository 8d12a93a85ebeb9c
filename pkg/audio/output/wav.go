// ABOUTME: WAV file sink for offline rendering
// ABOUTME: Ticker-driven loop pulls the mix and appends it to a WAV file
package output

import (
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Mixdown-Audio/mixdown-go/pkg/audio"
)

// WAV chunk cadence. 20ms matches the common device callback period.
const wavChunkMs = 20

// WAVFile is a sink that renders the mix into a WAV file instead of a
// device. A ticker loop stands in for the hardware callback, pulling one
// chunk per period until stopped. Useful for offline rendering and for
// exercising a pipeline without audio hardware.
type WAVFile struct {
	path    string
	file    *os.File
	encoder *wav.Encoder
	format  audio.Format
	render  RenderFunc

	chunkFrames int
	scratch     []float32
	intBuf      *gaudio.IntBuffer

	mu       sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// NewWAVFile creates a sink that writes to path on Open.
func NewWAVFile(path string) *WAVFile {
	return &WAVFile{path: path}
}

// Open creates the file and WAV encoder. Only signed-integer wire formats
// are supported; WAV stores integer PCM for these widths.
func (w *WAVFile) Open(format audio.Format, render RenderFunc) error {
	if err := format.Validate(); err != nil {
		return err
	}
	if format.SampleType != audio.SignedInt || format.BitDepth > 32 {
		return fmt.Errorf("%w: WAV sink writes 8/16/24/32-bit signed PCM, got %d-bit %s",
			audio.ErrInvalidBitDepth, format.BitDepth, format.SampleType)
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}

	w.file = f
	w.encoder = wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, 1)
	w.format = format
	w.render = render
	w.chunkFrames = format.SampleRate * wavChunkMs / 1000
	w.scratch = make([]float32, w.chunkFrames*format.Channels)
	w.intBuf = &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: format.Channels,
			SampleRate:  format.SampleRate,
		},
		Data:           make([]int, w.chunkFrames*format.Channels),
		SourceBitDepth: format.BitDepth,
	}
	return nil
}

// Start launches the render loop.
func (w *WAVFile) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.encoder == nil {
		return ErrNotOpen
	}
	if w.stopChan != nil {
		return nil
	}
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})
	go w.loop(w.stopChan, w.done)
	return nil
}

// Stop halts the render loop and waits for the in-flight chunk.
func (w *WAVFile) Stop() error {
	w.mu.Lock()
	stop, done := w.stopChan, w.done
	w.stopChan = nil
	w.done = nil
	w.mu.Unlock()

	if stop != nil {
		close(stop)
		<-done
	}
	return nil
}

func (w *WAVFile) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(wavChunkMs * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.writeChunk()
		}
	}
}

// RenderFrames pulls and writes frames synchronously, without the ticker.
// Offline callers use this to render faster than real time. Must not be
// mixed with Start on the same sink.
func (w *WAVFile) RenderFrames(frames int) error {
	if w.encoder == nil {
		return ErrNotOpen
	}
	for frames > 0 {
		n := w.chunkFrames
		if frames < n {
			n = frames
		}
		for i := range w.scratch {
			w.scratch[i] = 0
		}
		w.render(w.scratch[:n*w.format.Channels], n)
		if err := w.writeSamples(w.scratch[:n*w.format.Channels]); err != nil {
			return err
		}
		frames -= n
	}
	return nil
}

func (w *WAVFile) writeChunk() {
	for i := range w.scratch {
		w.scratch[i] = 0
	}
	w.render(w.scratch, w.chunkFrames)

	if err := w.writeSamples(w.scratch); err != nil {
		log.Printf("Error writing WAV chunk: %v", err)
	}
}

func (w *WAVFile) writeSamples(samples []float32) error {
	// Scale the float mix into the target integer range, clamping like the
	// PCM encoder does.
	w.intBuf.Data = w.intBuf.Data[:len(samples)]
	max := float64(int64(1)<<(w.format.BitDepth-1) - 1)
	for i, s := range samples {
		v := float64(s)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		w.intBuf.Data[i] = int(math.Round(v * max))
	}
	return w.encoder.Write(w.intBuf)
}

// Close finalizes the WAV header and closes the file.
func (w *WAVFile) Close() error {
	if err := w.Stop(); err != nil {
		return err
	}
	if w.encoder != nil {
		if err := w.encoder.Close(); err != nil {
			return fmt.Errorf("failed to finalize WAV: %w", err)
		}
		w.encoder = nil
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return err
		}
		w.file = nil
	}
	return nil
}
