// ABOUTME: Unit tests for dBFS gain and volume ramping
// ABOUTME: Tests conversion, ramp advance and exact target snapping
package input

import (
	"math"
	"testing"
)

func TestDbToGain(t *testing.T) {
	tests := []struct {
		name     string
		volumeDB int
		want     float64
	}{
		{"unity", 0, 1.0},
		{"-20 dBFS", -20, 0.1},
		{"-6 dBFS", -6, 0.5011872336272722},
		{"+6 dBFS", 6, 1.9952623149688795},
		{"-40 dBFS", -40, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dbToGain(tt.volumeDB)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("dbToGain(%d) = %v, want %v", tt.volumeDB, got, tt.want)
			}
		})
	}
}

func TestGainRampSet(t *testing.T) {
	g := newGainRamp()
	g.Set(-20)

	if g.Volume() != -20 {
		t.Errorf("Volume() = %d, want -20", g.Volume())
	}

	samples := []float32{1, 1}
	g.apply(samples, 2)
	if math.Abs(float64(samples[0])-0.1) > 1e-6 {
		t.Errorf("applied gain = %v, want 0.1", samples[0])
	}
}

func TestGainRampSetCancelsTransition(t *testing.T) {
	g := newGainRamp()
	g.Transition(-40, 1000)
	g.Set(0)

	samples := []float32{1}
	g.apply(samples, 1)
	if samples[0] != 1 {
		t.Errorf("applied gain = %v, want unity after Set", samples[0])
	}
}

func TestGainRampTransitionAdvancesPerFrame(t *testing.T) {
	g := newGainRamp()
	g.Transition(-20, 10) // 1.0 -> 0.1 over 10 frames

	// First frame still uses the pre-ramp gain; each consumed frame advances
	// one linear step.
	samples := make([]float32, 10)
	for i := range samples {
		samples[i] = 1
	}
	g.apply(samples, 1)

	step := (0.1 - 1.0) / 10
	for i, got := range samples {
		want := 1.0 + step*float64(i)
		if math.Abs(float64(got)-want) > 1e-6 {
			t.Errorf("frame %d: gain = %v, want %v", i, got, want)
		}
	}
}

func TestGainRampSnapsToExactTarget(t *testing.T) {
	g := newGainRamp()
	g.Transition(-20, 7) // step accumulates rounding error over 7 frames

	samples := make([]float32, 7)
	for i := range samples {
		samples[i] = 1
	}
	g.apply(samples, 1)

	// Ramp exhausted: gain must now be exactly the target, not the
	// accumulated sum.
	probe := []float32{1}
	g.apply(probe, 1)
	if probe[0] != float32(dbToGain(-20)) {
		t.Errorf("post-ramp gain = %v, want exactly %v", probe[0], float32(dbToGain(-20)))
	}
}

func TestGainRampZeroDurationIsImmediate(t *testing.T) {
	g := newGainRamp()
	g.Transition(-20, 0)

	samples := []float32{1}
	g.apply(samples, 1)
	if math.Abs(float64(samples[0])-0.1) > 1e-6 {
		t.Errorf("applied gain = %v, want 0.1 immediately", samples[0])
	}
}

func TestGainRampAppliesPerFrameAcrossChannels(t *testing.T) {
	// Both samples of a stereo frame get the same gain value.
	g := newGainRamp()
	g.Transition(-20, 2)

	samples := []float32{1, 1, 1, 1}
	g.apply(samples, 2)

	if samples[0] != samples[1] {
		t.Errorf("frame 0 channels diverge: %v vs %v", samples[0], samples[1])
	}
	if samples[2] != samples[3] {
		t.Errorf("frame 1 channels diverge: %v vs %v", samples[2], samples[3])
	}
	if samples[0] == samples[2] {
		t.Error("ramp did not advance between frames")
	}
}
