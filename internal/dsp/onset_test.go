package dsp

import (
	"math"
	"testing"
)

// burstSignal returns a silent buffer of n samples with sine bursts of
// burstLen samples starting at each of the given offsets.
func burstSignal(n, sampleRate int, freq float64, burstLen int, offsets []int) []float64 {
	out := make([]float64, n)
	for _, off := range offsets {
		for i := 0; i < burstLen && off+i < n; i++ {
			out[off+i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		}
	}
	return out
}

func TestOnsetStrengthShortInput(t *testing.T) {
	if env := OnsetStrength(make([]float64, 100), DefaultHopLength); env != nil {
		t.Fatalf("expected no envelope for input shorter than a window, got %d frames", len(env))
	}
}

func TestDetectOnsetsSilence(t *testing.T) {
	if onsets := DetectOnsets(make([]float64, 32000), DefaultHopLength); len(onsets) != 0 {
		t.Fatalf("silence produced %d onsets", len(onsets))
	}
}

func TestDetectOnsetsBurstTrain(t *testing.T) {
	const (
		sr  = 8000
		hop = DefaultHopLength
	)
	offsets := []int{8000, 16000, 24000}
	signal := burstSignal(32000, sr, 100, 4000, offsets)

	onsets := DetectOnsets(signal, hop)

	if len(onsets) != len(offsets) {
		t.Fatalf("expected %d onsets, got %d (%v)", len(offsets), len(onsets), onsets)
	}

	// Peak picking has frame-level resolution; allow a few frames of slack.
	const slack = 6
	for i, off := range offsets {
		want := off / hop
		if diff := onsets[i] - want; diff < -slack || diff > slack {
			t.Errorf("onset %d: got frame %d, want %d±%d", i, onsets[i], want, slack)
		}
	}
}

func TestDetectOnsetsIgnoresNoteRelease(t *testing.T) {
	// The abrupt end of a note splatters broadband energy just like its
	// start; only the start may be reported.
	const (
		sr  = 8000
		hop = DefaultHopLength
	)
	signal := burstSignal(24000, sr, 100, 4000, []int{8000})

	onsets := DetectOnsets(signal, hop)

	if len(onsets) != 1 {
		t.Fatalf("expected only the attack, got %d onsets (%v)", len(onsets), onsets)
	}

	const slack = 6
	attack := 8000 / hop
	release := 12000 / hop
	if diff := onsets[0] - attack; diff < -slack || diff > slack {
		t.Errorf("onset at frame %d, want %d±%d", onsets[0], attack, slack)
	}
	if diff := onsets[0] - release; diff > -slack && diff < slack {
		t.Errorf("onset at frame %d coincides with the release at %d", onsets[0], release)
	}
}

func TestPickOnsetsMinimumGap(t *testing.T) {
	// Two above-threshold local maxima 2 frames apart collapse to one pick.
	env := make([]float64, 40)
	env[10] = 10
	env[12] = 9

	onsets := PickOnsets(env)

	if len(onsets) != 1 || onsets[0] != 10 {
		t.Fatalf("expected a single onset at frame 10, got %v", onsets)
	}
}
