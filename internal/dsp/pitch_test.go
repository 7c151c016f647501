package dsp

import (
	"math"
	"testing"
)

func TestEstimateAtOnsetPureTone(t *testing.T) {
	cases := []struct {
		name string
		freq float64
	}{
		{"open E string", 82.41},
		{"open A string", 110.0},
		{"open D string", 146.83},
		{"open G string", 196.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			samples := sine(32768, 44100, tc.freq, 0.8)
			est := EstimateAtOnset(samples, 44100, 0)

			if est.Mag <= 0 {
				t.Fatalf("no magnitude for a clean tone")
			}
			if diff := math.Abs(est.Freq - tc.freq); diff > 1.5 {
				t.Errorf("estimated %.2f Hz for a %.2f Hz tone (off by %.2f)", est.Freq, tc.freq, diff)
			}
		})
	}
}

func TestEstimateAtOnsetSilence(t *testing.T) {
	est := EstimateAtOnset(make([]float64, 16384), 44100, 0)
	if est.Freq != 0 {
		t.Fatalf("silence produced frequency %g", est.Freq)
	}
}

func TestEstimateAtOnsetDegenerateWindows(t *testing.T) {
	samples := sine(16384, 44100, 110, 0.8)

	if est := EstimateAtOnset(samples, 44100, len(samples)+10); est.Freq != 0 {
		t.Errorf("start past the end produced frequency %g", est.Freq)
	}
	if est := EstimateAtOnset(samples, 44100, len(samples)-100); est.Freq != 0 {
		t.Errorf("window shorter than the minimum produced frequency %g", est.Freq)
	}
	if est := EstimateAtOnset(samples, 44100, -5000); est.Freq == 0 {
		t.Errorf("negative start should clamp to the beginning and still find the tone")
	}
}
