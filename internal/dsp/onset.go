package dsp

import "math"

// Framing parameters for onset analysis. 2048-sample windows at the default
// 512-sample hop give ~12ms time resolution at 44.1kHz, enough to separate
// plucked bass notes.
const (
	onsetWindowSize  = 2048
	DefaultHopLength = 512

	// minOnsetGap suppresses double triggers on the same pluck.
	minOnsetGap = 4 // frames
)

// OnsetStrength computes a spectral-flux onset envelope: for each hop-sized
// frame, the half-wave-rectified increase in magnitude per bin relative to the
// previous frame, summed across bins. A note release also splatters broadband
// magnitude into quiet bins as its cut-off edge crosses the window, so flux
// only counts on frames whose total spectral energy rises; a pluck adds
// energy, a release removes it.
func OnsetStrength(samples []float64, hop int) []float64 {
	if len(samples) < onsetWindowSize || hop <= 0 {
		return nil
	}

	numFrames := (len(samples)-onsetWindowSize)/hop + 1
	envelope := make([]float64, numFrames)

	var prev []float64
	prevEnergy := 0.0
	for t := 0; t < numFrames; t++ {
		frame := samples[t*hop : t*hop+onsetWindowSize]
		mags := magnitudeSpectrum(frame)

		energy := 0.0
		for _, m := range mags {
			energy += m * m
		}

		if prev != nil && energy > prevEnergy {
			flux := 0.0
			for k := range mags {
				if d := mags[k] - prev[k]; d > 0 {
					flux += d
				}
			}
			envelope[t] = flux
		}
		prev = mags
		prevEnergy = energy
	}

	return envelope
}

// PickOnsets selects local maxima of the envelope that rise above
// mean + stddev, keeping at least minOnsetGap frames between picks.
// Returns frame indices in ascending order.
func PickOnsets(envelope []float64) []int {
	if len(envelope) < 3 {
		return nil
	}

	mean := 0.0
	for _, v := range envelope {
		mean += v
	}
	mean /= float64(len(envelope))

	variance := 0.0
	for _, v := range envelope {
		variance += (v - mean) * (v - mean)
	}
	threshold := mean + math.Sqrt(variance/float64(len(envelope)))

	var onsets []int
	last := -minOnsetGap - 1
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] <= threshold {
			continue
		}
		if envelope[i] < envelope[i-1] || envelope[i] < envelope[i+1] {
			continue
		}
		if i-last <= minOnsetGap {
			continue
		}
		onsets = append(onsets, i)
		last = i
	}

	return onsets
}

// DetectOnsets runs onset-strength analysis and peak picking over a waveform,
// returning the frame indices where notes begin.
func DetectOnsets(samples []float64, hop int) []int {
	return PickOnsets(OnsetStrength(samples, hop))
}
