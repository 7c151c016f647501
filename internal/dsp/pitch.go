package dsp

import "math"

// Pitch-estimation parameters. The long window buys frequency resolution:
// low-E fundamentals sit only a couple of Hz apart, so together with
// parabolic peak interpolation we need sub-Hz accuracy.
const (
	pitchWindowSize = 16384
	pitchMinSamples = 1024

	// Search band for the fundamental. The low-pass stage has already
	// removed most content above the bass range.
	pitchMinFreq = 25.0
	pitchMaxFreq = 500.0
)

// Estimate is one raw pitch observation from the detector: a fundamental
// frequency candidate and the spectral magnitude supporting it. Freq 0 means
// no pitch was found.
type Estimate struct {
	Freq float64 `json:"freq"`
	Mag  float64 `json:"mag"`
}

// EstimateAtOnset estimates the fundamental frequency of the note starting at
// sample offset start: magnitude FFT over a Hann-windowed slice, strongest bin
// in the bass band, parabolic interpolation between neighboring bins for
// sub-bin accuracy.
func EstimateAtOnset(samples []float64, sampleRate, start int) Estimate {
	if start < 0 {
		start = 0
	}
	if start >= len(samples) {
		return Estimate{}
	}

	end := start + pitchWindowSize
	if end > len(samples) {
		end = len(samples)
	}
	frame := samples[start:end]
	if len(frame) < pitchMinSamples {
		return Estimate{}
	}

	mags := magnitudeSpectrum(frame)

	n := len(frame)
	lo := int(math.Ceil(pitchMinFreq * float64(n) / float64(sampleRate)))
	hi := int(math.Floor(pitchMaxFreq * float64(n) / float64(sampleRate)))
	if lo < 1 {
		lo = 1
	}
	if hi > len(mags)-2 {
		hi = len(mags) - 2
	}
	if hi <= lo {
		return Estimate{}
	}

	peak := lo
	for k := lo; k <= hi; k++ {
		if mags[k] > mags[peak] {
			peak = k
		}
	}
	if mags[peak] == 0 {
		return Estimate{}
	}

	// Parabolic fit through the peak bin and its neighbors.
	alpha, beta, gamma := mags[peak-1], mags[peak], mags[peak+1]
	shift := 0.0
	if denom := alpha - 2*beta + gamma; denom != 0 {
		shift = 0.5 * (alpha - gamma) / denom
		if shift > 0.5 {
			shift = 0.5
		} else if shift < -0.5 {
			shift = -0.5
		}
	}

	return Estimate{
		Freq: binFreq(float64(peak)+shift, n, sampleRate),
		Mag:  beta,
	}
}
