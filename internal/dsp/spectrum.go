package dsp

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// hannWindow returns the samples multiplied by a Hann window, reducing
// spectral leakage before an FFT.
func hannWindow(samples []float64) []float64 {
	windowed := make([]float64, len(samples))
	n := len(samples)
	if n == 1 {
		windowed[0] = samples[0]
		return windowed
	}

	for i, sample := range samples {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		windowed[i] = sample * w
	}

	return windowed
}

// magnitudeSpectrum returns the one-sided magnitude spectrum of a
// Hann-windowed frame. Bin k corresponds to k/len(frame)*sampleRate Hz.
func magnitudeSpectrum(frame []float64) []float64 {
	spectrum := fft.FFTReal(hannWindow(frame))

	// The upper half mirrors the lower for real input.
	mags := make([]float64, len(spectrum)/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(spectrum[i])
	}

	return mags
}

// binFreq converts an FFT bin index (possibly fractional, after peak
// interpolation) to Hz for a frame of frameLen samples.
func binFreq(bin float64, frameLen, sampleRate int) float64 {
	return bin / float64(frameLen) * float64(sampleRate)
}
