package dsp

import (
	"github.com/mjibson/go-dsp/fft"
)

// DefaultCutoffFreq keeps the bass register's fundamentals (open E through
// open G, roughly 82-196 Hz) while discarding most harmonic and non-bass
// content.
const DefaultCutoffFreq = 200.0

// LowPass zeroes every spectral bin above cutoffHz and reconstructs the
// time-domain signal. The whole waveform is transformed at once, so the
// filter is non-causal and unsuitable for streaming. The input slice is not
// modified; the result has the same length.
func LowPass(samples []float64, sampleRate int, cutoffHz float64) []float64 {
	n := len(samples)
	if n == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(samples)

	// Standard FFT bin convention: bins past N/2 alias to negative
	// frequencies, so bin k sits at kSigned/N*sampleRate.
	for k := range spectrum {
		kSigned := k
		if k > n/2 {
			kSigned = k - n
		}
		freq := float64(kSigned) / float64(n) * float64(sampleRate)
		if freq < 0 {
			freq = -freq
		}
		if freq > cutoffHz {
			spectrum[k] = 0
		}
	}

	inverse := fft.IFFT(spectrum)

	// The imaginary residue of a real input is reconstruction noise.
	filtered := make([]float64, n)
	for i, c := range inverse {
		filtered[i] = real(c)
	}

	return filtered
}
