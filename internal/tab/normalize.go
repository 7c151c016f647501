// Package tab turns pitch observations into bass-guitar tablature: it
// normalizes raw detector output to MIDI note numbers, maps them onto
// string/fret positions in standard tuning, and renders fixed-width text.
package tab

import (
	"math"

	"github.com/genaforvena/bass-taber/internal/dsp"
)

// Pitch is one normalized observation on the time-step grid. Voiced=false
// means no confident pitch at that step.
type Pitch struct {
	Midi   float64
	Voiced bool
}

// HzToMidi converts a frequency to a continuous MIDI note number
// (69 = A4 = 440Hz). The second return is false for non-positive or
// non-finite frequencies, where the conversion is undefined.
func HzToMidi(freq float64) (float64, bool) {
	if freq <= 0 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}
	return 69 + 12*math.Log2(freq/440.0), true
}

// Normalize converts raw detector estimates into one optional MIDI note per
// time step. Estimates with zero, negative, or non-finite frequency, or with
// magnitude below magThreshold, become unvoiced steps; a bad estimate never
// aborts the sequence.
func Normalize(estimates []dsp.Estimate, magThreshold float64) []Pitch {
	pitches := make([]Pitch, len(estimates))
	for i, est := range estimates {
		if est.Mag < magThreshold {
			continue
		}
		midi, ok := HzToMidi(est.Freq)
		if !ok {
			continue
		}
		pitches[i] = Pitch{Midi: midi, Voiced: true}
	}
	return pitches
}
