package tab

import "math"

// Standard 4-string bass tuning, lowest string first.
const (
	StringE = iota // E1
	StringA        // A1
	StringD        // D2
	StringG        // G2

	NumStrings = 4
	MaxFret    = 24
)

// OpenNotes holds the open-string MIDI note per string index.
var OpenNotes = [NumStrings]float64{40, 45, 50, 55} // E1 A1 D2 G2

// StringNames holds the conventional label per string index.
var StringNames = [NumStrings]string{"E", "A", "D", "G"}

// Position is the fret assignment for one time step. Played=false means the
// step stays silent in the tab (no pitch, or pitch outside the instrument's
// range).
type Position struct {
	Played bool
	String int // 0=E .. 3=G
	Fret   int // 0..24
}

// MapNote places a single MIDI note on the fretboard. Strings are scanned
// from highest open pitch to lowest (G, D, A, E) and the first one whose
// fret offset lands in [0, 24] wins, which biases toward the
// highest-pitched playable string and therefore the smallest fret. Fret
// offsets round half to even. Notes no string can reach come back unplayed.
func MapNote(midi float64) Position {
	for s := NumStrings - 1; s >= 0; s-- {
		fret := int(math.RoundToEven(midi - OpenNotes[s]))
		if fret >= 0 && fret <= MaxFret {
			return Position{Played: true, String: s, Fret: fret}
		}
	}
	return Position{}
}

// MapSequence assigns a fretboard position to every voiced step of the pitch
// sequence. The result has the same length and ordering as the input;
// unvoiced steps stay unplayed.
func MapSequence(pitches []Pitch) []Position {
	positions := make([]Position, len(pitches))
	for i, p := range pitches {
		if p.Voiced {
			positions[i] = MapNote(p.Midi)
		}
	}
	return positions
}
