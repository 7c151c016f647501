// Package midifile exports detected note events as a Standard MIDI File, so
// a transcription can be loaded into a DAW or notation tool.
package midifile

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/genaforvena/bass-taber/internal/tab"
	"github.com/genaforvena/bass-taber/internal/types"
)

const (
	tempoBPM   = 120.0
	resolution = 960 // ticks per quarter note
	velocity   = 100

	// Note lengths are inferred, not detected: a note rings until the next
	// onset, capped to keep long silences from becoming drones.
	maxNoteSec     = 2.0
	defaultNoteSec = 0.5
)

// ticksPerSecond at the fixed tempo and resolution above.
const ticksPerSecond = resolution * tempoBPM / 60.0

// Write stores the played notes from a transcription as a single-track SMF.
func Write(filePath string, notes []types.NoteEvent) error {
	clock := smf.MetricTicks(resolution)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("bass"))
	tr.Add(0, smf.MetaTempo(tempoBPM))

	lastTick := uint32(0)
	for i, note := range notes {
		if !note.Played {
			continue
		}

		key := keyFor(note)
		dur := noteDuration(notes, i)

		onTick := uint32(note.Time * ticksPerSecond)
		if onTick < lastTick {
			onTick = lastTick
		}
		offTick := onTick + uint32(dur*ticksPerSecond)

		tr.Add(onTick-lastTick, midi.NoteOn(0, key, velocity))
		tr.Add(offTick-onTick, midi.NoteOff(0, key))
		lastTick = offTick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = clock
	s.Add(tr)

	if err := s.WriteFile(filePath); err != nil {
		return fmt.Errorf("writing MIDI file %s: %w", filePath, err)
	}
	return nil
}

// keyFor rebuilds the sounding MIDI key from the fretboard position.
func keyFor(note types.NoteEvent) uint8 {
	key := int(tab.OpenNotes[note.String]) + note.Fret
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

// noteDuration runs a note to the next onset, within sane bounds.
func noteDuration(notes []types.NoteEvent, i int) float64 {
	if i+1 < len(notes) {
		if d := notes[i+1].Time - notes[i].Time; d > 0 && d < maxNoteSec {
			return d
		}
		return maxNoteSec
	}
	return defaultNoteSec
}
