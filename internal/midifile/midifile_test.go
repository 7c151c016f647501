package midifile

import (
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/genaforvena/bass-taber/internal/tab"
	"github.com/genaforvena/bass-taber/internal/types"
)

func TestWriteReadBack(t *testing.T) {
	notes := []types.NoteEvent{
		{Time: 0.0, Played: true, String: tab.StringG, Fret: 0},
		{Time: 0.5, Played: true, String: tab.StringA, Fret: 2},
		{Time: 1.0, Played: false}, // unvoiced onsets are skipped
		{Time: 1.5, Played: true, String: tab.StringE, Fret: 12},
	}

	path := filepath.Join(t.TempDir(), "out.mid")
	if err := Write(path, notes); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Fatal("MIDI file is empty")
	}

	if _, err := smf.ReadFile(path); err != nil {
		t.Fatalf("written file does not parse as SMF: %v", err)
	}
}

func TestWriteEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.mid")
	if err := Write(path, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := smf.ReadFile(path); err != nil {
		t.Fatalf("empty transcription should still produce a valid SMF: %v", err)
	}
}

func TestKeyForMatchesTuning(t *testing.T) {
	cases := []struct {
		note types.NoteEvent
		want uint8
	}{
		{types.NoteEvent{String: tab.StringE, Fret: 0}, 40},
		{types.NoteEvent{String: tab.StringA, Fret: 0}, 45},
		{types.NoteEvent{String: tab.StringD, Fret: 2}, 52},
		{types.NoteEvent{String: tab.StringG, Fret: 24}, 79},
	}
	for _, tc := range cases {
		if got := keyFor(tc.note); got != tc.want {
			t.Errorf("keyFor(string %d, fret %d) = %d, want %d", tc.note.String, tc.note.Fret, got, tc.want)
		}
	}
}
