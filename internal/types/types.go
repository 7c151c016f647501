package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig marks configuration errors that are rejected before any
// processing begins.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config carries every tunable of the transcription pipeline.
type Config struct {
	CutoffFreq   float64 // low-pass cutoff (Hz)
	HopLength    int     // analysis hop (samples)
	MagThreshold float64 // minimum peak magnitude for a pitch to count
	Spacing      int     // character columns per note slot
	MaxWidth     int     // maximum tab line width (columns)
	Concurrency  int     // pitch-estimation workers
	Quiet        bool    // only print the output file path
	JSONOutput   bool    // machine-readable result on stdout
}

// Validate rejects bad configuration up front, before any audio is touched.
func (c *Config) Validate() error {
	if c.MaxWidth <= 0 {
		return fmt.Errorf("%w: max width must be positive, got %d", ErrInvalidConfig, c.MaxWidth)
	}
	if c.Spacing < 3 {
		return fmt.Errorf("%w: spacing must be at least 3 to fit two-digit frets, got %d", ErrInvalidConfig, c.Spacing)
	}
	if c.CutoffFreq <= 0 {
		return fmt.Errorf("%w: cutoff frequency must be positive, got %g", ErrInvalidConfig, c.CutoffFreq)
	}
	if c.HopLength <= 0 {
		return fmt.Errorf("%w: hop length must be positive, got %d", ErrInvalidConfig, c.HopLength)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrInvalidConfig, c.Concurrency)
	}
	return nil
}

// AudioMetadata holds the tags we surface in the run summary.
type AudioMetadata struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
}

// NoteEvent is one detected note: where it starts in time and where it lands
// on the fretboard. Unvoiced onsets (no confident pitch, or unplayable pitch)
// keep Played=false and still occupy a tab slot.
type NoteEvent struct {
	Time   float64 `json:"time"`           // onset time (seconds)
	Freq   float64 `json:"freq,omitempty"` // detected fundamental (Hz)
	Midi   float64 `json:"midi,omitempty"` // continuous MIDI note number
	Played bool    `json:"played"`
	String int     `json:"string,omitempty"` // 0=E .. 3=G
	Fret   int     `json:"fret"`
}

// TabResult is the full outcome of one transcription run.
type TabResult struct {
	SourcePath string        `json:"sourcePath"`
	Format     string        `json:"format"`
	SampleRate int           `json:"sampleRate"`
	Duration   float64       `json:"duration"`
	Metadata   AudioMetadata `json:"metadata"`
	Notes      []NoteEvent   `json:"notes"`
	Tab        string        `json:"tab"`
}

// AudioFile is the decoded-audio contract every format decoder satisfies.
type AudioFile interface {
	GetFormat() string
	GetSampleRate() int
	GetBitDepth() int
	GetChannels() int
	GetDuration() time.Duration
	// GetSamples returns the mono waveform, downmixed by channel averaging
	// and normalized to [-1, 1].
	GetSamples() ([]float64, error)
	GetMetadata() AudioMetadata
	Close() error
}
