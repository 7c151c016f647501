package transcriber

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/genaforvena/bass-taber/internal/decoder"
	"github.com/genaforvena/bass-taber/internal/dsp"
	"github.com/genaforvena/bass-taber/internal/tab"
	"github.com/genaforvena/bass-taber/internal/types"
)

// Transcriber runs the full audio-to-tablature pipeline. Each stage consumes
// its predecessor's complete output; only pitch estimation fans out across
// workers, since per-onset estimates are independent.
type Transcriber struct {
	config          *types.Config
	decoderRegistry *decoder.DecoderRegistry
}

// New creates a transcriber with the given configuration.
func New(config *types.Config) *Transcriber {
	return &Transcriber{
		config:          config,
		decoderRegistry: decoder.NewDecoderRegistry(),
	}
}

// TranscribeFile decodes an audio file and transcribes it.
func (t *Transcriber) TranscribeFile(filePath string) (*types.TabResult, error) {
	if err := t.config.Validate(); err != nil {
		return nil, err
	}

	audioFile, err := t.decoderRegistry.DecodeFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filePath, err)
	}
	defer audioFile.Close()

	samples, err := audioFile.GetSamples()
	if err != nil {
		return nil, fmt.Errorf("reading samples from %s: %w", filePath, err)
	}

	result, err := t.Transcribe(samples, audioFile.GetSampleRate())
	if err != nil {
		return nil, err
	}

	result.SourcePath = filePath
	result.Format = audioFile.GetFormat()
	result.Duration = audioFile.GetDuration().Seconds()
	result.Metadata = audioFile.GetMetadata()
	return result, nil
}

// Transcribe runs the pipeline over an in-memory mono waveform:
// low-pass filter, onset detection, per-onset pitch estimation,
// normalization, fretboard mapping, rendering.
func (t *Transcriber) Transcribe(samples []float64, sampleRate int) (*types.TabResult, error) {
	if err := t.config.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", types.ErrInvalidConfig, sampleRate)
	}

	filtered := dsp.LowPass(samples, sampleRate, t.config.CutoffFreq)
	onsets := dsp.DetectOnsets(filtered, t.config.HopLength)
	estimates := t.estimatePitches(filtered, sampleRate, onsets)

	pitches := tab.Normalize(estimates, t.config.MagThreshold)
	positions := tab.MapSequence(pitches)

	text, err := tab.Render(positions, t.config.Spacing, t.config.MaxWidth)
	if err != nil {
		return nil, err
	}

	notes := make([]types.NoteEvent, len(onsets))
	for i, frame := range onsets {
		notes[i] = types.NoteEvent{
			Time:   float64(frame*t.config.HopLength) / float64(sampleRate),
			Freq:   estimates[i].Freq,
			Played: positions[i].Played,
			String: positions[i].String,
			Fret:   positions[i].Fret,
		}
		if pitches[i].Voiced {
			notes[i].Midi = pitches[i].Midi
		}
	}

	return &types.TabResult{
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
		Notes:      notes,
		Tab:        text,
	}, nil
}

// estimatePitches fans the per-onset pitch analysis out over a worker pool.
// Results land at their onset's index, so ordering is preserved regardless of
// completion order.
func (t *Transcriber) estimatePitches(samples []float64, sampleRate int, onsets []int) []dsp.Estimate {
	estimates := make([]dsp.Estimate, len(onsets))
	if len(onsets) == 0 {
		return estimates
	}

	var bar *progressbar.ProgressBar
	if !t.config.Quiet && !t.config.JSONOutput {
		bar = progressbar.NewOptions(len(onsets),
			progressbar.OptionSetDescription("estimating pitches"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(50),
		)
	}

	workers := t.config.Concurrency
	if workers > len(onsets) {
		workers = len(onsets)
	}

	jobs := make(chan int, len(onsets))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := onsets[idx] * t.config.HopLength
				estimates[idx] = dsp.EstimateAtOnset(samples, sampleRate, start)
				if bar != nil {
					bar.Add(1)
				}
			}
		}()
	}

	for i := range onsets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		bar.Finish()
		fmt.Println()
	}

	return estimates
}

// PrintJSON writes the whole result as a single JSON document to stdout.
func (t *Transcriber) PrintJSON(result *types.TabResult) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

// PrintSummary reports what was detected and where the tab went.
func (t *Transcriber) PrintSummary(result *types.TabResult, outputPath string) {
	if t.config.Quiet {
		fmt.Println(outputPath)
		return
	}

	voiced := 0
	for _, n := range result.Notes {
		if n.Played {
			voiced++
		}
	}

	fmt.Printf("\n=== %s ===\n", result.SourcePath)
	if result.Metadata.Title != "" {
		fmt.Printf("Title: %s\n", result.Metadata.Title)
	}
	if result.Metadata.Artist != "" {
		fmt.Printf("Artist: %s\n", result.Metadata.Artist)
	}
	fmt.Printf("Format: %s\n", result.Format)
	fmt.Printf("Sample rate: %d Hz\n", result.SampleRate)
	fmt.Printf("Duration: %.2f s\n", result.Duration)
	fmt.Printf("Onsets detected: %d\n", len(result.Notes))
	fmt.Printf("Notes placed on the fretboard: %d\n", voiced)

	if len(result.Notes) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no note onsets detected; the tab is empty")
	}

	fmt.Printf("Bass tabs have been written to '%s'\n", outputPath)
}
