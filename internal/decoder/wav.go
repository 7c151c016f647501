package decoder

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/genaforvena/bass-taber/internal/types"
)

// WAVDecoder decodes PCM WAV files.
type WAVDecoder struct{}

// WAVFile is a decoded WAV file.
type WAVFile struct {
	decoder    *wav.Decoder
	file       *os.File
	sampleRate int
	bitDepth   int
	channels   int
	duration   time.Duration
	samples    []float64
}

// SupportedFormats returns the extensions this decoder handles.
func (d *WAVDecoder) SupportedFormats() []string {
	return []string{"wav"}
}

// Decode opens and validates a WAV file.
func (d *WAVDecoder) Decode(filePath string) (types.AudioFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening WAV file: %w", err)
	}

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		file.Close()
		return nil, fmt.Errorf("not a valid WAV file: %s", filePath)
	}

	sampleRate := int(decoder.SampleRate)
	channels := int(decoder.NumChans)
	bitDepth := int(decoder.BitDepth)
	if sampleRate <= 0 || channels <= 0 {
		file.Close()
		return nil, fmt.Errorf("WAV header reports no audio: %s", filePath)
	}

	// Duration comes from the RIFF header; a malformed header only costs
	// us the summary line, not the transcription.
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}

	return &WAVFile{
		decoder:    decoder,
		file:       file,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
		duration:   duration,
	}, nil
}

// GetFormat returns the format name.
func (w *WAVFile) GetFormat() string {
	return "WAV"
}

// GetSampleRate returns the sample rate in Hz.
func (w *WAVFile) GetSampleRate() int {
	return w.sampleRate
}

// GetBitDepth returns the bit depth.
func (w *WAVFile) GetBitDepth() int {
	return w.bitDepth
}

// GetChannels returns the channel count of the source file.
func (w *WAVFile) GetChannels() int {
	return w.channels
}

// GetDuration returns the audio duration.
func (w *WAVFile) GetDuration() time.Duration {
	return w.duration
}

// GetSamples reads the whole file and downmixes it to normalized mono.
func (w *WAVFile) GetSamples() ([]float64, error) {
	if w.samples != nil {
		return w.samples, nil
	}

	// PCMBuffer fills at most len(buf.Data) samples per call, so the
	// chunk buffer must be pre-sized and the chunks accumulated.
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: w.channels,
			SampleRate:  w.sampleRate,
		},
		Data: make([]int, 8192*w.channels),
	}

	var data []int
	for {
		n, err := w.decoder.PCMBuffer(buf)
		if n == 0 {
			break
		}
		data = append(data, buf.Data[:n]...)
		if err != nil {
			break
		}
	}

	maxVal := float64(int(1) << uint(w.bitDepth-1))
	frames := len(data) / w.channels
	mono := make([]float64, frames)

	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < w.channels; ch++ {
			sum += float64(data[i*w.channels+ch])
		}
		mono[i] = sum / float64(w.channels) / maxVal
	}

	w.samples = mono
	return mono, nil
}

// GetMetadata returns tag metadata. WAV carries none we care about.
func (w *WAVFile) GetMetadata() types.AudioMetadata {
	return types.AudioMetadata{}
}

// Close releases the underlying file.
func (w *WAVFile) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
