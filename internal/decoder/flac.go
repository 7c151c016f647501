package decoder

import (
	"fmt"
	"os"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/meta"

	"github.com/genaforvena/bass-taber/internal/types"
)

// FLACDecoder decodes FLAC files.
type FLACDecoder struct{}

// FLACFile is a decoded FLAC file.
type FLACFile struct {
	stream     *flac.Stream
	file       *os.File
	sampleRate int
	bitDepth   int
	channels   int
	duration   time.Duration
	samples    []float64
	metadata   types.AudioMetadata
}

// SupportedFormats returns the extensions this decoder handles.
func (d *FLACDecoder) SupportedFormats() []string {
	return []string{"flac"}
}

// Decode opens a FLAC file and parses its stream info and tags.
func (d *FLACDecoder) Decode(filePath string) (types.AudioFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening FLAC file: %w", err)
	}

	stream, err := flac.New(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("parsing FLAC file: %w", err)
	}

	info := stream.Info
	if info == nil {
		file.Close()
		return nil, fmt.Errorf("FLAC stream info missing: %s", filePath)
	}

	duration := time.Duration(float64(info.NSamples) / float64(info.SampleRate) * float64(time.Second))

	flacFile := &FLACFile{
		stream:     stream,
		file:       file,
		sampleRate: int(info.SampleRate),
		bitDepth:   int(info.BitsPerSample),
		channels:   int(info.NChannels),
		duration:   duration,
	}

	flacFile.parseMetadata()

	return flacFile, nil
}

// parseMetadata pulls title/artist out of the vorbis comment block, if any.
func (f *FLACFile) parseMetadata() {
	for _, block := range f.stream.Blocks {
		if block.Header.Type == meta.TypeVorbisComment {
			if comment, ok := block.Body.(*meta.VorbisComment); ok {
				f.metadata = types.AudioMetadata{
					Title:  getVorbisTag(comment, "TITLE"),
					Artist: getVorbisTag(comment, "ARTIST"),
				}
			}
		}
	}
}

func getVorbisTag(comment *meta.VorbisComment, tag string) string {
	for _, field := range comment.Tags {
		if field[0] == tag {
			return field[1]
		}
	}
	return ""
}

// GetFormat returns the format name.
func (f *FLACFile) GetFormat() string {
	return "FLAC"
}

// GetSampleRate returns the sample rate in Hz.
func (f *FLACFile) GetSampleRate() int {
	return f.sampleRate
}

// GetBitDepth returns the bit depth.
func (f *FLACFile) GetBitDepth() int {
	return f.bitDepth
}

// GetChannels returns the channel count of the source stream.
func (f *FLACFile) GetChannels() int {
	return f.channels
}

// GetDuration returns the audio duration.
func (f *FLACFile) GetDuration() time.Duration {
	return f.duration
}

// GetSamples decodes every frame and downmixes to normalized mono.
func (f *FLACFile) GetSamples() ([]float64, error) {
	if f.samples != nil {
		return f.samples, nil
	}

	var mono []float64
	maxVal := float64(int(1) << uint(f.bitDepth-1))

	for {
		frame, err := f.stream.ParseNext()
		if err != nil {
			break
		}

		for i := 0; i < len(frame.Subframes[0].Samples); i++ {
			sum := 0.0
			for ch := 0; ch < f.channels; ch++ {
				sum += float64(frame.Subframes[ch].Samples[i])
			}
			mono = append(mono, sum/float64(f.channels)/maxVal)
		}
	}

	f.samples = mono
	return mono, nil
}

// GetMetadata returns tag metadata.
func (f *FLACFile) GetMetadata() types.AudioMetadata {
	return f.metadata
}

// Close releases the underlying file.
func (f *FLACFile) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}
