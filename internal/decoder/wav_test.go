package decoder

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV encodes int16 PCM data into a temp WAV file.
func writeTestWAV(t *testing.T, data []int, sampleRate, channels int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	out, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(out, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestWAVDecodeMono(t *testing.T) {
	const sr = 8000
	data := make([]int, sr)
	for i := range data {
		data[i] = int(16000 * math.Sin(2*math.Pi*55*float64(i)/float64(sr)))
	}
	path := writeTestWAV(t, data, sr, 1)

	audioFile, err := NewDecoderRegistry().DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer audioFile.Close()

	if audioFile.GetFormat() != "WAV" {
		t.Errorf("format %q", audioFile.GetFormat())
	}
	if audioFile.GetSampleRate() != sr {
		t.Errorf("sample rate %d, want %d", audioFile.GetSampleRate(), sr)
	}
	if audioFile.GetChannels() != 1 {
		t.Errorf("channels %d, want 1", audioFile.GetChannels())
	}

	samples, err := audioFile.GetSamples()
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != len(data) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(data))
	}
	for i := range samples {
		want := float64(data[i]) / 32768.0
		if math.Abs(samples[i]-want) > 1e-3 {
			t.Fatalf("sample %d: %g, want %g", i, samples[i], want)
		}
	}
}

func TestWAVDecodeStereoDownmix(t *testing.T) {
	const sr = 8000
	// Interleaved stereo: left holds a ramp, right holds its negation, so
	// the downmix must be silence.
	data := make([]int, 2000)
	for i := 0; i < len(data); i += 2 {
		data[i] = i * 10
		data[i+1] = -i * 10
	}
	path := writeTestWAV(t, data, sr, 2)

	audioFile, err := NewDecoderRegistry().DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer audioFile.Close()

	if audioFile.GetChannels() != 2 {
		t.Fatalf("channels %d, want 2", audioFile.GetChannels())
	}

	samples, err := audioFile.GetSamples()
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != len(data)/2 {
		t.Fatalf("decoded %d frames, want %d", len(samples), len(data)/2)
	}
	for i, s := range samples {
		if math.Abs(s) > 1e-9 {
			t.Fatalf("frame %d: downmix of opposite channels = %g, want 0", i, s)
		}
	}
}

func TestWAVDecodeSpansChunkReads(t *testing.T) {
	// Longer than one PCM chunk read, so decoding must accumulate across
	// several buffer fills without dropping or repeating samples.
	const sr = 8000
	data := make([]int, 20000)
	for i := range data {
		data[i] = (i % 3000) - 1500
	}
	path := writeTestWAV(t, data, sr, 1)

	audioFile, err := NewDecoderRegistry().DecodeFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer audioFile.Close()

	samples, err := audioFile.GetSamples()
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != len(data) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(data))
	}
	for _, i := range []int{0, 8191, 8192, 16383, 16384, 19999} {
		want := float64(data[i]) / 32768.0
		if math.Abs(samples[i]-want) > 1e-3 {
			t.Fatalf("sample %d: %g, want %g", i, samples[i], want)
		}
	}
}

func TestRegistryRejectsUnknownFormat(t *testing.T) {
	registry := NewDecoderRegistry()

	if _, err := registry.DecodeFile("song.mp3"); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
	if _, err := registry.DecodeFile("song"); err == nil {
		t.Error("expected an error for a missing extension")
	}
}
