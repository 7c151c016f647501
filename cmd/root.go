package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genaforvena/bass-taber/internal/dsp"
	"github.com/genaforvena/bass-taber/internal/fetch"
	"github.com/genaforvena/bass-taber/internal/midifile"
	"github.com/genaforvena/bass-taber/internal/tab"
	"github.com/genaforvena/bass-taber/internal/transcriber"
	"github.com/genaforvena/bass-taber/internal/types"
)

var (
	quiet        bool
	jsonOutput   bool
	cutoffFreq   float64
	hopLength    int
	magThreshold float64
	spacing      int
	maxWidth     int
	concurrency  int
	outputPath   string
	midiPath     string
	downloadDir  string
	version      = "0.2.0"
)

var rootCmd = &cobra.Command{
	Use:   "bass-taber [audio file or URL]",
	Short: "Generate bass tabs from an audio file",
	Long: `bass-taber transcribes the bass line of a recording into ASCII tablature.

It low-pass filters the audio to isolate bass content, detects note onsets,
estimates the pitch at each onset, maps every note onto a 4-string bass in
standard tuning (E1 A1 D2 G2), and writes fixed-width tab text next to the
input file. Supported inputs: WAV and FLAC files, or a direct HTTP(S) URL
to one.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscription,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().IntVarP(&maxWidth, "width", "w", tab.DefaultMaxWidth, "maximum width of the output tab lines")
	rootCmd.Flags().IntVar(&spacing, "spacing", tab.DefaultSpacing, "character columns per note (minimum 3)")
	rootCmd.Flags().Float64Var(&cutoffFreq, "cutoff", dsp.DefaultCutoffFreq, "low-pass cutoff frequency (Hz)")
	rootCmd.Flags().IntVar(&hopLength, "hop", dsp.DefaultHopLength, "analysis hop length (samples)")
	rootCmd.Flags().Float64Var(&magThreshold, "threshold", 0, "minimum spectral magnitude for a pitch to count")
	rootCmd.Flags().IntVarP(&concurrency, "concurrency", "j", runtime.NumCPU(), "pitch-estimation workers")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "tab output path (default: <input name>.txt)")
	rootCmd.Flags().StringVar(&midiPath, "midi", "", "also export detected notes as a MIDI file")
	rootCmd.Flags().StringVar(&downloadDir, "download-dir", "downloads", "directory for downloaded audio")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only print the output file path")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON on stdout")
	rootCmd.Flags().BoolP("version", "v", false, "print version")

	rootCmd.SetVersionTemplate("bass-taber version {{.Version}}\n")
	rootCmd.Version = version
}

func runTranscription(cmd *cobra.Command, args []string) error {
	audioPath := args[0]

	config := &types.Config{
		CutoffFreq:   cutoffFreq,
		HopLength:    hopLength,
		MagThreshold: magThreshold,
		Spacing:      spacing,
		MaxWidth:     maxWidth,
		Concurrency:  concurrency,
		Quiet:        quiet,
		JSONOutput:   jsonOutput,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if strings.HasPrefix(audioPath, "http://") || strings.HasPrefix(audioPath, "https://") {
		localPath, err := fetch.Download(audioPath, downloadDir, quiet || jsonOutput)
		if err != nil {
			return err
		}
		audioPath = localPath
	}

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", audioPath)
	}

	t := transcriber.New(config)
	result, err := t.TranscribeFile(audioPath)
	if err != nil {
		return err
	}

	outPath := outputPath
	if outPath == "" {
		base := filepath.Base(audioPath)
		outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".txt"
	}
	if err := os.WriteFile(outPath, []byte(result.Tab), 0o644); err != nil {
		return fmt.Errorf("writing tab to %s: %w", outPath, err)
	}

	if midiPath != "" {
		if err := midifile.Write(midiPath, result.Notes); err != nil {
			return err
		}
	}

	if jsonOutput {
		return t.PrintJSON(result)
	}
	t.PrintSummary(result, outPath)
	return nil
}
