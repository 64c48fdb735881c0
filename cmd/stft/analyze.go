package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/spectrum"
)

// Share of column energy below the reported rolloff frequency.
const rolloffFraction = 0.85

var (
	errInvalidWAV     = errors.New("analyze: not a valid WAV file")
	errUnsupportedWAV = errors.New("analyze: unsupported WAV format")
)

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze FILE.wav",
		Short: "Stream a WAV file through the engine and summarize each column",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.analyze(args[0])
		},
	}
}

func (a *app) analyze(path string) error {
	samples, rate, err := readMono(path)
	if err != nil {
		return err
	}

	if rate != a.cfg.SampleRate {
		a.log.WithFields(logrus.Fields{
			"file":       path,
			"configured": a.cfg.SampleRate,
			"file_rate":  rate,
		}).Info("using sample rate from file")
	}

	s, err := a.cfg.NewEngine()
	if err != nil {
		return err
	}

	freqs := s.Freqs(rate)
	first := s.FirstTime(rate)
	interval := s.TimeInterval(rate)
	mag := make([]float64, s.OutputSize())

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [s]\tPeak [Hz]\tPeak [log10]\tCentroid [Hz]\tRolloff [Hz]\tFlatness\n"); err != nil {
		return err
	}

	columns := 0
	chunk := a.cfg.Chunk

	for start := 0; start < len(samples); start += chunk {
		s.AppendSamples(samples[start:min(start+chunk, len(samples))])

		for s.CanCompute() {
			if err := s.ComputeMagnitudeColumn(mag); err != nil {
				return err
			}

			bin, peak := spectrum.Peak(mag)

			if _, err := fmt.Fprintf(tw, "%.4f\t%.1f\t%.4f\t%.1f\t%.1f\t%.4f\n",
				first+float64(columns)*interval,
				freqs[bin],
				spectrum.Log10Positive(peak),
				spectrum.Centroid(mag, freqs),
				spectrum.Rolloff(mag, freqs, rolloffFraction),
				spectrum.Flatness(mag),
			); err != nil {
				return err
			}

			s.MoveToNextColumn()
			columns++
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"file":     path,
		"samples":  len(samples),
		"columns":  columns,
		"leftover": s.Len(),
	}).Info("analysis complete")

	return nil
}

// readMono decodes an integer PCM WAV file and averages its channels into
// samples scaled to [-1, 1).
func readMono(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", errInvalidWAV, path)
	}

	if dec.WavAudioFormat != 1 {
		return nil, 0, fmt.Errorf("%w: format tag %d, want integer PCM", errUnsupportedWAV, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("analyze: decode %s: %w", path, err)
	}

	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%w: missing channel count or sample rate", errUnsupportedWAV)
	}

	samples, err := mixDown(buf.Data, buf.Format.NumChannels, int(dec.BitDepth))
	if err != nil {
		return nil, 0, err
	}

	return samples, float64(buf.Format.SampleRate), nil
}

// mixDown averages interleaved integer frames and normalizes them by the
// bit depth. 8-bit PCM is unsigned and is re-centered around 0 first. A
// trailing partial frame is dropped.
func mixDown(data []int, channels, bitDepth int) ([]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedWAV, channels)
	}

	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: bit depth %d", errUnsupportedWAV, bitDepth)
	}

	half := int64(1) << (bitDepth - 1)
	scale := float64(half) * float64(channels)

	// 8-bit samples are stored as 0..255 with silence at 128.
	var offset int64
	if bitDepth == 8 {
		offset = half
	}

	out := make([]float64, len(data)/channels)
	for i := range out {
		var sum int64
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += int64(v) - offset
		}

		out[i] = float64(sum) / scale
	}

	return out, nil
}
