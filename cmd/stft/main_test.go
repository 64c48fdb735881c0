package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-stft/internal/testutil"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeTone(t *testing.T, freq float64, rate, channels, length int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	tone := testutil.DeterministicSine(freq, float64(rate), 0.5, length)
	data := make([]int, 0, length*channels)

	for _, v := range tone {
		for range channels {
			data = append(data, int(math.Round(v*32767)))
		}
	}

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestWindows(t *testing.T) {
	out, _, err := run(t, "windows", "--size", "64")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"Hanning", "hann", "Hamming", "Blackman", "Nuttall", "None"} {
		if !strings.Contains(out, name) {
			t.Fatalf("windows output missing %q:\n%s", name, out)
		}
	}

	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 2+5 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
}

func TestInfo(t *testing.T) {
	out, _, err := run(t, "info", "--window", "blackman", "--window-size", "8", "--step-size", "4",
		"--fft-size", "32", "--sample-rate", "8000")
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		key, value, ok := strings.Cut(line, "  ")
		if !ok {
			t.Fatalf("malformed line %q", line)
		}
		got[key] = strings.TrimSpace(value)
	}

	want := map[string]string{
		"window":            "Blackman",
		"output size":       "16",
		"fft size":          "32",
		"first time [s]":    "0.000500",
		"time interval [s]": "0.000500",
		"first bin [Hz]":    "0.000",
		"last bin [Hz]":     "4000.000",
	}

	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q\n%s", k, got[k], v, out)
		}
	}
}

func TestInfoRejectsInvalidSizes(t *testing.T) {
	_, _, err := run(t, "info", "--window-size", "8", "--step-size", "8")
	if err == nil {
		t.Fatal("expected error for step == window")
	}
}

func TestConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stft.yaml")
	if err := os.WriteFile(path, []byte("window: nuttall\nwindow_size: 256\nstep_size: 64\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := run(t, "config", "--config", path, "--step-size", "32")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"window: Nuttall", "window_size: 256", "step_size: 32", "fft_size: 256"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestAnalyze(t *testing.T) {
	path := writeTone(t, 1000, 8000, 2, 8000)

	out, logs, err := run(t, "analyze", path, "--window-size", "256", "--step-size", "128", "--chunk", "500")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if want := 1 + (8000-256)/128 + 1; len(lines) != want {
		t.Fatalf("got %d lines, want %d", len(lines), want)
	}

	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) != 6 {
			t.Fatalf("row %q: want 6 fields", line)
		}

		peak, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(peak-1000) > 40 {
			t.Fatalf("row %q: peak %v Hz, want ~1000", line, peak)
		}
	}

	if !strings.Contains(logs, "using sample rate from file") || !strings.Contains(logs, "analysis complete") {
		t.Fatalf("unexpected logs:\n%s", logs)
	}
}

func TestAnalyzeInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, "analyze", path)
	if !errors.Is(err, errInvalidWAV) {
		t.Fatalf("error = %v, want errInvalidWAV", err)
	}
}

func TestMixDown(t *testing.T) {
	got, err := mixDown([]int{16384, -16384, 32767, 32767, 1}, 2, 16)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 32767.0 / 32768}, 1e-12)

	// Unsigned 8-bit: 128 is silence, 0 and 255 are the extremes.
	got, err = mixDown([]int{128, 128, 0, 0, 255, 255, 192, 64}, 2, 8)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, -1, 127.0 / 128, 0}, 1e-12)

	if _, err := mixDown([]int{1}, 0, 16); !errors.Is(err, errUnsupportedWAV) {
		t.Fatalf("zero channels: %v", err)
	}

	if _, err := mixDown([]int{1}, 1, 0); !errors.Is(err, errUnsupportedWAV) {
		t.Fatalf("zero bit depth: %v", err)
	}
}
