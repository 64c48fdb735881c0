// Command stft inspects and runs streaming short-time Fourier transforms.
//
// Usage:
//
//	stft [flags] <command>
//
// Commands:
//
//	windows           list analysis windows with coherent gain and ENBW
//	info              print column geometry of the configured engine
//	config            print the effective configuration as YAML
//	analyze FILE.wav  stream a WAV file through the engine, one row per column
//
// Settings come from flags, STFT_* environment variables and an optional
// YAML file given with --config, in that order of precedence.
//
// Examples:
//
//	stft windows --size 4096
//	stft info --window blackman --window-size 2048 --fft-size 8192
//	STFT_STEP_SIZE=256 stft analyze speech.wav
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
