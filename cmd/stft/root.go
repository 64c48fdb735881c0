package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-stft/dsp/window"
	"github.com/cwbudde/algo-stft/internal/config"
)

var _ pflag.Value = (*window.Type)(nil)

// app carries state shared by all subcommands.
type app struct {
	configFile string
	cfg        config.Config
	log        *logrus.Logger
	out        io.Writer
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"window":      "window",
	"window-size": "window_size",
	"step-size":   "step_size",
	"fft-size":    "fft_size",
	"chunk":       "chunk",
	"sample-rate": "sample_rate",
	"backend":     "backend",
	"log-level":   "log_level",
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	log := logrus.New()
	log.SetOutput(errOut)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	a := &app{log: log, out: out}

	cmd := &cobra.Command{
		Use:               "stft",
		Short:             "Streaming short-time Fourier transform tools",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	win := window.Hanning

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Var(&win, "window", "analysis window (hanning, hamming, blackman, nuttall, none)")
	pf.Int("window-size", 1024, "samples per column")
	pf.Int("step-size", 512, "samples between columns")
	pf.Int("fft-size", 0, "transform length, 0 for the window size")
	pf.Int("chunk", 3000, "samples appended per streaming step")
	pf.Float64("sample-rate", 44100, "sample rate in Hz for axis helpers")
	pf.String("backend", config.BackendAlgoFFT, "transform backend (algo-fft, gonum)")

	cmd.AddCommand(
		newWindowsCmd(a),
		newInfoCmd(a),
		newConfigCmd(a),
		newAnalyzeCmd(a),
	)

	return cmd
}

// setup loads the configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}

	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log.SetLevel(cfg.Level())

	a.log.WithFields(logrus.Fields{
		"config":      v.ConfigFileUsed(),
		"window":      cfg.Window,
		"window_size": cfg.WindowSize,
		"step_size":   cfg.StepSize,
		"fft_size":    cfg.FFTSize,
		"backend":     cfg.Backend,
	}).Debug("configuration loaded")

	return nil
}
