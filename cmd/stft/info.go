package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print column geometry of the configured engine",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.printInfo()
		},
	}
}

func (a *app) printInfo() error {
	s, err := a.cfg.NewEngine()
	if err != nil {
		return err
	}

	rate := a.cfg.SampleRate
	freqs := s.Freqs(rate)

	rows := []struct {
		key   string
		value any
	}{
		{"window", a.cfg.Window},
		{"window size", s.WindowSize()},
		{"step size", s.StepSize()},
		{"fft size", s.FFTSize()},
		{"output size", s.OutputSize()},
		{"backend", a.cfg.Backend},
		{"sample rate [Hz]", rate},
		{"first time [s]", fmt.Sprintf("%.6f", s.FirstTime(rate))},
		{"time interval [s]", fmt.Sprintf("%.6f", s.TimeInterval(rate))},
		{"first bin [Hz]", fmt.Sprintf("%.3f", freqs[0])},
		{"last bin [Hz]", fmt.Sprintf("%.3f", freqs[len(freqs)-1])},
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%v\n", r.key, r.value); err != nil {
			return err
		}
	}

	return tw.Flush()
}
