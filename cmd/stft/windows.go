package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-stft/dsp/window"
)

// Accepted names besides the canonical one.
var windowAliases = map[window.Type][]string{
	window.Hanning: {"hann"},
}

func newWindowsCmd(a *app) *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List analysis windows",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if size <= 0 {
				size = a.cfg.WindowSize
			}

			return a.printWindows(size)
		},
	}

	cmd.Flags().IntVar(&size, "size", 0, "window length in samples (default: configured window size)")

	return cmd
}

func (a *app) printWindows(size int) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Window\tAliases\tSize\tCoherent Gain\tENBW [bins]\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "------\t-------\t----\t-------------\t-----------\n"); err != nil {
		return err
	}

	for _, t := range window.Values() {
		m, err := window.Info(t, size)
		if err != nil {
			return err
		}

		aliases := append([]string{strings.ToLower(t.String())}, windowAliases[t]...)

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%.6f\t%.4f\n",
			m.Name, strings.Join(aliases, ", "), size, m.CoherentGain, m.ENBW); err != nil {
			return err
		}
	}

	return tw.Flush()
}
