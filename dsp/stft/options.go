package stft

import (
	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// Option configures engine construction.
type Option func(*config)

type config struct {
	windowType   window.Type
	customWindow bool
	coeffs       []float64
	fftSize      int
	transformer  any
}

func defaultConfig() config {
	return config{windowType: window.Hanning}
}

// WithWindow selects a named analysis window. Hanning is the default.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.windowType = t
		c.customWindow = false
		c.coeffs = nil
	}
}

// WithCoefficients uses explicit window coefficients instead of a named
// window. The slice is copied. nil selects the rectangular window. The
// length must equal the window size.
func WithCoefficients(coeffs []float64) Option {
	var copyCoeffs []float64
	if coeffs != nil {
		copyCoeffs = append([]float64{}, coeffs...)
	}

	return func(c *config) {
		c.customWindow = true
		c.coeffs = copyCoeffs
	}
}

// WithFFTSize sets the transform length. Values above the window size
// zero-pad each frame. 0 means "same as the window size".
func WithFFTSize(n int) Option {
	return func(c *config) {
		c.fftSize = n
	}
}

// WithTransformer replaces the default backend (fft.DefaultFactory: algo-fft
// for power-of-two sizes, gonum otherwise). The factory's bin type must match
// the engine's; a mismatch is reported at construction.
func WithTransformer[C algofft.Complex](factory func(n int) (fft.Transformer[C], error)) Option {
	return func(c *config) {
		if factory != nil {
			c.transformer = factory
		}
	}
}
