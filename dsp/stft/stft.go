package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-stft/dsp/buffer"
	"github.com/cwbudde/algo-stft/dsp/fft"
	"github.com/cwbudde/algo-stft/dsp/spectrum"
	"github.com/cwbudde/algo-stft/dsp/window"
)

// STFTT is a streaming short-time Fourier transform.
//
// The type parameters F and C select precision: float64/complex128 or
// float32/complex64. Window, step and FFT sizes are fixed at construction.
type STFTT[F algofft.Float, C algofft.Complex] struct {
	windowSize int
	stepSize   int
	fftSize    int

	// nil means rectangular
	window []F

	ring      *buffer.Ring[F]
	transform fft.Transformer[C]

	// Reusable buffers, allocated once.
	real     []F
	spectrum []C
	scratch  []C
	column   []F
}

// STFT is the float64 specialization of STFTT.
type STFT = STFTT[float64, complex128]

// STFT32 is the float32 specialization of STFTT.
type STFT32 = STFTT[float32, complex64]

// NewT creates an engine with a named window and fftSize == windowSize.
func NewT[F algofft.Float, C algofft.Complex](windowType window.Type, windowSize, stepSize int) (*STFTT[F, C], error) {
	return NewWithOptionsT[F, C](windowSize, stepSize, WithWindow(windowType))
}

// New creates a float64 engine with a named window.
func New(windowType window.Type, windowSize, stepSize int) (*STFT, error) {
	return NewT[float64, complex128](windowType, windowSize, stepSize)
}

// New32 creates a float32 engine with a named window.
func New32(windowType window.Type, windowSize, stepSize int) (*STFT32, error) {
	return NewT[float32, complex64](windowType, windowSize, stepSize)
}

// NewWithZeroPaddingT creates an engine whose frames are zero-padded from
// windowSize to fftSize samples before the transform.
func NewWithZeroPaddingT[F algofft.Float, C algofft.Complex](
	windowType window.Type, windowSize, fftSize, stepSize int,
) (*STFTT[F, C], error) {
	return NewWithOptionsT[F, C](windowSize, stepSize, WithWindow(windowType), WithFFTSize(fftSize))
}

// NewWithZeroPadding creates a zero-padding float64 engine.
func NewWithZeroPadding(windowType window.Type, windowSize, fftSize, stepSize int) (*STFT, error) {
	return NewWithZeroPaddingT[float64, complex128](windowType, windowSize, fftSize, stepSize)
}

// NewWithZeroPadding32 creates a zero-padding float32 engine.
func NewWithZeroPadding32(windowType window.Type, windowSize, fftSize, stepSize int) (*STFT32, error) {
	return NewWithZeroPaddingT[float32, complex64](windowType, windowSize, fftSize, stepSize)
}

// NewWithWindowT creates an engine from explicit window coefficients.
// coeffs must have windowSize entries, or be nil for a rectangular window.
func NewWithWindowT[F algofft.Float, C algofft.Complex](coeffs []F, windowSize, fftSize, stepSize int) (*STFTT[F, C], error) {
	var wide []float64
	if coeffs != nil {
		wide = make([]float64, len(coeffs))
		for i, c := range coeffs {
			wide[i] = float64(c)
		}
	}

	return NewWithOptionsT[F, C](windowSize, stepSize, WithCoefficients(wide), WithFFTSize(fftSize))
}

// NewWithWindow creates a float64 engine from explicit window coefficients.
func NewWithWindow(coeffs []float64, windowSize, fftSize, stepSize int) (*STFT, error) {
	return NewWithWindowT[float64, complex128](coeffs, windowSize, fftSize, stepSize)
}

// NewWithOptions creates a float64 engine from options.
func NewWithOptions(windowSize, stepSize int, opts ...Option) (*STFT, error) {
	return NewWithOptionsT[float64, complex128](windowSize, stepSize, opts...)
}

// NewWithOptions32 creates a float32 engine from options.
func NewWithOptions32(windowSize, stepSize int, opts ...Option) (*STFT32, error) {
	return NewWithOptionsT[float32, complex64](windowSize, stepSize, opts...)
}

// NewWithOptionsT creates an engine from options. It requires
// 0 < stepSize < windowSize <= fftSize.
func NewWithOptionsT[F algofft.Float, C algofft.Complex](windowSize, stepSize int, opts ...Option) (*STFTT[F, C], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fftSize := cfg.fftSize
	if fftSize == 0 {
		fftSize = windowSize
	}

	err := validateSizes(windowSize, stepSize, fftSize)
	if err != nil {
		return nil, err
	}

	win, err := resolveWindow[F](cfg, windowSize)
	if err != nil {
		return nil, err
	}

	factory := fft.DefaultFactory[C]()
	if cfg.transformer != nil {
		f, ok := cfg.transformer.(func(n int) (fft.Transformer[C], error))
		if !ok {
			return nil, fmt.Errorf("%w: transformer bin type does not match engine precision", ErrInvalidConfiguration)
		}

		factory = f
	}

	transform, err := factory(fftSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if transform.Len() != fftSize {
		return nil, fmt.Errorf("%w: transformer size %d, want %d", ErrInvalidConfiguration, transform.Len(), fftSize)
	}

	return &STFTT[F, C]{
		windowSize: windowSize,
		stepSize:   stepSize,
		fftSize:    fftSize,
		window:     win,
		ring:       buffer.NewRing[F](),
		transform:  transform,
		real:       make([]F, windowSize),
		spectrum:   make([]C, fftSize),
		scratch:    make([]C, transform.ScratchLen()),
		column:     make([]F, fftSize/2),
	}, nil
}

func validateSizes(windowSize, stepSize, fftSize int) error {
	if windowSize <= 0 {
		return fmt.Errorf("%w: window size must be > 0: %d", ErrInvalidConfiguration, windowSize)
	}

	if stepSize <= 0 {
		return fmt.Errorf("%w: step size must be > 0: %d", ErrInvalidConfiguration, stepSize)
	}

	if stepSize >= windowSize {
		return fmt.Errorf("%w: step size %d must be < window size %d", ErrInvalidConfiguration, stepSize, windowSize)
	}

	if fftSize < windowSize {
		return fmt.Errorf("%w: fft size %d must be >= window size %d", ErrInvalidConfiguration, fftSize, windowSize)
	}

	return nil
}

func resolveWindow[F algofft.Float](cfg config, windowSize int) ([]F, error) {
	if !cfg.customWindow {
		if !cfg.windowType.Valid() {
			return nil, fmt.Errorf("%w: unknown window %s", ErrInvalidConfiguration, cfg.windowType)
		}

		return window.GenerateT[F](cfg.windowType, windowSize), nil
	}

	if cfg.coeffs == nil {
		return nil, nil
	}

	if len(cfg.coeffs) != windowSize {
		return nil, fmt.Errorf("%w: %d window coefficients for window size %d",
			ErrInvalidConfiguration, len(cfg.coeffs), windowSize)
	}

	win := make([]F, windowSize)
	for i, c := range cfg.coeffs {
		win[i] = F(c)
	}

	return win, nil
}

// WindowSize returns the number of samples per column.
func (s *STFTT[F, C]) WindowSize() int { return s.windowSize }

// StepSize returns the number of samples dropped by MoveToNextColumn.
func (s *STFTT[F, C]) StepSize() int { return s.stepSize }

// FFTSize returns the transform length.
func (s *STFTT[F, C]) FFTSize() int { return s.fftSize }

// OutputSize returns the column length, fftSize/2.
func (s *STFTT[F, C]) OutputSize() int { return s.fftSize / 2 }

// Len returns the number of buffered samples.
func (s *STFTT[F, C]) Len() int { return s.ring.Len() }

// Window returns a copy of the window coefficients, or nil for a
// rectangular window.
func (s *STFTT[F, C]) Window() []F {
	if s.window == nil {
		return nil
	}

	return append([]F(nil), s.window...)
}

// AppendSamples buffers samples. The buffer is unbounded; callers keep it
// small by computing and advancing regularly.
func (s *STFTT[F, C]) AppendSamples(samples []F) {
	s.ring.PushBack(samples...)
}

// CanCompute reports whether at least windowSize samples are buffered.
func (s *STFTT[F, C]) CanCompute() bool {
	return s.ring.Len() >= s.windowSize
}

// ComputeComplexColumn writes the lower half of the spectrum of the current
// window into out. len(out) must equal OutputSize().
func (s *STFTT[F, C]) ComputeComplexColumn(out []C) error {
	if err := s.computeSpectrum(len(out)); err != nil {
		return err
	}

	copy(out, s.spectrum[:len(out)])

	return nil
}

// ComputeMagnitudeColumn writes |X[k]| of the current window into out.
// len(out) must equal OutputSize().
func (s *STFTT[F, C]) ComputeMagnitudeColumn(out []F) error {
	if err := s.computeSpectrum(len(out)); err != nil {
		return err
	}

	spectrum.MagnitudeTo(out, s.spectrum[:len(out)])

	return nil
}

// ComputeColumn writes log10(|X[k]|) of the current window into out, with
// negative logarithms clamped to 0 (see spectrum.Log10Positive).
// len(out) must equal OutputSize().
func (s *STFTT[F, C]) ComputeColumn(out []F) error {
	if err := s.ComputeMagnitudeColumn(out); err != nil {
		return err
	}

	spectrum.Log10PositiveInPlace(out)

	return nil
}

// computeSpectrum fills s.spectrum with the transform of the current,
// windowed and zero-padded frame. Buffered samples are left in place.
func (s *STFTT[F, C]) computeSpectrum(outLen int) error {
	if !s.CanCompute() {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientSamples, s.ring.Len(), s.windowSize)
	}

	if outLen != s.OutputSize() {
		return fmt.Errorf("%w: expected %d bins, got %d", ErrSizeMismatch, s.OutputSize(), outLen)
	}

	if err := s.ring.PeekFront(s.real); err != nil {
		return err
	}

	if s.window != nil {
		if err := window.ApplyInPlaceT(s.real, s.window); err != nil {
			return err
		}
	}

	for i, v := range s.real {
		s.spectrum[i] = toComplex[F, C](v)
	}

	for i := s.windowSize; i < s.fftSize; i++ {
		s.spectrum[i] = 0
	}

	return s.transform.Forward(s.spectrum, s.scratch)
}

// MoveToNextColumn drops stepSize samples from the front of the buffer.
// If fewer are buffered, all of them are dropped.
func (s *STFTT[F, C]) MoveToNextColumn() {
	s.ring.DropFront(s.stepSize)
}

// Reset discards all buffered samples.
func (s *STFTT[F, C]) Reset() {
	s.ring.Reset()
}

// Columns appends samples and passes every column that can then be
// computed to fn, advancing after each one. The slice handed to fn is
// reused between calls. If fn returns an error, iteration stops without
// advancing past that column.
func (s *STFTT[F, C]) Columns(samples []F, fn func(column []F) error) error {
	s.AppendSamples(samples)

	for s.CanCompute() {
		if err := s.ComputeColumn(s.column); err != nil {
			return err
		}

		if err := fn(s.column); err != nil {
			return err
		}

		s.MoveToNextColumn()
	}

	return nil
}

// Freqs returns the frequency in Hz of each output bin, spaced linearly
// from 0 to sampleRate/2.
func (s *STFTT[F, C]) Freqs(sampleRate float64) []float64 {
	n := s.OutputSize()
	freqs := make([]float64, n)
	if n < 2 {
		return freqs
	}

	nyquist := sampleRate / 2
	for k := range freqs {
		freqs[k] = float64(k) / float64(n-1) * nyquist
	}

	return freqs
}

// FirstTime returns the time in seconds at the center of the first column.
func (s *STFTT[F, C]) FirstTime(sampleRate float64) float64 {
	return float64(s.windowSize) / (2 * sampleRate)
}

// TimeInterval returns the time in seconds between consecutive columns.
func (s *STFTT[F, C]) TimeInterval(sampleRate float64) float64 {
	return float64(s.stepSize) / sampleRate
}

func toComplex[F algofft.Float, C algofft.Complex](v F) C {
	return C(complex(float64(v), 0))
}
