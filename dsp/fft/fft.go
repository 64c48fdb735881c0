package fft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by transformers.
var (
	ErrInvalidSize    = errors.New("fft: invalid transform size")
	ErrLengthMismatch = errors.New("fft: buffer length mismatch")
)

// Transformer is a forward transform of fixed size operating in place.
type Transformer[C algofft.Complex] interface {
	// Len returns the transform size.
	Len() int
	// ScratchLen returns the minimum scratch length Forward requires.
	ScratchLen() int
	// Forward transforms buf in place. len(buf) must equal Len() and
	// len(scratch) must be at least ScratchLen().
	Forward(buf, scratch []C) error
}

// Plan is a Transformer backed by an algo-fft plan. The plan keeps its own
// workspace, so no scratch is required.
type Plan[C algofft.Complex] struct {
	n    int
	plan *algofft.Plan[C]
}

// NewPlan creates an algo-fft backed transformer of size n. n must be a
// power of two.
func NewPlan[C algofft.Complex](n int) (*Plan[C], error) {
	if !IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidSize, n)
	}

	plan, err := algofft.NewPlanT[C](n)
	if err != nil {
		return nil, fmt.Errorf("fft: failed to create plan of size %d: %w", n, err)
	}

	return &Plan[C]{n: n, plan: plan}, nil
}

// PlanFactory returns NewPlan as a Transformer factory.
func PlanFactory[C algofft.Complex]() func(n int) (Transformer[C], error) {
	return func(n int) (Transformer[C], error) {
		p, err := NewPlan[C](n)
		if err != nil {
			return nil, err
		}

		return p, nil
	}
}

// DefaultFactory returns the transformer factory used when none is
// configured. Power-of-two sizes get an algo-fft plan. Other sizes fall back
// to gonum for complex128 and are rejected for complex64.
func DefaultFactory[C algofft.Complex]() func(n int) (Transformer[C], error) {
	plan := PlanFactory[C]()
	fallback, hasFallback := any(FourierFactory).(func(n int) (Transformer[C], error))

	return func(n int) (Transformer[C], error) {
		if IsPowerOf2(n) {
			return plan(n)
		}

		if !hasFallback || n <= 0 {
			return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidSize, n)
		}

		return fallback(n)
	}
}

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// Len returns the transform size.
func (p *Plan[C]) Len() int { return p.n }

// ScratchLen returns 0.
func (p *Plan[C]) ScratchLen() int { return 0 }

// Forward transforms buf in place.
func (p *Plan[C]) Forward(buf, _ []C) error {
	if len(buf) != p.n {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, p.n, len(buf))
	}

	if err := p.plan.Forward(buf, buf); err != nil {
		return fmt.Errorf("fft: forward transform failed: %w", err)
	}

	return nil
}

// Fourier is a complex128 Transformer backed by gonum's CmplxFFT.
type Fourier struct {
	fft *fourier.CmplxFFT
}

// NewFourier creates a gonum backed transformer of size n.
func NewFourier(n int) (*Fourier, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	return &Fourier{fft: fourier.NewCmplxFFT(n)}, nil
}

// FourierFactory builds a Fourier transformer; it has the signature
// expected by the STFT transformer option.
func FourierFactory(n int) (Transformer[complex128], error) {
	f, err := NewFourier(n)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Len returns the transform size.
func (f *Fourier) Len() int { return f.fft.Len() }

// ScratchLen returns the transform size; coefficients are computed into
// scratch and copied back.
func (f *Fourier) ScratchLen() int { return f.fft.Len() }

// Forward transforms buf in place using scratch as the output workspace.
func (f *Fourier) Forward(buf, scratch []complex128) error {
	n := f.fft.Len()
	if len(buf) != n {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, n, len(buf))
	}

	if len(scratch) < n {
		return fmt.Errorf("%w: scratch needs %d, got %d", ErrLengthMismatch, n, len(scratch))
	}

	out := f.fft.Coefficients(scratch[:n], buf)
	copy(buf, out)

	return nil
}
