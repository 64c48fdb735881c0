package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Log10Positive returns log10(v), or 0 when that logarithm is negative.
//
// Values in [0, 1) therefore map to 0. NaN is not negative and is returned
// unchanged, so a NaN magnitude (or a negative argument) stays visible.
func Log10Positive[F algofft.Float](v F) F {
	l := F(math.Log10(float64(v)))
	if l < 0 {
		return 0
	}
	return l
}

// MagnitudeTo writes |src[k]| into dst. min(len(dst), len(src)) bins are
// converted.
//
// float64/complex128 input is de-interleaved into pooled scratch and goes
// through the SIMD magnitude kernel.
func MagnitudeTo[F algofft.Float, C algofft.Complex](dst []F, src []C) {
	n := min(len(dst), len(src))
	if n == 0 {
		return
	}

	if d, ok := any(dst).([]float64); ok {
		if s, ok := any(src).([]complex128); ok {
			re, im, buf := getScratch(n)
			for i, c := range s[:n] {
				re[i] = real(c)
				im[i] = imag(c)
			}
			vecmath.Magnitude(d[:n], re, im)
			scratchPool.Put(buf)
			return
		}
	}

	for i := range n {
		dst[i] = F(cmplx.Abs(complex128(src[i])))
	}
}

// Log10PositiveInPlace replaces each value with Log10Positive(value).
func Log10PositiveInPlace[F algofft.Float](values []F) {
	for i, v := range values {
		values[i] = Log10Positive(v)
	}
}

// Peak returns the index and value of the largest bin. An empty column
// yields (-1, NaN).
func Peak(column []float64) (int, float64) {
	if len(column) == 0 {
		return -1, math.NaN()
	}
	i := floats.MaxIdx(column)
	return i, column[i]
}

// Centroid returns the weight-averaged frequency of column over the
// matching frequency axis. An all-zero column, or mismatched lengths, yield 0.
func Centroid(column, freqs []float64) float64 {
	if len(column) == 0 || len(column) != len(freqs) {
		return 0
	}
	total := floats.Sum(column)
	if total == 0 {
		return 0
	}
	return floats.Dot(column, freqs) / total
}

// Flatness returns the ratio of geometric to arithmetic mean of the
// magnitudes, skipping the DC bin. 1 means white, 0 means tonal or silent.
// Any zero bin makes the geometric mean, and so the result, 0.
func Flatness(column []float64) float64 {
	if len(column) < 2 {
		return 0
	}

	bins := column[1:]
	mean := floats.Sum(bins) / float64(len(bins))
	if mean == 0 {
		return 0
	}

	sumLog := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/float64(len(bins))) / mean
}

// Rolloff returns the frequency below which fraction (0..1) of the column's
// energy, the sum of squared magnitudes, lies. 0.85 is a common choice.
// A silent column, or mismatched lengths, yield 0.
func Rolloff(column, freqs []float64, fraction float64) float64 {
	if len(column) == 0 || len(column) != len(freqs) {
		return 0
	}

	energy := floats.Dot(column, column)
	if energy == 0 {
		return 0
	}

	threshold := fraction * energy
	cum := 0.0
	for i, v := range column {
		cum += v * v
		if cum >= threshold {
			return freqs[i]
		}
	}

	return freqs[len(freqs)-1]
}
