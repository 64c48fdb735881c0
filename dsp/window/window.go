package window

import (
	"fmt"
	"math"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Type identifies an apodization window used for STFT framing.
type Type int

const (
	Hanning Type = iota
	Hamming
	Blackman
	Nuttall
	// None selects the rectangular window: no coefficients are generated
	// and samples are used as-is.
	None
)

var types = []Type{Hanning, Hamming, Blackman, Nuttall, None}

var names = map[Type]string{
	Hanning:  "Hanning",
	Hamming:  "Hamming",
	Blackman: "Blackman",
	Nuttall:  "Nuttall",
	None:     "None",
}

var aliases = map[string]Type{
	"hanning":  Hanning,
	"hann":     Hanning,
	"hamming":  Hamming,
	"blackman": Blackman,
	"nuttall":  Nuttall,
	"none":     None,
}

// Cosine-sum terms with alternating signs folded in:
//
//	w(x) = sum_k c[k] * cos(2*pi*k*x), x in [0, 1]
var (
	hanningCoeffs  = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	nuttallCoeffs  = []float64{0.355768, -0.487396, 0.144232, -0.012604}
)

// Values returns every window type in declaration order.
func Values() []Type {
	return append([]Type(nil), types...)
}

// String returns the canonical name of t.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared window types.
func (t Type) Valid() bool {
	_, ok := names[t]
	return ok
}

// Parse resolves a window name. Matching is case-insensitive and accepts
// "hann" as an alias for Hanning.
func Parse(s string) (Type, error) {
	if t, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}

	return None, fmt.Errorf("%w: %q", ErrUnrecognizedName, s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("window: cannot marshal %s", t)
	}

	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// Set implements pflag.Value so a Type can be bound directly to a flag.
func (t *Type) Set(s string) error {
	return t.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (t *Type) Type() string { return "window" }

// Generate returns symmetric window coefficients of the given length.
//
// It returns nil for None and for non-positive lengths. A single-sample
// window is [1].
func Generate(t Type, length int) []float64 {
	coeffs := coefficientsFor(t)
	if coeffs == nil || length <= 0 {
		return nil
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	den := float64(length - 1)
	for i := range out {
		out[i] = cosineFromCoeffs(float64(i)/den, coeffs)
	}

	return out
}

// GenerateT returns Generate's coefficients converted to precision F.
func GenerateT[F algofft.Float](t Type, length int) []F {
	coeffs := Generate(t, length)
	if coeffs == nil {
		return nil
	}

	out := make([]F, len(coeffs))
	for i, c := range coeffs {
		out[i] = F(c)
	}

	return out
}

// ApplyInPlace multiplies samples with coefficients in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// ApplyInPlaceT is the generic form of ApplyInPlace. float64 slices take
// the vectorized path.
func ApplyInPlaceT[F algofft.Float](samples, coeffs []F) error {
	if len(samples) != len(coeffs) {
		return ErrMismatchedLength
	}

	if s, ok := any(samples).([]float64); ok {
		vecmath.MulBlockInPlace(s, any(coeffs).([]float64))
		return nil
	}

	for i := range samples {
		samples[i] *= coeffs[i]
	}

	return nil
}

// Metadata holds spectral properties of a window type at a given length.
type Metadata struct {
	Name         string
	CoherentGain float64
	ENBW         float64
}

// Info returns coherent gain and equivalent noise bandwidth of t at the
// given length. Rectangular (None) reports a gain of 1 and 1 bin.
func Info(t Type, length int) (Metadata, error) {
	m := Metadata{Name: t.String()}
	if length <= 0 {
		return m, fmt.Errorf("window: length must be > 0: %d", length)
	}

	if t == None {
		m.CoherentGain = 1
		m.ENBW = 1

		return m, nil
	}

	coeffs := Generate(t, length)
	if coeffs == nil {
		return m, fmt.Errorf("%w: %s", ErrUnrecognizedName, t)
	}

	enbw, err := EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return m, err
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	m.CoherentGain = sum / float64(len(coeffs))
	m.ENBW = enbw

	return m, nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func coefficientsFor(t Type) []float64 {
	switch t {
	case Hanning:
		return hanningCoeffs
	case Hamming:
		return hammingCoeffs
	case Blackman:
		return blackmanCoeffs
	case Nuttall:
		return nuttallCoeffs
	default:
		return nil
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}
