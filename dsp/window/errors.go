package window

import "errors"

var (
	// ErrUnrecognizedName is returned by Parse for unknown window names.
	ErrUnrecognizedName = errors.New("window: unrecognized window name")

	// ErrMismatchedLength is returned when samples and coefficients differ in length.
	ErrMismatchedLength = errors.New("window: samples and coefficients must have same length")

	errEmptyCoeffs      = errors.New("window: coefficients must not be empty")
	errZeroCoherentGain = errors.New("window: coherent gain is zero")
)
