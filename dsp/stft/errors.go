package stft

import "errors"

// Errors returned by the STFT engine.
var (
	ErrInvalidConfiguration = errors.New("stft: invalid configuration")
	ErrInsufficientSamples  = errors.New("stft: not enough samples to compute a column")
	ErrSizeMismatch         = errors.New("stft: output buffer size mismatch")
)
