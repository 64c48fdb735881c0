// Package fft adapts FFT backends to the in-place Transformer contract used
// by the streaming STFT.
//
// The package does not implement an FFT itself. NewPlan wraps an algo-fft
// plan for either precision; NewFourier wraps gonum's complex FFT, which
// writes into a caller-supplied scratch buffer before the result is copied
// back in place.
package fft
