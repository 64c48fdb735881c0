// Package spectrum provides helpers that derive real-valued spectra from
// complex transform bins and summarize spectrogram columns.
//
// The package does not implement an FFT. It operates on bins produced by
// the backends in package fft.
package spectrum
