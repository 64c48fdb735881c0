// Package stft computes a short-time Fourier transform over streaming data.
//
// Samples arrive in chunks of any size. The engine buffers them and, once a
// full window is available, computes one spectral column: the first
// window-size samples are tapered by the analysis window, zero-padded to the
// FFT size, transformed, and reduced to the lower half of the spectrum.
// Computing never consumes input; MoveToNextColumn drops exactly step-size
// samples, which produces the overlap between consecutive columns.
//
// # Usage
//
//	s, err := stft.New(window.Hanning, 1024, 512)
//	if err != nil {
//		return err
//	}
//	column := make([]float64, s.OutputSize())
//
//	for chunk := range chunks {
//		s.AppendSamples(chunk)
//		for s.CanCompute() {
//			if err := s.ComputeColumn(column); err != nil {
//				return err
//			}
//			// use column
//			s.MoveToNextColumn()
//		}
//	}
//
// [STFTT.Columns] wraps the inner loop.
//
// # Precision
//
// [STFTT] is generic over the sample and bin types. [STFT] is the float64
// specialization and [STFT32] the float32 one.
//
// # Zero-padding
//
// NewWithZeroPadding transforms windowSize samples followed by
// fftSize-windowSize zeros, which interpolates the spectrum onto fftSize/2
// bins without adding information.
//
// # Transform sizes
//
// Power-of-two FFT sizes use algo-fft. Other sizes use gonum's mixed-radix
// transform, which is only available for the float64 engine; a float32
// engine with such a size fails with ErrInvalidConfiguration.
//
// An engine is not safe for concurrent use. Use one engine per stream.
package stft
