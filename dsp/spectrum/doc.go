// Package spectrum provides the spectral primitives used for blind carrier
// and symbol-rate estimation.
//
// It wraps a forward complex FFT (algo-fft, with a gonum fallback for sizes
// algo-fft does not plan), magnitude spectra and the peak-to-sum quality
// criterion, a Goertzel single-bin DFT and a Goertzel-based sub-bin
// frequency refiner.
package spectrum
