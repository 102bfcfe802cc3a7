package spectrum

import (
	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/dsp/cvec"
)

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	cvec.Magnitude(out, in)
	return out
}

// MagnitudeInto computes |X[k]| into dst. dst and in must have the same length.
func MagnitudeInto(dst []float64, in []complex128) {
	cvec.Magnitude(dst, in)
}

// PeakToSum returns the index of the largest magnitude and the quality
// criterion mag[peak] / sum(mag).
//
// A spectrum whose energy sits in one bin scores 1; white noise scores close
// to 1/len(mag). An all-zero spectrum returns index 0 and ratio 0.
func PeakToSum(mag []float64) (int, float64) {
	if len(mag) == 0 {
		return 0, 0
	}

	peak := cvec.IndexMax(mag)

	sum := cvec.SumReal(mag)
	if sum <= 0 {
		return peak, 0
	}

	return peak, mag[peak] / sum
}

// SuppressAround zeroes mag[center] and every bin within halfWidth of it,
// wrapping around both ends of the spectrum. Both edges are inclusive, so
// 2*halfWidth+1 bins are cleared; a window that covers the whole spectrum
// clears it.
func SuppressAround(mag []float64, center, halfWidth int) {
	n := len(mag)
	if n == 0 {
		return
	}

	if 2*halfWidth+1 >= n {
		clear(mag)
		return
	}

	for i := -halfWidth; i <= halfWidth; i++ {
		mag[core.WrapIndex(center+i, n)] = 0
	}
}
