package core

import (
	"math"
	"math/cmplx"
)

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// CmplxNearlyEqual reports whether |a-b| <= eps (absolute tolerance).
func CmplxNearlyEqual(a, b complex128, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	return cmplx.Abs(a-b) <= eps
}

// WrapPhase maps an angle in radians onto (-pi, pi].
func WrapPhase(phi float64) float64 {
	if phi > -math.Pi && phi <= math.Pi {
		return phi
	}

	r := math.Mod(phi+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}

	return r - math.Pi
}

// WrapIndex returns i modulo n in [0, n). n must be > 0.
func WrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}

	return i
}

// SignedBin converts an FFT bin index in [0, n) to a signed bin. Indices
// above n/2 map to negative frequencies.
func SignedBin(idx, n int) int {
	if idx > n/2 {
		return idx - n
	}

	return idx
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
