package cvec

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-cbmc/dsp/buffer"
)

func checkLen(op string, dst, src []complex128) {
	if len(dst) != len(src) {
		panic("cvec: " + op + ": length mismatch")
	}
}

// Square computes dst[i] = src[i]^2.
func Square(dst, src []complex128) {
	checkLen("Square", dst, src)
	for i, x := range src {
		dst[i] = x * x
	}
}

// Conj computes dst[i] = conj(src[i]).
func Conj(dst, src []complex128) {
	checkLen("Conj", dst, src)
	for i, x := range src {
		dst[i] = complex(real(x), -imag(x))
	}
}

// Mul computes dst[i] = a[i] * b[i].
func Mul(dst, a, b []complex128) {
	checkLen("Mul", dst, a)
	checkLen("Mul", a, b)
	for i := range a {
		dst[i] = a[i] * b[i]
	}
}

// MulConj computes dst[i] = a[i] * conj(b[i]).
func MulConj(dst, a, b []complex128) {
	checkLen("MulConj", dst, a)
	checkLen("MulConj", a, b)
	for i := range a {
		y := b[i]
		dst[i] = a[i] * complex(real(y), -imag(y))
	}
}

// Scale computes dst[i] = src[i] * s.
func Scale(dst, src []complex128, s complex128) {
	checkLen("Scale", dst, src)
	for i, x := range src {
		dst[i] = x * s
	}
}

// Rotate computes dst[i] = src[i] * exp(i*phi).
func Rotate(dst, src []complex128, phi float64) {
	sin, cos := math.Sincos(phi)
	Scale(dst, src, complex(cos, sin))
}

// Sum returns the complex sum of x.
func Sum(x []complex128) complex128 {
	var acc complex128
	for _, v := range x {
		acc += v
	}
	return acc
}

// Mean returns Sum(x)/len(x). An empty slice yields 0.
func Mean(x []complex128) complex128 {
	if len(x) == 0 {
		return 0
	}
	return Sum(x) / complex(float64(len(x)), 0)
}

// Energy returns sum |x[i]|^2.
func Energy(x []complex128) float64 {
	var acc float64
	for _, v := range x {
		acc += real(v)*real(v) + imag(v)*imag(v)
	}
	return acc
}

// Deinterleave splits src into its real and imaginary parts.
func Deinterleave(re, im []float64, src []complex128) {
	if len(re) != len(src) || len(im) != len(src) {
		panic("cvec: Deinterleave: length mismatch")
	}
	for i, x := range src {
		re[i] = real(x)
		im[i] = imag(x)
	}
}

var scratchPool = buffer.NewPool[float64]()

// Magnitude computes dst[i] = |src[i]|.
func Magnitude(dst []float64, src []complex128) {
	if len(dst) != len(src) {
		panic("cvec: Magnitude: length mismatch")
	}
	if len(src) == 0 {
		return
	}

	n := len(src)
	buf := scratchPool.Get(2 * n)
	re, im := buf.Samples()[:n], buf.Samples()[n:]

	Deinterleave(re, im, src)
	vecmath.Magnitude(dst, re, im)
	scratchPool.Put(buf)
}

// SumReal returns the sum of x.
func SumReal(x []float64) float64 {
	return floats.Sum(x)
}

// IndexMax returns the index of the largest value in x. Ties resolve to the
// lowest index. It panics on an empty slice.
func IndexMax(x []float64) int {
	return floats.MaxIdx(x)
}

// MaxAbs returns the largest real or imaginary magnitude in x. It is NaN or
// +Inf when x holds a non-finite component, and 0 for an empty slice.
func MaxAbs(x []complex128) float64 {
	var peak float64
	for _, v := range x {
		peak = math.Max(peak, math.Max(math.Abs(real(v)), math.Abs(imag(v))))
	}
	return peak
}

// Ldexp computes dst[i] = src[i] * 2^exp. The scaling is exact unless a
// component leaves the normal range.
func Ldexp(dst, src []complex128, exp int) {
	checkLen("Ldexp", dst, src)
	for i, x := range src {
		dst[i] = complex(math.Ldexp(real(x), exp), math.Ldexp(imag(x), exp))
	}
}

// Normalize writes src scaled by a power of two into dst so that MaxAbs(dst)
// lies in [0.5, 1), keeping eighth powers in range. It returns the peak of
// src; when the peak is 0 or non-finite dst is left untouched.
func Normalize(dst, src []complex128) float64 {
	checkLen("Normalize", dst, src)
	peak := MaxAbs(src)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return peak
	}
	_, exp := math.Frexp(peak)
	Ldexp(dst, src, -exp)
	return peak
}
