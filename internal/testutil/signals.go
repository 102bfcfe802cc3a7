package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"
)

// Constellations with unit average power.
var (
	BPSK = []complex128{1, -1}
	QPSK = []complex128{
		complex(math.Sqrt2/2, math.Sqrt2/2),
		complex(-math.Sqrt2/2, math.Sqrt2/2),
		complex(-math.Sqrt2/2, -math.Sqrt2/2),
		complex(math.Sqrt2/2, -math.Sqrt2/2),
	}
	PSK8  = pskPoints(8)
	QAM16 = qam16Points()
)

func pskPoints(m int) []complex128 {
	out := make([]complex128, m)
	for k := range out {
		out[k] = cmplx.Exp(complex(0, 2*math.Pi*float64(k)/float64(m)))
	}
	return out
}

func qam16Points() []complex128 {
	levels := []float64{-3, -1, 1, 3}
	scale := 1 / math.Sqrt(10)
	out := make([]complex128, 0, 16)
	for _, i := range levels {
		for _, q := range levels {
			out = append(out, complex(i*scale, q*scale))
		}
	}
	return out
}

// DeterministicSine generates a deterministic real sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Tone generates amplitude*exp(i*(2*pi*freq*n + phase)) with freq in
// cycles/sample.
func Tone(freq, amplitude, phase float64, length int) []complex128 {
	out := make([]complex128, length)
	for n := range out {
		out[n] = complex(amplitude, 0) * cmplx.Exp(complex(0, 2*math.Pi*freq*float64(n)+phase))
	}
	return out
}

// EnvelopeTone generates a unit tone at freq whose amplitude is modulated by
// 1 + depth*cos(2*pi*n/period). Squaring it produces spectral lines spaced
// len/period bins apart, the signature of a symbol rate of period samples.
func EnvelopeTone(freq, depth, period float64, length int) []complex128 {
	out := Tone(freq, 1, 0, length)
	for n := range out {
		out[n] *= complex(1+depth*math.Cos(2*math.Pi*float64(n)/period), 0)
	}
	return out
}

// CyclicSymbols repeats the constellation points in order, rotated by phase.
// When length is a multiple of len(points) every symbol appears equally
// often, so sample moments match the constellation moments exactly.
func CyclicSymbols(points []complex128, phase float64, length int) []complex128 {
	rot := cmplx.Exp(complex(0, phase))
	out := make([]complex128, length)
	for n := range out {
		out[n] = points[n%len(points)] * rot
	}
	return out
}

// RandomSymbols draws symbols uniformly from points with a fixed seed.
func RandomSymbols(seed int64, points []complex128, phase float64, length int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	rot := cmplx.Exp(complex(0, phase))
	out := make([]complex128, length)
	for n := range out {
		out[n] = points[rng.Intn(len(points))] * rot
	}
	return out
}

// DeterministicNoise generates complex Gaussian noise with the given
// per-component standard deviation and a fixed seed.
func DeterministicNoise(seed int64, sigma float64, length int) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, length)
	for n := range out {
		out[n] = complex(rng.NormFloat64()*sigma, rng.NormFloat64()*sigma)
	}
	return out
}

// Add returns a + b element-wise. The slices must have equal length.
func Add(a, b []complex128) []complex128 {
	out := make([]complex128, len(a))
	for n := range a {
		out[n] = a[n] + b[n]
	}
	return out
}
