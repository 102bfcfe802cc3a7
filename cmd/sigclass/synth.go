package main

import (
	"math"
	"math/cmplx"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

// constellation returns unit-power symbol points for m.
func constellation(m modclass.Modulation) []complex128 {
	switch m {
	case modclass.BPSK:
		return []complex128{1, -1}
	case modclass.QPSK:
		return psk(4, math.Pi/4)
	case modclass.PSK8:
		return psk(8, 0)
	default:
		levels := []float64{-3, -1, 1, 3}
		scale := 1 / math.Sqrt(10)
		pts := make([]complex128, 0, 16)
		for _, i := range levels {
			for _, q := range levels {
				pts = append(pts, complex(i*scale, q*scale))
			}
		}
		return pts
	}
}

func psk(m int, offset float64) []complex128 {
	pts := make([]complex128, m)
	for k := range pts {
		pts[k] = cmplx.Exp(complex(0, offset+2*math.Pi*float64(k)/float64(m)))
	}
	return pts
}

// pulseDepth is the depth of the symbol-rate amplitude ripple.
const pulseDepth = 0.25

// synthesize generates length samples of random symbols from m, each held
// for sps samples, on a carrier at offset cycles/sample, plus complex
// Gaussian noise of the given deviation.
//
// Every symbol is shaped by 1 + pulseDepth*cos(2*pi*k/sps). The ripple puts
// symbol-rate lines next to the carrier line of the powered signal while
// keeping |C40| close to its symbol-spaced value. Mean signal power is 1.
func synthesize(m modclass.Modulation, cfg synthConfig, length int) []complex128 {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	points := constellation(m)

	pulse := make([]float64, cfg.SPS)
	var energy float64
	for k := range pulse {
		pulse[k] = 1 + pulseDepth*math.Cos(2*math.Pi*float64(k)/float64(cfg.SPS))
		energy += pulse[k] * pulse[k]
	}
	floats.Scale(math.Sqrt(float64(cfg.SPS)/energy), pulse)

	out := make([]complex128, length)
	var sym complex128
	for n := range out {
		k := n % cfg.SPS
		if k == 0 {
			sym = points[rng.IntN(len(points))]
		}
		carrier := cmplx.Exp(complex(0, 2*math.Pi*cfg.Offset*float64(n)))
		out[n] = complex(pulse[k], 0) * sym * carrier
		if cfg.Noise > 0 {
			out[n] += complex(rng.NormFloat64()*cfg.Noise, rng.NormFloat64()*cfg.Noise)
		}
	}
	return out
}
