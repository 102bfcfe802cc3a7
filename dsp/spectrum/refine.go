package spectrum

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/dsp/cvec"
)

// Refiner locates a spectral peak to a fraction of an FFT bin.
//
// Around a coarse bin k it evaluates the DFT of a complex block at
// k + j/subdivisions for a symmetric set of j with one Goertzel pass per
// point and per real/imaginary part, and reports the offset of the strongest
// point. This costs O(points*n) instead of an FFT oversampled by
// subdivisions.
type Refiner struct {
	n            int
	subdivisions int
	points       int

	re, im []float64
	mag    []float64
	bins   []complex128
	gRe    *Goertzel
	gIm    *Goertzel
}

// NewRefiner creates a refiner for blocks of n samples. An even subdivisions
// value is bumped to the next odd number so the search grid is centred on the
// coarse bin.
func NewRefiner(n, subdivisions int) (*Refiner, error) {
	if n <= 0 {
		return nil, fmt.Errorf("refiner: block length must be > 0: %d", n)
	}
	if subdivisions < 1 {
		return nil, fmt.Errorf("refiner: subdivisions must be >= 1: %d", subdivisions)
	}

	points := subdivisions
	if points%2 == 0 {
		points++
	}

	rate := float64(n * subdivisions)

	gRe, err := NewGoertzel(0, rate)
	if err != nil {
		return nil, err
	}
	gIm, err := NewGoertzel(0, rate)
	if err != nil {
		return nil, err
	}

	return &Refiner{
		n:            n,
		subdivisions: subdivisions,
		points:       points,
		re:           make([]float64, n),
		im:           make([]float64, n),
		mag:          make([]float64, points),
		bins:         make([]complex128, points),
		gRe:          gRe,
		gIm:          gIm,
	}, nil
}

// Points returns the number of evaluated frequencies.
func (r *Refiner) Points() int { return r.points }

// Subdivisions returns the configured refinement factor.
func (r *Refiner) Subdivisions() int { return r.subdivisions }

// Refine returns the fractional bin offset in [-0.5, 0.5] of the strongest
// component of samples near roughBin. samples must hold n values.
func (r *Refiner) Refine(roughBin int, samples []complex128) (float64, error) {
	if len(samples) != r.n {
		return 0, fmt.Errorf("refiner: got %d samples, want %d", len(samples), r.n)
	}

	cvec.Deinterleave(r.re, r.im, samples)

	return r.RefineParts(roughBin, r.re, r.im)
}

// RefineParts is Refine for samples already split into real and imaginary
// sequences.
func (r *Refiner) RefineParts(roughBin int, re, im []float64) (float64, error) {
	if len(re) != r.n || len(im) != r.n {
		return 0, fmt.Errorf("refiner: got %d/%d samples, want %d", len(re), len(im), r.n)
	}

	if r.points == 1 {
		return 0, nil
	}

	grid := r.n * r.subdivisions
	centre := (r.points - 1) / 2

	for i := range r.points {
		d := core.WrapIndex(r.subdivisions*roughBin-centre+i, grid)

		if err := r.gRe.SetFrequency(float64(d)); err != nil {
			return 0, err
		}
		if err := r.gIm.SetFrequency(float64(d)); err != nil {
			return 0, err
		}

		r.gRe.Reset()
		r.gIm.Reset()
		r.gRe.ProcessBlock(re)
		r.gIm.ProcessBlock(im)

		r.bins[i] = r.gRe.Bin() + complex(0, 1)*r.gIm.Bin()
		r.mag[i] = cmplx.Abs(r.bins[i])
	}

	best := cvec.IndexMax(r.mag)

	return float64(best-centre) / float64(r.subdivisions), nil
}
