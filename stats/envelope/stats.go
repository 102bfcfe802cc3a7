// Package envelope computes amplitude statistics of complex baseband blocks.
//
// Constant-modulus signals (PSK) have a flat envelope with zero variance,
// while QAM and pulse-shaped signals show a spread envelope and a higher
// peak-to-average power ratio. The statistics are reported next to the
// classifier decision as a cross-check.
package envelope

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-cbmc/dsp/core"
)

// Stats holds envelope statistics of a complex signal.
//
//nolint:revive
type Stats struct {
	Length   int
	DC       complex128 // complex mean
	DC_dB    float64
	RMS      float64
	RMS_dB   float64
	Peak     float64 // max |x|
	PeakPos  int
	PAPR     float64 // peak power / mean power (linear)
	PAPR_dB  float64
	Energy   float64 // sum of |x|^2
	Power    float64 // energy / length
	Power_dB float64

	// Moments of |x|.
	EnvelopeMean     float64
	EnvelopeVariance float64
	EnvelopeSkewness float64
	EnvelopeKurtosis float64 // excess
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:    math.Inf(-1),
		RMS_dB:   math.Inf(-1),
		PAPR_dB:  math.Inf(-1),
		Power_dB: math.Inf(-1),
	}
}

// moments is a Welford accumulator for the first four moments.
type moments struct {
	n          int
	mean       float64
	m2, m3, m4 float64
}

func (m *moments) add(x float64) {
	i := m.n
	m.n++

	ni := float64(m.n)
	delta := x - m.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(i)

	// M4 must be updated before M3, and M3 before M2.
	m.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m.m2 - 4*deltaN*m.m3
	m.m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m.m2
	m.m2 += term1
	m.mean += deltaN
}

func (m *moments) result() (mean, variance, skewness, kurtosis float64) {
	if m.n == 0 {
		return 0, 0, 0, 0
	}

	nf := float64(m.n)

	variance = m.m2 / nf
	if variance > 0 {
		skewness = (m.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m.m4/nf)/(variance*variance) - 3
	}

	return m.mean, variance, skewness, kurtosis
}

// Calculate computes all statistics of block in a single pass.
func Calculate(block []complex128) Stats {
	s := NewStreamingStats()
	s.Update(block)
	return s.Result()
}

// PAPR returns the peak-to-average power ratio of block, or 0 for a
// zero-power block.
func PAPR(block []complex128) float64 {
	var peak, sumSq float64
	for _, x := range block {
		p := real(x)*real(x) + imag(x)*imag(x)
		sumSq += p
		if p > peak {
			peak = p
		}
	}

	if sumSq == 0 {
		return 0
	}

	return peak * float64(len(block)) / sumSq
}

// StreamingStats accumulates envelope statistics across consecutive blocks.
// Results are identical to Calculate over the concatenated samples.
type StreamingStats struct {
	env     moments
	sum     complex128
	sumSq   float64
	peak    float64
	peakPos int
}

// NewStreamingStats returns an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds samples to the accumulator.
func (s *StreamingStats) Update(samples []complex128) {
	for _, x := range samples {
		a := cmplx.Abs(x)
		if a > s.peak {
			s.peak = a
			s.peakPos = s.env.n
		}
		s.env.add(a)
		s.sum += x
		s.sumSq += real(x)*real(x) + imag(x)*imag(x)
	}
}

// Result returns the statistics of all samples seen so far.
func (s *StreamingStats) Result() Stats {
	n := s.env.n
	if n == 0 {
		return emptyStats()
	}

	nf := float64(n)
	power := s.sumSq / nf
	rms := math.Sqrt(power)
	dc := s.sum / complex(nf, 0)

	var papr, paprdB float64
	if power > 0 {
		papr = s.peak * s.peak / power
		paprdB = core.LinearPowerToDB(papr)
	}

	mean, variance, skewness, kurtosis := s.env.result()

	return Stats{
		Length:           n,
		DC:               dc,
		DC_dB:            ampTodB(cmplx.Abs(dc)),
		RMS:              rms,
		RMS_dB:           ampTodB(rms),
		Peak:             s.peak,
		PeakPos:          s.peakPos,
		PAPR:             papr,
		PAPR_dB:          paprdB,
		Energy:           s.sumSq,
		Power:            power,
		Power_dB:         core.LinearPowerToDB(power),
		EnvelopeMean:     mean,
		EnvelopeVariance: variance,
		EnvelopeSkewness: skewness,
		EnvelopeKurtosis: kurtosis,
	}
}

// Reset clears the accumulator.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
