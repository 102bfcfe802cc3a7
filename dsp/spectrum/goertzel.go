//nolint:funcorder
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Goertzel implements the Goertzel algorithm for single-bin frequency analysis.
//
// The Goertzel algorithm is an efficient way to evaluate individual terms
// of the Discrete Fourier Transform (DFT) without computing the entire FFT.
//
// Behavior and Semantics:
//
// The analyzer is stateful and accumulates information from each processed
// sample. Power(), Magnitude() and Bin() evaluate the frequency component
// based on all samples processed since the last Reset().
//
// The target frequency may lie anywhere in [0, sampleRate). Frequencies above
// sampleRate/2 are meaningful when two real sequences are combined into the
// transform of one complex sequence, which is how the refiner uses it.
// Bin() returns the DFT term with the phase reference of a direct DFT
// starting at the first processed sample, so results from the real and
// imaginary parts of a complex block can be combined linearly.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	omega      float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates a new Goertzel analyzer for the target frequency.
//
// frequency must be in [0, sampleRate).
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}

	if err := validateFrequency(frequency, sampleRate); err != nil {
		return nil, err
	}

	g := &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
	}
	g.updateCoeff()

	return g, nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	return nil
}

func validateFrequency(frequency, sampleRate float64) error {
	if frequency < 0 || frequency >= sampleRate || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return fmt.Errorf("goertzel: frequency must be in [0, sampleRate): %v", frequency)
	}
	return nil
}

func (g *Goertzel) updateCoeff() {
	g.omega = 2 * math.Pi * g.frequency / g.sampleRate
	g.coeff = 2 * math.Cos(g.omega)
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.n = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.n++
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns the squared magnitude of the frequency component.
//
// The result is equivalent to |X[k]|^2 from a DFT of the same block length.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the frequency component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Bin returns the complex DFT term sum x[n]*exp(-i*omega*n) over all
// processed samples.
func (g *Goertzel) Bin() complex128 {
	if g.n == 0 {
		return 0
	}

	y := complex(g.s0, 0) - cmplx.Exp(complex(0, -g.omega))*complex(g.s1, 0)

	return y * cmplx.Exp(complex(0, -g.omega*float64(g.n-1)))
}

// SetFrequency updates the target frequency.
func (g *Goertzel) SetFrequency(frequency float64) error {
	if err := validateFrequency(frequency, g.sampleRate); err != nil {
		return err
	}

	g.frequency = frequency
	g.updateCoeff()

	return nil
}

// SetSampleRate updates the sample rate.
func (g *Goertzel) SetSampleRate(sampleRate float64) error {
	if err := validateSampleRate(sampleRate); err != nil {
		return err
	}

	if g.frequency >= sampleRate {
		return fmt.Errorf("goertzel: frequency %v not below new sample rate %v", g.frequency, sampleRate)
	}

	g.sampleRate = sampleRate
	g.updateCoeff()

	return nil
}

// Frequency returns the current target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the current sample rate.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// AnalyzeBlock computes the Goertzel DFT term of a real block in one shot.
func AnalyzeBlock(input []float64, frequency, sampleRate float64) (complex128, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Bin(), nil
}
