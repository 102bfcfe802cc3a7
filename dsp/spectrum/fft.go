package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FFT computes forward complex transforms of a fixed size.
//
// algo-fft is used when it can plan the size; other sizes fall back to
// gonum's mixed-radix CmplxFFT. Both compute X[k] = sum x[n]*exp(-2*pi*i*k*n/N)
// without normalization. An FFT is not safe for concurrent use.
type FFT struct {
	size     int
	plan     *algofft.Plan[complex128]
	fallback *fourier.CmplxFFT
}

// NewFFT creates a forward transform of the given size.
func NewFFT(size int) (*FFT, error) {
	if size <= 0 {
		return nil, fmt.Errorf("fft size must be > 0: %d", size)
	}

	f := &FFT{size: size}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		f.fallback = fourier.NewCmplxFFT(size)
		return f, nil
	}

	f.plan = plan

	return f, nil
}

// Len returns the transform size.
func (f *FFT) Len() int { return f.size }

// Forward writes the spectrum of src into dst. Both must have Len() elements
// and must not alias.
func (f *FFT) Forward(dst, src []complex128) error {
	if len(dst) != f.size || len(src) != f.size {
		return fmt.Errorf("fft: buffer length mismatch: dst=%d src=%d size=%d", len(dst), len(src), f.size)
	}

	if f.plan != nil {
		if err := f.plan.Forward(dst, src); err != nil {
			return fmt.Errorf("fft: forward: %w", err)
		}
		return nil
	}

	f.fallback.Coefficients(dst, src)

	return nil
}
