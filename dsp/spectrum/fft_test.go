package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-cbmc/internal/testutil"
)

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		for i, v := range x {
			out[k] += v * cmplx.Exp(complex(0, -2*math.Pi*float64(k*i)/float64(n)))
		}
	}
	return out
}

func TestFFTMatchesDFT(t *testing.T) {
	// 64 is a power of two, 12 and 100 exercise mixed radix sizes.
	for _, n := range []int{8, 12, 64, 100} {
		x := testutil.Add(testutil.Tone(3/float64(n), 1, 0.2, n), testutil.DeterministicNoise(int64(n), 0.3, n))

		f, err := NewFFT(n)
		if err != nil {
			t.Fatalf("NewFFT(%d): %v", n, err)
		}
		if f.Len() != n {
			t.Fatalf("Len = %d, want %d", f.Len(), n)
		}

		got := make([]complex128, n)
		if err := f.Forward(got, x); err != nil {
			t.Fatalf("Forward(%d): %v", n, err)
		}

		testutil.RequireCmplxSliceNearlyEqual(t, got, naiveDFT(x), 1e-9)
	}
}

func TestFFTTonePeak(t *testing.T) {
	n := 64
	f, err := NewFFT(n)
	if err != nil {
		t.Fatalf("NewFFT: %v", err)
	}

	out := make([]complex128, n)
	if err := f.Forward(out, testutil.Tone(-5.0/64, 1, 0, n)); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	idx, ratio := PeakToSum(Magnitude(out))
	if idx != 59 {
		t.Fatalf("peak = %d, want 59", idx)
	}
	if math.Abs(ratio-1) > 1e-9 {
		t.Fatalf("ratio = %v, want 1", ratio)
	}
}

func TestFFTErrors(t *testing.T) {
	if _, err := NewFFT(0); err == nil {
		t.Fatal("expected error for size 0")
	}

	f, err := NewFFT(16)
	if err != nil {
		t.Fatalf("NewFFT: %v", err)
	}
	if err := f.Forward(make([]complex128, 8), make([]complex128, 16)); err == nil {
		t.Fatal("expected error for short dst")
	}
}
