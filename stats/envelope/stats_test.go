package envelope

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-cbmc/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Power_dB, -1) {
		t.Fatalf("unexpected empty stats: %+v", s)
	}
}

func TestCalculateConstantModulus(t *testing.T) {
	x := testutil.CyclicSymbols(testutil.PSK8, 0.3, 64)
	s := Calculate(x)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"RMS", s.RMS, 1},
		{"RMS_dB", s.RMS_dB, 0},
		{"Peak", s.Peak, 1},
		{"PAPR", s.PAPR, 1},
		{"PAPR_dB", s.PAPR_dB, 0},
		{"Power", s.Power, 1},
		{"Energy", s.Energy, 64},
		{"EnvelopeMean", s.EnvelopeMean, 1},
		{"EnvelopeVariance", s.EnvelopeVariance, 0},
		{"|DC|", cmplx.Abs(s.DC), 0},
	}
	for _, c := range checks {
		if !almostEqual(c.got, c.want, tolerance) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCalculateQAM16(t *testing.T) {
	x := testutil.CyclicSymbols(testutil.QAM16, 0, 16)
	s := Calculate(x)

	// Outer corners carry |x|^2 = 18/10.
	if !almostEqual(s.PAPR, 1.8, tolerance) {
		t.Fatalf("PAPR = %v, want 1.8", s.PAPR)
	}
	if !almostEqual(s.Power, 1, tolerance) {
		t.Fatalf("Power = %v, want 1", s.Power)
	}
	if s.EnvelopeVariance <= 0 {
		t.Fatalf("EnvelopeVariance = %v, want > 0", s.EnvelopeVariance)
	}
	if x[s.PeakPos] != x[0] {
		t.Fatalf("PeakPos = %d, want the first corner", s.PeakPos)
	}
}

func TestCalculateDC(t *testing.T) {
	x := make([]complex128, 10)
	for i := range x {
		x[i] = complex(0.5, -0.5)
	}
	s := Calculate(x)

	if !almostEqual(cmplx.Abs(s.DC-complex(0.5, -0.5)), 0, tolerance) {
		t.Fatalf("DC = %v", s.DC)
	}
	if !almostEqual(s.DC_dB, 20*math.Log10(math.Sqrt(0.5)), tolerance) {
		t.Fatalf("DC_dB = %v", s.DC_dB)
	}
	if s.EnvelopeSkewness != 0 || s.EnvelopeKurtosis != 0 {
		t.Fatal("constant envelope must have zero higher moments")
	}
}

func TestPAPR(t *testing.T) {
	if got := PAPR(make([]complex128, 4)); got != 0 {
		t.Fatalf("PAPR(zeros) = %v", got)
	}

	x := []complex128{2, 0, 0, 0}
	if got := PAPR(x); !almostEqual(got, 4, tolerance) {
		t.Fatalf("PAPR = %v, want 4", got)
	}
	if got := Calculate(x).PAPR; !almostEqual(got, 4, tolerance) {
		t.Fatalf("Calculate PAPR = %v, want 4", got)
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	x := testutil.Add(testutil.RandomSymbols(1, testutil.QAM16, 0.2, 1000), testutil.DeterministicNoise(2, 0.1, 1000))

	want := Calculate(x)

	s := NewStreamingStats()
	for _, cut := range [][2]int{{0, 1}, {1, 333}, {333, 334}, {334, 1000}} {
		s.Update(x[cut[0]:cut[1]])
	}
	got := s.Result()

	if got != want {
		t.Fatalf("streaming %+v\nwant %+v", got, want)
	}

	s.Reset()
	if s.Result().Length != 0 {
		t.Fatal("Reset left samples")
	}
}
