package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-cbmc/internal/testutil"
)

func TestNewRefinerForcesOddPoints(t *testing.T) {
	tests := []struct{ subdivisions, points int }{
		{1, 1},
		{2, 3},
		{4, 5},
		{7, 7},
		{16, 17},
	}
	for _, tt := range tests {
		r, err := NewRefiner(32, tt.subdivisions)
		if err != nil {
			t.Fatalf("NewRefiner(32, %d): %v", tt.subdivisions, err)
		}
		if r.Points() != tt.points {
			t.Fatalf("subdivisions %d: points = %d, want %d", tt.subdivisions, r.Points(), tt.points)
		}
		if r.Subdivisions() != tt.subdivisions {
			t.Fatalf("Subdivisions = %d, want %d", r.Subdivisions(), tt.subdivisions)
		}
	}
}

func TestNewRefinerInvalid(t *testing.T) {
	if _, err := NewRefiner(0, 4); err == nil {
		t.Fatal("expected error for zero length")
	}
	if _, err := NewRefiner(64, 0); err == nil {
		t.Fatal("expected error for zero subdivisions")
	}
}

func TestRefineFractionalTone(t *testing.T) {
	const n = 64

	tests := []struct {
		name         string
		bin          float64
		rough        int
		subdivisions int
		want         float64
	}{
		{name: "quarter above", bin: 5.25, rough: 5, subdivisions: 4, want: 0.25},
		{name: "quarter below", bin: 4.75, rough: 5, subdivisions: 4, want: -0.25},
		{name: "on bin", bin: 9, rough: 9, subdivisions: 8, want: 0},
		{name: "tenth", bin: 2.1, rough: 2, subdivisions: 10, want: 0.1},
		{name: "negative frequency", bin: -2.1, rough: 62, subdivisions: 10, want: -0.1},
		{name: "wraps at zero", bin: -0.2, rough: 0, subdivisions: 5, want: -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRefiner(n, tt.subdivisions)
			if err != nil {
				t.Fatalf("NewRefiner: %v", err)
			}

			got, err := r.Refine(tt.rough, testutil.Tone(tt.bin/n, 1, 0.3, n))
			if err != nil {
				t.Fatalf("Refine: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Refine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefineWithinOneStep(t *testing.T) {
	const (
		n            = 128
		subdivisions = 6
	)

	r, err := NewRefiner(n, subdivisions)
	if err != nil {
		t.Fatalf("NewRefiner: %v", err)
	}

	for _, frac := range []float64{-0.45, -0.3, -0.07, 0.02, 0.19, 0.41} {
		got, err := r.Refine(17, testutil.Tone((17+frac)/n, 1, 0, n))
		if err != nil {
			t.Fatalf("Refine: %v", err)
		}
		if math.Abs(got-frac) > 1.0/subdivisions {
			t.Fatalf("frac %v: Refine = %v, more than one step away", frac, got)
		}
		if got < -0.5 || got > 0.5 {
			t.Fatalf("Refine = %v outside [-0.5, 0.5]", got)
		}
	}
}

func TestRefineDisabled(t *testing.T) {
	r, err := NewRefiner(16, 1)
	if err != nil {
		t.Fatalf("NewRefiner: %v", err)
	}
	got, err := r.Refine(3, testutil.Tone(3.4/16, 1, 0, 16))
	if err != nil || got != 0 {
		t.Fatalf("Refine = (%v, %v), want (0, nil)", got, err)
	}
}

func TestRefineLengthMismatch(t *testing.T) {
	r, _ := NewRefiner(16, 3)
	if _, err := r.Refine(0, make([]complex128, 8)); err == nil {
		t.Fatal("expected error for short block")
	}
	if _, err := r.RefineParts(0, make([]float64, 16), make([]float64, 15)); err == nil {
		t.Fatal("expected error for mismatched parts")
	}
}
