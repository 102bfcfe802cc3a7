package spectrum_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-cbmc/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExamplePeakToSum() {
	idx, ratio := spectrum.PeakToSum([]float64{0.5, 3, 0.5, 0})
	fmt.Printf("%d %.2f\n", idx, ratio)
	// Output:
	// 1 0.75
}

func ExampleRefiner() {
	const n = 32
	x := make([]complex128, n)
	for i := range x {
		x[i] = cmplx.Exp(complex(0, 2*math.Pi*6.5*float64(i)/n))
	}

	r, _ := spectrum.NewRefiner(n, 4)
	frac, _ := r.Refine(6, x)
	fmt.Printf("%.2f\n", frac)
	// Output:
	// 0.50
}
