package blind_test

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/measure/blind"
)

func ExampleAnalyzer_Process() {
	const n = 128

	// Alternating BPSK symbols on a carrier at 3/256 cycles/sample, two
	// blocks plus a partial third one.
	samples := make([]complex128, 2*n+10)
	for i := range samples {
		sym := 1.0
		if i%2 == 1 {
			sym = -1
		}
		samples[i] = complex(sym, 0) * cmplx.Exp(complex(0, 2*math.Pi*3*float64(i)/256))
	}

	a, err := blind.New(core.WithDecimation(n), core.WithSubdivisions(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	reports, _, tail, err := a.Process(samples)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, r := range reports {
		fmt.Printf("@%d offset=%.5f mod=%v\n", r.Offset, r.Estimate.Offset, r.Modulation)
	}
	fmt.Println("tail:", len(tail))

	for _, tag := range blind.Tags(reports) {
		if tag.Key == blind.KeyMod {
			fmt.Println(tag.Offset, tag.Key, tag.Value)
		}
	}
	// Output:
	// @0 offset=0.01172 mod=BPSK
	// @128 offset=0.01172 mod=BPSK
	// tail: 10
	// 0 det_mod BPSK
	// 128 det_mod BPSK
}
