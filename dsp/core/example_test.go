package core_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cbmc/dsp/core"
)

func ExampleApplyBlockOptions() {
	cfg := core.ApplyBlockOptions(
		core.WithDecimation(256),
		core.WithSubdivisions(8),
	)

	fmt.Printf("decimation=%d subdivisions=%d probe=%v\n", cfg.Decimation, cfg.Subdivisions, cfg.Probe)

	// Output:
	// decimation=256 subdivisions=8 probe=false
}

func ExampleWrapPhase() {
	fmt.Printf("%.2f\n", core.WrapPhase(3*math.Pi/2))
	fmt.Println(core.SignedBin(60, 64), core.WrapIndex(-3, 64))

	// Output:
	// -1.57
	// -4 61
}
