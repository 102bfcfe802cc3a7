package modclass

import (
	"github.com/cwbudde/algo-cbmc/dsp/cvec"
)

// Cumulants holds the block statistics behind a decision.
type Cumulants struct {
	// C21 is the mean power E[x*conj(x)].
	C21 complex128
	// C40 is (E[x^4] - 3*C20^2) / C21^2.
	C40 complex128
	// C42 is E[|x|^4] - C20*E[conj(x)^2] - 2*C21^2, not normalized.
	C42 complex128
}

// cumulantScratch holds per-block buffers sized to the decimation.
type cumulantScratch struct {
	sq   []complex128
	conj []complex128
	work []complex128
}

func newCumulantScratch(n int) *cumulantScratch {
	return &cumulantScratch{
		sq:   make([]complex128, n),
		conj: make([]complex128, n),
		work: make([]complex128, n),
	}
}

// ComputeCumulants returns the cumulants of block as given. A zero-power
// block, or one weak enough for C21^2 to underflow, yields a non-finite
// C40; the Classifier normalizes blocks before computing them.
func ComputeCumulants(block []complex128) Cumulants {
	return newCumulantScratch(len(block)).compute(block, computeC21(block, make([]complex128, len(block))))
}

func computeC21(block, work []complex128) complex128 {
	cvec.MulConj(work, block, block)
	return cvec.Mean(work)
}

// compute derives C40 and C42 from block with a precomputed C21, which lets
// the legacy path reuse the C21 of the unrotated block.
func (s *cumulantScratch) compute(block []complex128, c21 complex128) Cumulants {
	cvec.Square(s.sq, block)
	c20 := cvec.Mean(s.sq)

	cvec.Conj(s.conj, block)
	cvec.Square(s.conj, s.conj)
	meanConjSq := cvec.Mean(s.conj)

	cvec.Mul(s.work, s.conj, s.sq)
	meanConjSqSq := cvec.Mean(s.work)

	c42 := meanConjSqSq - c20*meanConjSq - 2*c21*c21

	cvec.Square(s.work, s.sq)
	mean4 := cvec.Mean(s.work)

	c40 := (mean4 - 3*c20*c20) / (c21 * c21)

	return Cumulants{C21: c21, C40: c40, C42: c42}
}
