package modclass

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-cbmc/dsp/cvec"
)

// Decision boundaries on |C40|. Each interval includes its lower bound.
const (
	ThresholdPSK8  = 0.34
	ThresholdQAM16 = 0.84
	ThresholdQPSK  = 1.5
)

// Decision boundaries on Re(C40) for the legacy decision tree.
const (
	legacyBoundBPSK  = -1.36
	legacyBoundQAM16 = -0.34
	legacyBoundQPSK  = 0.5
)

var (
	// ErrBlockSize is returned when a block does not hold exactly Decimation samples.
	ErrBlockSize = errors.New("modclass: block length must equal decimation")
	// ErrZeroPower is returned for all-zero blocks, where C40 is undefined.
	ErrZeroPower = errors.New("modclass: block has zero power")
	// ErrNonFinite is returned for blocks holding NaN or Inf samples.
	ErrNonFinite = errors.New("modclass: block has non-finite samples")
)

// Config holds the classifier parameters.
type Config struct {
	// Decimation is the block length.
	Decimation int
	// Probe enables the decision and cumulant logs.
	Probe bool
}

// Classifier decides the modulation of successive blocks.
//
// It is not safe for concurrent use. The diagnostic logs grow by one entry
// per classified block while Probe is set and are only cleared by Reset.
type Classifier struct {
	cfg        Config
	scratch    *cumulantScratch
	normalized []complex128
	powered    []complex128
	shifted    []complex128

	absC40 float64

	storedMod  []Modulation
	storedCumu []float64
}

// New validates cfg and creates a Classifier.
func New(cfg Config) (*Classifier, error) {
	if cfg.Decimation <= 0 {
		return nil, fmt.Errorf("modclass: decimation must be > 0: %d", cfg.Decimation)
	}

	return &Classifier{
		cfg:        cfg,
		scratch:    newCumulantScratch(cfg.Decimation),
		normalized: make([]complex128, cfg.Decimation),
		powered:    make([]complex128, cfg.Decimation),
		shifted:    make([]complex128, cfg.Decimation),
	}, nil
}

// Decimation returns the block length.
func (c *Classifier) Decimation() int { return c.cfg.Decimation }

// Probe reports whether diagnostic logging is enabled.
func (c *Classifier) Probe() bool { return c.cfg.Probe }

// AbsC40 returns |C40| of the last successfully classified block, or 0
// before the first one. It does not depend on Probe.
func (c *Classifier) AbsC40() float64 { return c.absC40 }

// StoredMod returns a copy of the logged decisions.
func (c *Classifier) StoredMod() []Modulation {
	out := make([]Modulation, len(c.storedMod))
	copy(out, c.storedMod)
	return out
}

// StoredCumu returns a copy of the logged |C40| values.
func (c *Classifier) StoredCumu() []float64 {
	out := make([]float64, len(c.storedCumu))
	copy(out, c.storedCumu)
	return out
}

// Reset clears both diagnostic logs.
func (c *Classifier) Reset() {
	c.storedMod = c.storedMod[:0]
	c.storedCumu = c.storedCumu[:0]
}

// Decide maps |C40| onto a modulation:
// [0, 0.34) 8PSK, [0.34, 0.84) 16QAM, [0.84, 1.5) QPSK, [1.5, inf) BPSK.
func Decide(absC40 float64) Modulation {
	switch {
	case absC40 < ThresholdPSK8:
		return PSK8
	case absC40 < ThresholdQAM16:
		return QAM16
	case absC40 < ThresholdQPSK:
		return QPSK
	default:
		return BPSK
	}
}

// EstimatePhase returns arg(weight * sum(x^power)) / power. power must be 2,
// 4 or 8; any other value yields 0.
func EstimatePhase(block []complex128, power int, weight float64) float64 {
	return estimatePhase(make([]complex128, len(block)), block, power, weight)
}

func estimatePhase(work, block []complex128, power int, weight float64) float64 {
	var squarings int
	switch power {
	case 2:
		squarings = 1
	case 4:
		squarings = 2
	case 8:
		squarings = 3
	default:
		return 0
	}

	cvec.Square(work, block)
	for range squarings - 1 {
		cvec.Square(work, work)
	}

	return cmplx.Phase(complex(weight, 0)*cvec.Sum(work)) / float64(power)
}

// Classify decides the modulation of block and returns it together with the
// block derotated by the estimated residual phase. block is not modified.
func (c *Classifier) Classify(block []complex128) (Modulation, []complex128, error) {
	out := make([]complex128, len(block))

	m, err := c.ClassifyInto(out, block)
	if err != nil {
		return 0, nil, err
	}

	return m, out, nil
}

// ClassifyInto is Classify writing the derotated block into dst. dst may
// alias block.
//
// The statistics are taken on a copy of block scaled by a power of two, so
// blocks of any finite nonzero power classify alike.
func (c *Classifier) ClassifyInto(dst, block []complex128) (Modulation, error) {
	c21, err := c.checkBlock(dst, block)
	if err != nil {
		return 0, err
	}

	cum := c.scratch.compute(c.normalized, c21)
	absC40 := cmplx.Abs(cum.C40)

	m := Decide(absC40)

	power, weight := m.phaseParams()
	phi := estimatePhase(c.powered, c.normalized, power, weight)
	cvec.Rotate(dst, block, -phi)

	c.absC40 = absC40

	c.record(m, absC40)

	return m, nil
}

// ClassifyLegacy runs the phase-shift-first decision tree: for each
// hypothesis in the order BPSK, 16QAM, QPSK it derotates with the matching
// phase estimate and tests Re(C40) of the shifted block; 8PSK is the
// fallback. It is kept for comparison with Classify.
func (c *Classifier) ClassifyLegacy(block []complex128) (Modulation, []complex128, error) {
	out := make([]complex128, len(block))

	c21, err := c.checkBlock(out, block)
	if err != nil {
		return 0, nil, err
	}

	hypotheses := []struct {
		mod    Modulation
		accept func(re float64) bool
	}{
		{BPSK, func(re float64) bool { return re < legacyBoundBPSK }},
		{QAM16, func(re float64) bool { return re > legacyBoundBPSK && re < legacyBoundQAM16 }},
		{QPSK, func(re float64) bool { return re > legacyBoundQPSK }},
		{PSK8, func(float64) bool { return true }},
	}

	var cum Cumulants
	for _, h := range hypotheses {
		power, weight := h.mod.phaseParams()
		phi := estimatePhase(c.powered, c.normalized, power, weight)
		cvec.Rotate(c.shifted, c.normalized, -phi)

		cum = c.scratch.compute(c.shifted, c21)
		if h.accept(real(cum.C40)) {
			cvec.Rotate(out, block, -phi)
			c.absC40 = cmplx.Abs(cum.C40)
			c.record(h.mod, c.absC40)
			return h.mod, out, nil
		}
	}

	// unreachable: the 8PSK hypothesis accepts everything
	return PSK8, out, nil
}

// checkBlock validates block, fills c.normalized and returns its C21.
func (c *Classifier) checkBlock(dst, block []complex128) (complex128, error) {
	n := c.cfg.Decimation
	if len(block) != n || len(dst) != n {
		return 0, fmt.Errorf("%w: got %d (dst %d), want %d", ErrBlockSize, len(block), len(dst), n)
	}

	peak := cvec.Normalize(c.normalized, block)
	switch {
	case math.IsNaN(peak) || math.IsInf(peak, 0):
		return 0, ErrNonFinite
	case peak == 0:
		return 0, ErrZeroPower
	}

	return computeC21(c.normalized, c.scratch.work), nil
}

func (c *Classifier) record(m Modulation, absC40 float64) {
	if !c.cfg.Probe {
		return
	}
	c.storedMod = append(c.storedMod, m)
	c.storedCumu = append(c.storedCumu, absC40)
}
