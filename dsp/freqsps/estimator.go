package freqsps

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/dsp/cvec"
	"github.com/cwbudde/algo-cbmc/dsp/spectrum"
)

// orders are the nonlinearities tried on every block, lowest first.
var orders = [...]int{2, 4, 8}

// Config holds the estimator parameters.
type Config struct {
	// Decimation is the block length and the FFT size.
	Decimation int
	// Subdivisions is the sub-bin refinement factor; 1 disables refinement.
	Subdivisions int
}

// Estimate is the per-block result.
type Estimate struct {
	// Offset is the carrier frequency offset in cycles/sample.
	Offset float64
	// SamplesPerSymbol is derived from the spacing between the carrier line
	// and the strongest symbol-rate line. It is 0 when no bin outside the
	// exclusion window carries energy.
	SamplesPerSymbol float64
	// Order is the winning nonlinearity (2, 4 or 8).
	Order int
}

// Estimator estimates frequency offset and samples-per-symbol block by block
// and derotates each block.
//
// The internal FFT size always equals Decimation, which the samples-per-symbol
// formula requires. An Estimator owns a phase accumulator and a log of
// offsets; it is not safe for concurrent use.
type Estimator struct {
	cfg     Config
	fftSize int

	fft     *spectrum.FFT
	refiner *spectrum.Refiner

	normalized []complex128
	powers     [len(orders)][]complex128
	spectra [len(orders)][]complex128
	mags    [len(orders)][]float64
	scratch []float64

	// phase is the derotation angle carried between blocks, in (-pi, pi].
	phase       float64
	storedFreqs []float64
}

// New validates cfg and creates an Estimator.
func New(cfg Config) (*Estimator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	n := cfg.Decimation

	fft, err := spectrum.NewFFT(n)
	if err != nil {
		return nil, fmt.Errorf("freqsps: %w", err)
	}

	refiner, err := spectrum.NewRefiner(n, cfg.Subdivisions)
	if err != nil {
		return nil, fmt.Errorf("freqsps: %w", err)
	}

	e := &Estimator{
		cfg:     cfg,
		fftSize: n,
		fft:     fft,
		refiner: refiner,
		scratch: make([]float64, n),

		normalized: make([]complex128, n),
	}

	for i := range orders {
		e.powers[i] = make([]complex128, n)
		e.spectra[i] = make([]complex128, n)
		e.mags[i] = make([]float64, n)
	}

	return e, nil
}

// Decimation returns the block length.
func (e *Estimator) Decimation() int { return e.cfg.Decimation }

// Subdivisions returns the refinement factor.
func (e *Estimator) Subdivisions() int { return e.cfg.Subdivisions }

// Phase returns the current derotation phase in (-pi, pi].
func (e *Estimator) Phase() float64 { return e.phase }

// StoredFreqs returns a copy of all offsets estimated since construction or
// the last DiscardStoredFreqs.
func (e *Estimator) StoredFreqs() []float64 {
	out := make([]float64, len(e.storedFreqs))
	copy(out, e.storedFreqs)
	return out
}

// DiscardStoredFreqs empties the offset log.
func (e *Estimator) DiscardStoredFreqs() {
	e.storedFreqs = e.storedFreqs[:0]
}

// Estimate analyses one block and returns the estimate together with the
// frequency-corrected block. block is not modified.
func (e *Estimator) Estimate(block []complex128) (Estimate, []complex128, error) {
	out := make([]complex128, len(block))

	est, err := e.EstimateInto(out, block)
	if err != nil {
		return Estimate{}, nil, err
	}

	return est, out, nil
}

// EstimateInto is Estimate writing the corrected block into dst, which must
// have Decimation elements. dst may alias block.
//
// Blocks holding NaN or Inf fail with ErrNonFinite and all-zero blocks with
// ErrZeroPower; neither moves the phase accumulator or the log. The spectra
// are taken on a copy scaled by a power of two, so the estimate does not
// depend on the block's power.
func (e *Estimator) EstimateInto(dst, block []complex128) (Estimate, error) {
	n := e.cfg.Decimation
	if len(block) != n || len(dst) != n {
		return Estimate{}, fmt.Errorf("%w: got %d (dst %d), want %d", ErrBlockSize, len(block), len(dst), n)
	}

	peak := cvec.Normalize(e.normalized, block)
	switch {
	case math.IsNaN(peak) || math.IsInf(peak, 0):
		return Estimate{}, ErrNonFinite
	case peak == 0:
		return Estimate{}, ErrZeroPower
	}

	est, err := e.analyze(e.normalized)
	if err != nil {
		return Estimate{}, err
	}

	e.derotate(dst, block, est.Offset)
	e.storedFreqs = append(e.storedFreqs, est.Offset)

	return est, nil
}

func (e *Estimator) analyze(block []complex128) (Estimate, error) {
	cvec.Square(e.powers[0], block)
	cvec.Square(e.powers[1], e.powers[0])
	cvec.Square(e.powers[2], e.powers[1])

	var (
		peaks    [len(orders)]int
		criteria [len(orders)]float64
	)

	for i := range orders {
		if err := e.fft.Forward(e.spectra[i], e.powers[i]); err != nil {
			return Estimate{}, fmt.Errorf("freqsps: %w", err)
		}
		spectrum.MagnitudeInto(e.mags[i], e.spectra[i])
		peaks[i], criteria[i] = spectrum.PeakToSum(e.mags[i])
	}

	best := bestOrder(criteria)

	offset, err := e.offset(e.powers[best], peaks[best], orders[best])
	if err != nil {
		return Estimate{}, err
	}

	return Estimate{
		Offset:           offset,
		SamplesPerSymbol: e.samplesPerSymbol(e.mags[best], peaks[best]),
		Order:            orders[best],
	}, nil
}

// bestOrder returns the index of the largest criterion. Only a strictly
// larger value displaces the current best, so ties keep the lower order.
func bestOrder(criteria [len(orders)]float64) int {
	best := 0
	for i := 1; i < len(criteria); i++ {
		if criteria[i] > criteria[best] {
			best = i
		}
	}
	return best
}

// offset converts the peak of the order-th power spectrum to the carrier
// offset of the fundamental in cycles/sample.
func (e *Estimator) offset(powered []complex128, peak, order int) (float64, error) {
	coarse := float64(core.SignedBin(peak, e.fftSize))

	var fine float64
	if e.cfg.Subdivisions > 1 {
		var err error
		fine, err = e.refiner.Refine(peak, powered)
		if err != nil {
			return 0, fmt.Errorf("freqsps: %w", err)
		}
	}

	return (coarse + fine) / float64(order) / float64(e.fftSize), nil
}

// samplesPerSymbol finds the strongest line outside the exclusion window
// around the carrier peak and converts its distance from the peak into
// samples per symbol. The window covers peak-10 through peak+10 inclusive
// (for the FFT size equal to Decimation), 21 bins in all. It returns 0 when
// every remaining bin is zero. mag is left untouched.
func (e *Estimator) samplesPerSymbol(mag []float64, peak int) float64 {
	copy(e.scratch, mag)
	spectrum.SuppressAround(e.scratch, peak, exclusionHalfWidth(e.cfg.Decimation))

	side := cvec.IndexMax(e.scratch)
	if e.scratch[side] == 0 {
		return 0
	}

	spsIdx := core.SignedBin(side, e.fftSize)
	peakIdx := core.SignedBin(peak, e.fftSize)
	if spsIdx == peakIdx {
		return 0
	}

	return math.Abs(float64(e.fftSize) / float64(peakIdx-spsIdx))
}

// derotate multiplies block by exp(i*phase) where phase advances by
// -2*pi*offset per sample, then wraps the carried phase.
func (e *Estimator) derotate(dst, block []complex128, offset float64) {
	step := -2 * math.Pi * offset
	phase := e.phase

	for k, x := range block {
		phase += step
		sin, cos := math.Sincos(phase)
		dst[k] = x * complex(cos, sin)
	}

	e.phase = core.WrapPhase(phase)
}

// exclusionHalfWidth is the number of bins on each side of the carrier peak
// ignored by the symbol-rate search.
func exclusionHalfWidth(decimation int) int {
	fftSize := decimation
	return 10 * int(math.Ceil(float64(fftSize)/float64(decimation)))
}
