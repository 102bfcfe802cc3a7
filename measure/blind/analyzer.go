package blind

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-cbmc/dsp/buffer"
	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/dsp/freqsps"
	"github.com/cwbudde/algo-cbmc/dsp/modclass"
	"github.com/cwbudde/algo-cbmc/stats/envelope"
)

// Report describes one analysed block.
type Report struct {
	// Offset is the stream index of the first sample of the block.
	Offset int64
	// Skipped is set for zero-power blocks, which carry no estimate.
	Skipped bool

	Estimate   freqsps.Estimate
	Modulation modclass.Modulation
	// AbsC40 is the |C40| the decision was based on.
	AbsC40 float64
	// PowerDB is the mean block power in dB.
	PowerDB float64
	// PAPRDB is the peak-to-average power ratio of the input block in dB.
	PAPRDB float64
}

// Analyzer runs a freqsps.Estimator and a modclass.Classifier over
// consecutive blocks. It is not safe for concurrent use.
type Analyzer struct {
	cfg core.BlockConfig

	est *freqsps.Estimator
	cls *modclass.Classifier

	corrected []complex128
	pending   *buffer.Buffer[complex128]
	consumed  int64
	stream    *envelope.StreamingStats
}

// New creates an Analyzer from core.DefaultBlockConfig modified by opts.
func New(opts ...core.BlockOption) (*Analyzer, error) {
	cfg := core.ApplyBlockOptions(opts...)

	est, err := freqsps.New(freqsps.Config{
		Decimation:   cfg.Decimation,
		Subdivisions: cfg.Subdivisions,
	})
	if err != nil {
		return nil, fmt.Errorf("blind: %w", err)
	}

	cls, err := modclass.New(modclass.Config{
		Decimation: cfg.Decimation,
		Probe:      cfg.Probe,
	})
	if err != nil {
		return nil, fmt.Errorf("blind: %w", err)
	}

	return &Analyzer{
		cfg:       cfg,
		est:       est,
		cls:       cls,
		corrected: make([]complex128, cfg.Decimation),
		pending:   buffer.New[complex128](0),
		stream:    envelope.NewStreamingStats(),
	}, nil
}

// Config returns the effective configuration.
func (a *Analyzer) Config() core.BlockConfig { return a.cfg }

// Estimator exposes the offset estimator and its offset log.
func (a *Analyzer) Estimator() *freqsps.Estimator { return a.est }

// Classifier exposes the classifier and its diagnostic logs.
func (a *Analyzer) Classifier() *modclass.Classifier { return a.cls }

// Summary returns envelope statistics over every sample processed so far.
func (a *Analyzer) Summary() envelope.Stats { return a.stream.Result() }

// Consumed returns the number of samples processed so far.
func (a *Analyzer) Consumed() int64 { return a.consumed }

// ProcessBlock analyses exactly one block and writes the frequency and
// phase corrected samples into dst. dst may alias block. A zero-power block
// is copied to dst unchanged and reported as skipped; a block holding NaN or
// Inf fails with freqsps.ErrNonFinite and is not consumed.
func (a *Analyzer) ProcessBlock(dst, block []complex128) (Report, error) {
	n := a.cfg.Decimation
	if len(block) != n || len(dst) != n {
		return Report{}, fmt.Errorf("blind: block length %d (dst %d), want %d", len(block), len(dst), n)
	}

	stats := envelope.Calculate(block)

	r := Report{
		Offset:  a.consumed,
		PowerDB: stats.Power_dB,
		PAPRDB:  stats.PAPR_dB,
	}

	est, err := a.est.EstimateInto(a.corrected, block)
	if errors.Is(err, freqsps.ErrZeroPower) {
		copy(dst, block)
		r.Skipped = true
		a.stream.Update(block)
		a.consumed += int64(n)
		return r, nil
	}
	if err != nil {
		return Report{}, fmt.Errorf("blind: block at %d: %w", r.Offset, err)
	}
	r.Estimate = est

	// dst may alias block, so the stream statistics are taken first.
	a.stream.Update(block)

	mod, err := a.cls.ClassifyInto(dst, a.corrected)
	if err != nil {
		return Report{}, fmt.Errorf("blind: block at %d: %w", r.Offset, err)
	}
	r.Modulation = mod
	r.AbsC40 = a.cls.AbsC40()

	a.consumed += int64(n)

	return r, nil
}

// Process analyses every whole block of samples in order. It returns the
// reports, the corrected samples of the whole blocks and the unconsumed
// tail, which is shorter than Decimation.
func (a *Analyzer) Process(samples []complex128) ([]Report, []complex128, []complex128, error) {
	n := a.cfg.Decimation
	blocks := len(samples) / n

	reports := make([]Report, 0, blocks)
	out := make([]complex128, blocks*n)

	for b := range blocks {
		r, err := a.ProcessBlock(out[b*n:(b+1)*n], samples[b*n:(b+1)*n])
		if err != nil {
			return reports, out[:b*n], samples[b*n:], err
		}
		reports = append(reports, r)
	}

	return reports, out, samples[blocks*n:], nil
}

// Write appends a chunk of any length to the analyzer and processes every
// block that becomes complete. Samples short of a whole block stay pending
// for the next call. It returns the reports and corrected samples of the
// blocks processed during this call.
func (a *Analyzer) Write(chunk []complex128) ([]Report, []complex128, error) {
	a.pending.Append(chunk...)

	reports, out, _, err := a.Process(a.pending.Samples())
	a.pending.Consume(len(out))

	return reports, out, err
}

// Pending returns the number of buffered samples waiting for a whole block.
func (a *Analyzer) Pending() int { return a.pending.Len() }
