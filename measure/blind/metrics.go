package blind

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

// Metrics exports analyzer results as Prometheus collectors.
type Metrics struct {
	blocksTotal   *prometheus.CounterVec // Analysed blocks (by modulation)
	skippedTotal  prometheus.Counter     // Zero-power blocks
	verifiedTotal *prometheus.CounterVec // Verification outcomes (by result)
	offset        prometheus.Gauge       // Last carrier offset
	sps           prometheus.Gauge       // Last samples-per-symbol estimate
	absC40        prometheus.Histogram   // |C40| per analysed block
	powerDB       prometheus.Gauge       // Last block power
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		blocksTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigclass_blocks_total",
				Help: "Analysed blocks by detected modulation",
			},
			[]string{"modulation"},
		),
		skippedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "sigclass_skipped_blocks_total",
			Help: "Zero-power blocks passed through without analysis",
		}),
		verifiedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigclass_verified_blocks_total",
				Help: "Blocks checked against the sent modulation, by result",
			},
			[]string{"result"},
		),
		offset: f.NewGauge(prometheus.GaugeOpts{
			Name: "sigclass_carrier_offset_cycles_per_sample",
			Help: "Carrier offset estimated for the last analysed block",
		}),
		sps: f.NewGauge(prometheus.GaugeOpts{
			Name: "sigclass_samples_per_symbol",
			Help: "Samples per symbol estimated for the last analysed block",
		}),
		absC40: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sigclass_abs_c40",
			Help:    "Normalized fourth-order cumulant magnitude per analysed block",
			Buckets: []float64{0.17, modclass.ThresholdPSK8, 0.59, modclass.ThresholdQAM16, 1.17, modclass.ThresholdQPSK, 2, 3},
		}),
		powerDB: f.NewGauge(prometheus.GaugeOpts{
			Name: "sigclass_block_power_db",
			Help: "Mean power of the last analysed block in dB",
		}),
	}
}

// Observe records reports. A nil Metrics ignores them.
func (m *Metrics) Observe(reports ...Report) {
	if m == nil {
		return
	}
	for _, r := range reports {
		if r.Skipped {
			m.skippedTotal.Inc()
			continue
		}
		m.blocksTotal.WithLabelValues(r.Modulation.String()).Inc()
		m.offset.Set(r.Estimate.Offset)
		m.sps.Set(r.Estimate.SamplesPerSymbol)
		m.absC40.Observe(r.AbsC40)
		m.powerDB.Set(r.PowerDB)
	}
}

// ObserveVerification counts Passed and Failed outcomes against sent.
func (m *Metrics) ObserveVerification(reports []Report, sent modclass.Modulation) {
	if m == nil {
		return
	}
	for _, tag := range Verify(reports, sent) {
		m.verifiedTotal.WithLabelValues(tag.Value.(string)).Inc()
	}
}
